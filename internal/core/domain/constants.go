package domain

import (
	"fmt"
	"math"
)

// Constants are the physical scaling constants every derived metric
// depends on. They are passed into the calculator explicitly so a
// result can always be traced back to the exact constants that
// produced it; nothing in the formulas is a bare literal.
type Constants struct {
	// EyepieceFieldNumberMm is the eyepiece field number in
	// millimetres.
	EyepieceFieldNumberMm float64 `toml:"eyepiece_field_number_mm" json:"eyepiece_field_number_mm"`

	// ObjectiveMagnification is the objective lens magnification used
	// for fungal and protozoa counts.
	ObjectiveMagnification float64 `toml:"objective_magnification" json:"objective_magnification"`

	// FieldsPerDrop is the number of fields of view in one drop of
	// suspension.
	FieldsPerDrop float64 `toml:"fields_per_drop" json:"fields_per_drop"`

	// FieldsCounted is the number of fields a raw tally covers; raw
	// sums and averages are recorded on this basis.
	FieldsCounted float64 `toml:"fields_counted" json:"fields_counted"`

	// FungalDensityPgUm3 converts hyphal volume to mass, in picograms
	// per cubic micrometre.
	FungalDensityPgUm3 float64 `toml:"fungal_density_pg_um3" json:"fungal_density_pg_um3"`

	// BacterialDensityPg is the mass of one organism-equivalent, in
	// picograms.
	BacterialDensityPg float64 `toml:"bacterial_density_pg" json:"bacterial_density_pg"`

	// CoverslipSideMm is the side length of the square coverslip in
	// millimetres.
	CoverslipSideMm float64 `toml:"coverslip_side_mm" json:"coverslip_side_mm"`
}

// DefaultConstants returns the canonical constant set for the standard
// protocol: 18 mm eyepiece field number, 40x objective, 25-field
// tallies, 2038 fields per drop, 0.41 pg/µm³ hyphae, 0.33 pg bacteria,
// 18 mm coverslip.
func DefaultConstants() Constants {
	return Constants{
		EyepieceFieldNumberMm:  18,
		ObjectiveMagnification: 40,
		FieldsPerDrop:          2038,
		FieldsCounted:          25,
		FungalDensityPgUm3:     0.41,
		BacterialDensityPg:     0.33,
		CoverslipSideMm:        18,
	}
}

// Validate checks that every constant is positive.
func (c Constants) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"eyepiece_field_number_mm", c.EyepieceFieldNumberMm},
		{"objective_magnification", c.ObjectiveMagnification},
		{"fields_per_drop", c.FieldsPerDrop},
		{"fields_counted", c.FieldsCounted},
		{"fungal_density_pg_um3", c.FungalDensityPgUm3},
		{"bacterial_density_pg", c.BacterialDensityPg},
		{"coverslip_side_mm", c.CoverslipSideMm},
	}
	for _, check := range checks {
		if check.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConstants, check.name, check.v)
		}
	}
	return nil
}

// FOVDiameterUm is the field-of-view diameter in micrometres, derived
// from the eyepiece field number and objective magnification. With the
// defaults this is 18/40*1000 = 450 µm.
func (c Constants) FOVDiameterUm() float64 {
	return c.EyepieceFieldNumberMm / c.ObjectiveMagnification * 1000
}

// FOVDiameterMm is the field-of-view diameter in millimetres.
func (c Constants) FOVDiameterMm() float64 {
	return c.EyepieceFieldNumberMm / c.ObjectiveMagnification
}

// FieldAreaMm2 is the area of one field of view in square millimetres.
func (c Constants) FieldAreaMm2() float64 {
	r := c.FOVDiameterMm() / 2
	return math.Pi * r * r
}

// CoverslipAreaMm2 is the coverslip area in square millimetres.
func (c Constants) CoverslipAreaMm2() float64 {
	return c.CoverslipSideMm * c.CoverslipSideMm
}

// FieldsPerCoverslip is the number of fields of view that tile one
// coverslip. With the defaults this is about 2037.
func (c Constants) FieldsPerCoverslip() float64 {
	return c.CoverslipAreaMm2() / c.FieldAreaMm2()
}
