package services

import (
	"math"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
	"github.com/rhizome-labs/soilbio-cli/internal/core/ports/driving"
)

// Ensure CalculatorService implements the interface.
var _ driving.CalculatorService = (*CalculatorService)(nil)

// picogramsPerMicrogram converts the summed picogram masses to the
// µg/g figures reported in the output table.
const picogramsPerMicrogram = 1e6

// CalculatorService implements the derived soil-biology metrics. Every
// method is a pure function of its arguments and the constant set the
// service was built with; missing inputs propagate as missing results.
type CalculatorService struct {
	constants domain.Constants
}

// NewCalculatorService creates a calculator over the given constants.
func NewCalculatorService(constants domain.Constants) *CalculatorService {
	return &CalculatorService{constants: constants}
}

// Constants returns the constant set the calculator was built with.
func (s *CalculatorService) Constants() domain.Constants {
	return s.constants
}

// FungalBiomass computes total fungal biomass in µg per gram of soil.
//
// Each fragment is treated as a cylinder: its recorded length
// proportion is converted to micrometres against the field-of-view
// diameter, volume = π·(d/2)²·length, and volume converts to mass at
// the fungal density (pg/µm³). Fragments missing either measurement
// are excluded from the sum, not counted as zero. The summed picogram
// mass is on a FieldsCounted-field basis, so it is divided by
// FieldsCounted, then scaled by fields-per-drop, drops-per-mL and the
// main dilution, and finally converted to micrograms.
//
// An empty fragment list is a real observation of no hyphae: the
// result is zero, not missing. A missing dilution or drops-per-mL
// makes the result missing.
func (s *CalculatorService) FungalBiomass(fragments []domain.Fragment, mainDilution, dropsPerML domain.OptFloat) domain.OptFloat {
	c := s.constants

	sumPg := 0.0
	for _, frag := range fragments {
		if !frag.Measured() {
			continue
		}
		lengthUm := frag.LengthProportion.Value() * c.FOVDiameterUm()
		radius := frag.DiameterUm.Value() / 2
		volumeUm3 := math.Pi * radius * radius * lengthUm
		sumPg += volumeUm3 * c.FungalDensityPgUm3
	}

	perField := domain.Float(sumPg / c.FieldsCounted)
	scaledPg := perField.Mul(domain.Float(c.FieldsPerDrop), dropsPerML, mainDilution)
	return scaledPg.Div(domain.Float(picogramsPerMicrogram))
}

// BacterialBiomass computes bacterial biomass in µg per gram of soil.
//
// The replicate counts are averaged ignoring missing entries (all
// missing means a missing result). The average is normalized to a
// full-field-of-view count by dividing by the field-of-view fraction,
// scaled to organisms per drop via fields-per-drop, converted to
// picograms at the bacterial density, then scaled by the bacterial
// dilution and drops-per-mL and converted to micrograms.
//
// An unrecognised field-of-view label propagates as a missing result;
// it must never reach the division as a zero.
func (s *CalculatorService) BacterialBiomass(counts []domain.OptFloat, bacterialDilution domain.OptFloat, fov domain.FOVFraction, dropsPerML domain.OptFloat) domain.OptFloat {
	c := s.constants

	mean := domain.MeanPresent(counts)
	fullField := mean.Div(fov.Fraction())
	perDropPg := fullField.Mul(domain.Float(c.FieldsPerDrop), domain.Float(c.BacterialDensityPg))
	scaledPg := perDropPg.Mul(bacterialDilution, dropsPerML)
	return scaledPg.Div(domain.Float(picogramsPerMicrogram))
}

// FungalToBacterialRatio computes the F:B soil-health indicator.
// Missing when either biomass is missing or bacterial biomass is zero;
// a zero denominator renders as a blank cell, never as infinity.
func (s *CalculatorService) FungalToBacterialRatio(fungal, bacterial domain.OptFloat) domain.OptFloat {
	return fungal.Div(bacterial)
}

// Protozoa computes total, scaled flagellate and scaled amoeba
// abundances.
//
// Raw counts are on a FieldsCounted-field basis. Each count is divided
// by FieldsCounted, scaled to the whole coverslip via the
// fields-per-coverslip ratio (coverslip area over the physical field
// area at the counting magnification), then scaled by drops-per-mL and
// the main dilution.
//
// All-or-nothing: if any of the four inputs is missing, all three
// results are missing.
func (s *CalculatorService) Protozoa(flagellates, amoebae, mainDilution, dropsPerML domain.OptFloat) (total, scaledFlagellates, scaledAmoebae domain.OptFloat) {
	if !flagellates.Valid() || !amoebae.Valid() || !mainDilution.Valid() || !dropsPerML.Valid() {
		return domain.Missing(), domain.Missing(), domain.Missing()
	}

	c := s.constants
	scale := domain.Float(c.FieldsPerCoverslip() / c.FieldsCounted).Mul(dropsPerML, mainDilution)

	scaledFlagellates = flagellates.Mul(scale)
	scaledAmoebae = amoebae.Mul(scale)
	total = scaledFlagellates.Add(scaledAmoebae)
	return total, scaledFlagellates, scaledAmoebae
}

// NematodeAbundance computes the scaled count for one nematode trophic
// group: raw × drops-per-mL × main dilution. Each group is independent;
// a missing input makes only that group's result missing.
func (s *CalculatorService) NematodeAbundance(raw, mainDilution, dropsPerML domain.OptFloat) domain.OptFloat {
	return raw.Mul(dropsPerML, mainDilution)
}

// ComputeSample derives every metric for one sample group.
func (s *CalculatorService) ComputeSample(m domain.SampleMeasurements) domain.SampleResult {
	result := domain.SampleResult{Key: m.Key}

	result.FungalBiomass = s.FungalBiomass(m.Fragments, m.MainDilution, m.DropsPerML)
	result.BacterialBiomass = s.BacterialBiomass(m.BacterialCounts, m.BacterialDilution, m.BacterialFOV, m.DropsPerML)
	result.FBRatio = s.FungalToBacterialRatio(result.FungalBiomass, result.BacterialBiomass)

	result.Protozoa, result.Flagellates, result.Amoebae = s.Protozoa(m.Flagellates, m.Amoebae, m.MainDilution, m.DropsPerML)

	result.Nematodes = domain.NematodeResult{
		BacterialFeeding: s.NematodeAbundance(m.Nematodes.BacterialFeeding, m.MainDilution, m.DropsPerML),
		FungalFeeding:    s.NematodeAbundance(m.Nematodes.FungalFeeding, m.MainDilution, m.DropsPerML),
		Predatory:        s.NematodeAbundance(m.Nematodes.Predatory, m.MainDilution, m.DropsPerML),
		RootFeeding:      s.NematodeAbundance(m.Nematodes.RootFeeding, m.MainDilution, m.DropsPerML),
	}

	return result
}
