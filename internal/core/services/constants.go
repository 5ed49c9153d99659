package services

import (
	"fmt"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
	"github.com/rhizome-labs/soilbio-cli/internal/core/ports/driven"
	"github.com/rhizome-labs/soilbio-cli/internal/core/ports/driving"
)

// Ensure ConstantsService implements the interface.
var _ driving.ConstantsService = (*ConstantsService)(nil)

// Config keys for scaling-constant overrides. Each maps onto the
// matching field of domain.Constants.
const (
	KeyEyepieceFieldNumber = "constants.eyepiece_field_number_mm"
	KeyObjectiveMag        = "constants.objective_magnification"
	KeyFieldsPerDrop       = "constants.fields_per_drop"
	KeyFieldsCounted       = "constants.fields_counted"
	KeyFungalDensity       = "constants.fungal_density_pg_um3"
	KeyBacterialDensity    = "constants.bacterial_density_pg"
	KeyCoverslipSide       = "constants.coverslip_side_mm"
)

// ConstantsService resolves the effective scaling constants: the
// protocol defaults overlaid with any configured overrides, validated
// before use so a bad override cannot silently zero out a formula.
type ConstantsService struct {
	config driven.ConfigStore
}

// NewConstantsService creates a constants service. The config store
// is optional (can be nil); defaults are then used as-is.
func NewConstantsService(config driven.ConfigStore) *ConstantsService {
	return &ConstantsService{config: config}
}

// Effective returns the constants the calculator will use.
func (s *ConstantsService) Effective() (domain.Constants, error) {
	constants := domain.DefaultConstants()
	if s.config == nil {
		return constants, nil
	}

	overlay := func(key string, field *float64) {
		if v := s.config.GetFloat(key); v != 0 {
			*field = v
		}
	}
	overlay(KeyEyepieceFieldNumber, &constants.EyepieceFieldNumberMm)
	overlay(KeyObjectiveMag, &constants.ObjectiveMagnification)
	overlay(KeyFieldsPerDrop, &constants.FieldsPerDrop)
	overlay(KeyFieldsCounted, &constants.FieldsCounted)
	overlay(KeyFungalDensity, &constants.FungalDensityPgUm3)
	overlay(KeyBacterialDensity, &constants.BacterialDensityPg)
	overlay(KeyCoverslipSide, &constants.CoverslipSideMm)

	if err := constants.Validate(); err != nil {
		return domain.Constants{}, fmt.Errorf("configured constants: %w", err)
	}
	return constants, nil
}

// SetOverride stores a constant override by its config key.
func (s *ConstantsService) SetOverride(key string, value float64) error {
	if s.config == nil {
		return fmt.Errorf("%w: no config store", domain.ErrInvalidInput)
	}
	switch key {
	case KeyEyepieceFieldNumber, KeyObjectiveMag, KeyFieldsPerDrop,
		KeyFieldsCounted, KeyFungalDensity, KeyBacterialDensity, KeyCoverslipSide:
	default:
		return fmt.Errorf("%w: unknown constants key %q", domain.ErrInvalidInput, key)
	}
	if value <= 0 {
		return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidConstants, key)
	}
	return s.config.Set(key, value)
}
