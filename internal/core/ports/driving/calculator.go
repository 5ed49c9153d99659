package driving

import "github.com/rhizome-labs/soilbio-cli/internal/core/domain"

// CalculatorService exposes the pure biomass and abundance formulas.
// Every method is deterministic in its arguments and the service's
// constants; missing inputs propagate as missing outputs, never as
// errors.
type CalculatorService interface {
	// Constants returns the constant set the calculator was built
	// with.
	Constants() domain.Constants

	// FungalBiomass returns total fungal biomass in µg per gram of
	// soil. An empty fragment list yields zero, not missing.
	FungalBiomass(fragments []domain.Fragment, mainDilution, dropsPerML domain.OptFloat) domain.OptFloat

	// BacterialBiomass returns bacterial biomass in µg per gram of
	// soil.
	BacterialBiomass(counts []domain.OptFloat, bacterialDilution domain.OptFloat, fov domain.FOVFraction, dropsPerML domain.OptFloat) domain.OptFloat

	// FungalToBacterialRatio returns fungal ÷ bacterial biomass.
	// Missing when either operand is missing or bacterial biomass is
	// zero.
	FungalToBacterialRatio(fungal, bacterial domain.OptFloat) domain.OptFloat

	// Protozoa returns total, scaled flagellate and scaled amoeba
	// abundances. All-or-nothing: if any input is missing all three
	// results are missing.
	Protozoa(flagellates, amoebae, mainDilution, dropsPerML domain.OptFloat) (total, scaledFlagellates, scaledAmoebae domain.OptFloat)

	// NematodeAbundance returns the scaled count for one trophic
	// group.
	NematodeAbundance(raw, mainDilution, dropsPerML domain.OptFloat) domain.OptFloat

	// ComputeSample derives every metric for one sample group.
	ComputeSample(m domain.SampleMeasurements) domain.SampleResult
}
