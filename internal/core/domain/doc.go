// Package domain defines the core business entities for soilbio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SampleKey: Identity of one soil sample (ID + collection date)
//   - SampleMeasurements: Raw microscopy counts and scaling metadata
//   - Fragment: A single fungal hyphal fragment measurement
//   - SampleResult: Derived biomass/abundance metrics for one sample
//   - Constants: The physical scaling constants the formulas depend on
//   - OptFloat: A numeric value that may be missing
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
