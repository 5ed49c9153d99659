package domain

import "time"

// Run records one completed pipeline computation so past results can be
// audited alongside the constants that produced them.
type Run struct {
	// ID is a UUID assigned when the run completes.
	ID string

	// StartedAt is when the computation began.
	StartedAt time.Time

	// MetadataPath and FragmentsPath are the input tables as given on
	// the command line.
	MetadataPath  string
	FragmentsPath string

	// OutputPath is where the result table was written.
	OutputPath string

	// Constants is the constant set used for the computation.
	Constants Constants

	// SampleCount is the number of sample groups computed.
	SampleCount int

	// WarningCount is the number of per-row warnings (orphan
	// fragments, unparseable cells) emitted during the run.
	WarningCount int
}
