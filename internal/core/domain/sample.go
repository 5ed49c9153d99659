package domain

// SampleKey identifies one soil sample. The same physical site sampled
// on two dates is two samples.
type SampleKey struct {
	// ID is the researcher-assigned sample identifier.
	ID string

	// Date is the collection date, kept as the string from the field
	// sheet (the calculator never does date arithmetic).
	Date string
}

// Less orders sample keys by ID, then date. Used to keep output tables
// deterministic regardless of compute order.
func (k SampleKey) Less(other SampleKey) bool {
	if k.ID != other.ID {
		return k.ID < other.ID
	}
	return k.Date < other.Date
}

// SampleMeasurements holds every raw measurement and scaling parameter
// recorded for one sample. All counts may be missing; the calculator
// propagates missingness per metric.
type SampleMeasurements struct {
	// Key identifies the sample.
	Key SampleKey

	// BacterialCounts are the five replicate field-of-view counts.
	BacterialCounts []OptFloat

	// Fragments are the fungal hyphal fragments tallied for this
	// sample. May be empty; an empty list means zero fungal biomass,
	// not missing.
	Fragments []Fragment

	// MainDilution is the dilution factor applied to fungal, protozoa
	// and nematode counts.
	MainDilution OptFloat

	// BacterialDilution is the dilution factor applied to bacterial
	// counts.
	BacterialDilution OptFloat

	// BacterialFOV is the portion of the field of view bacterial
	// counts were taken over.
	BacterialFOV FOVFraction

	// DropsPerML is the calibration factor for the dropper used.
	DropsPerML OptFloat

	// Flagellates is the raw flagellate count.
	Flagellates OptFloat

	// Amoebae is the raw amoeba count.
	Amoebae OptFloat

	// Nematodes are the raw counts per trophic group.
	Nematodes NematodeCounts
}

// NematodeCounts holds the four independent nematode trophic-group
// counts.
type NematodeCounts struct {
	BacterialFeeding OptFloat
	FungalFeeding    OptFloat
	Predatory        OptFloat
	RootFeeding      OptFloat
}
