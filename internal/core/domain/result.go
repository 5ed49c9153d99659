package domain

// SampleResult holds every derived metric for one sample. Biomass
// figures are micrograms per gram of soil; abundance figures are
// organisms per gram.
type SampleResult struct {
	// Key identifies the sample.
	Key SampleKey

	// BacterialBiomass is bacterial biomass in µg/g.
	BacterialBiomass OptFloat

	// FungalBiomass is fungal biomass in µg/g.
	FungalBiomass OptFloat

	// FBRatio is fungal biomass divided by bacterial biomass.
	FBRatio OptFloat

	// Flagellates is the scaled flagellate abundance.
	Flagellates OptFloat

	// Amoebae is the scaled amoeba abundance.
	Amoebae OptFloat

	// Protozoa is the total protozoa abundance
	// (Flagellates + Amoebae).
	Protozoa OptFloat

	// Nematodes are the scaled abundances per trophic group.
	Nematodes NematodeResult
}

// NematodeResult holds the scaled nematode abundance per trophic group.
type NematodeResult struct {
	BacterialFeeding OptFloat
	FungalFeeding    OptFloat
	Predatory        OptFloat
	RootFeeding      OptFloat
}
