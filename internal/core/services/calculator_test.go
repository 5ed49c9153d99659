package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
)

func newCalculator() *CalculatorService {
	return NewCalculatorService(domain.DefaultConstants())
}

func TestFungalBiomass_EmptyFragmentListIsZero(t *testing.T) {
	calc := newCalculator()

	// No hyphae observed is a real zero, not a missing value.
	got := calc.FungalBiomass(nil, domain.Float(10), domain.Float(19))

	require.True(t, got.Valid())
	assert.Equal(t, 0.0, got.Value())
}

func TestFungalBiomass_Regression(t *testing.T) {
	calc := newCalculator()
	fragments := []domain.Fragment{
		{LengthProportion: domain.Float(0.1), DiameterUm: domain.Float(2.0)},
		{LengthProportion: domain.Float(0.2), DiameterUm: domain.Float(3.0)},
	}

	got := calc.FungalBiomass(fragments, domain.Float(10), domain.Float(19))

	// Pinned: lengths 45 and 90 µm, cylinder volumes ×0.41 pg/µm³ sum
	// to 318.79311452 pg; ÷25 ×2038 ×19 ×10 ÷1e6.
	require.True(t, got.Valid())
	assert.InDelta(t, 4.937722792239707, got.Value(), 1e-9)
}

func TestFungalBiomass_UnmeasuredFragmentsExcluded(t *testing.T) {
	calc := newCalculator()
	complete := []domain.Fragment{
		{LengthProportion: domain.Float(0.1), DiameterUm: domain.Float(2.0)},
	}
	withPartials := append([]domain.Fragment{
		{LengthProportion: domain.Float(0.3), DiameterUm: domain.Missing()},
		{LengthProportion: domain.Missing(), DiameterUm: domain.Float(5.0)},
	}, complete...)

	want := calc.FungalBiomass(complete, domain.Float(10), domain.Float(19))
	got := calc.FungalBiomass(withPartials, domain.Float(10), domain.Float(19))

	require.True(t, got.Valid())
	assert.Equal(t, want.Value(), got.Value())
}

func TestFungalBiomass_MissingScalingParameterPropagates(t *testing.T) {
	calc := newCalculator()
	fragments := []domain.Fragment{
		{LengthProportion: domain.Float(0.1), DiameterUm: domain.Float(2.0)},
	}

	assert.False(t, calc.FungalBiomass(fragments, domain.Missing(), domain.Float(19)).Valid())
	assert.False(t, calc.FungalBiomass(fragments, domain.Float(10), domain.Missing()).Valid())
}

func TestBacterialBiomass_Regression(t *testing.T) {
	calc := newCalculator()
	counts := []domain.OptFloat{
		domain.Float(5), domain.Float(6), domain.Float(5), domain.Float(7), domain.Float(6),
	}

	got := calc.BacterialBiomass(counts, domain.Float(100), domain.FOVHalf, domain.Float(19))

	// Pinned: mean 5.8 over half fields → 11.6 full-field, ×2038
	// ×0.33 pg ×100 ×19 ÷1e6.
	require.True(t, got.Valid())
	assert.InDelta(t, 14.8227816, got.Value(), 1e-9)
}

func TestBacterialBiomass_MissingCountsIgnoredInMean(t *testing.T) {
	calc := newCalculator()
	full := []domain.OptFloat{domain.Float(4), domain.Float(8)}
	sparse := []domain.OptFloat{domain.Float(4), domain.Missing(), domain.Float(8), domain.Missing(), domain.Missing()}

	want := calc.BacterialBiomass(full, domain.Float(100), domain.FOVWhole, domain.Float(19))
	got := calc.BacterialBiomass(sparse, domain.Float(100), domain.FOVWhole, domain.Float(19))

	require.True(t, got.Valid())
	assert.Equal(t, want.Value(), got.Value())
}

func TestBacterialBiomass_AllCountsMissing(t *testing.T) {
	calc := newCalculator()
	counts := []domain.OptFloat{domain.Missing(), domain.Missing(), domain.Missing(), domain.Missing(), domain.Missing()}

	got := calc.BacterialBiomass(counts, domain.Float(100), domain.FOVWhole, domain.Float(19))

	assert.False(t, got.Valid())
}

func TestBacterialBiomass_UndefinedFOVPropagates(t *testing.T) {
	calc := newCalculator()
	counts := []domain.OptFloat{domain.Float(5)}

	got := calc.BacterialBiomass(counts, domain.Float(100), domain.ParseFOVFraction("third"), domain.Float(19))

	assert.False(t, got.Valid())
}

func TestBacterialBiomass_MonotonicInDilutionAndDrops(t *testing.T) {
	calc := newCalculator()
	counts := []domain.OptFloat{domain.Float(5), domain.Float(6), domain.Float(5), domain.Float(7), domain.Float(6)}

	at := func(dilution, drops float64) float64 {
		v := calc.BacterialBiomass(counts, domain.Float(dilution), domain.FOVHalf, domain.Float(drops))
		require.True(t, v.Valid())
		return v.Value()
	}

	prev := at(1, 19)
	for _, dilution := range []float64{2, 10, 50, 100, 1000} {
		cur := at(dilution, 19)
		assert.Greater(t, cur, prev, "dilution %v", dilution)
		prev = cur
	}

	prev = at(100, 1)
	for _, drops := range []float64{2, 5, 19, 40} {
		cur := at(100, drops)
		assert.Greater(t, cur, prev, "drops %v", drops)
		prev = cur
	}
}

func TestFungalToBacterialRatio(t *testing.T) {
	calc := newCalculator()

	ratio := calc.FungalToBacterialRatio(domain.Float(12), domain.Float(4))
	require.True(t, ratio.Valid())
	assert.Equal(t, 3.0, ratio.Value())
}

func TestFungalToBacterialRatio_ZeroBacterialIsMissing(t *testing.T) {
	calc := newCalculator()

	// Any fungal value over a zero denominator is a blank cell, never
	// infinity.
	for _, fungal := range []float64{0, 0.5, 123.4} {
		got := calc.FungalToBacterialRatio(domain.Float(fungal), domain.Float(0))
		assert.False(t, got.Valid(), "fungal %v", fungal)
	}
}

func TestFungalToBacterialRatio_MissingOperandPropagates(t *testing.T) {
	calc := newCalculator()

	assert.False(t, calc.FungalToBacterialRatio(domain.Missing(), domain.Float(1)).Valid())
	assert.False(t, calc.FungalToBacterialRatio(domain.Float(1), domain.Missing()).Valid())
}

func TestProtozoa_TotalIsSumOfScaledCounts(t *testing.T) {
	calc := newCalculator()

	total, flag, amoeba := calc.Protozoa(domain.Float(3), domain.Float(2), domain.Float(100), domain.Float(19))

	require.True(t, total.Valid())
	require.True(t, flag.Valid())
	require.True(t, amoeba.Valid())
	assert.Equal(t, flag.Value()+amoeba.Value(), total.Value())
}

func TestProtozoa_Regression(t *testing.T) {
	calc := newCalculator()

	total, flag, amoeba := calc.Protozoa(domain.Float(3), domain.Float(2), domain.Float(100), domain.Float(19))

	// Pinned: 2037.1833 fields per coverslip, ÷25 ×19 ×100 per raw
	// organism.
	require.True(t, total.Valid())
	assert.InDelta(t, 464477.78591938736, flag.Value(), 1e-6)
	assert.InDelta(t, 309651.85727959156, amoeba.Value(), 1e-6)
	assert.InDelta(t, 774129.6431989789, total.Value(), 1e-6)
}

func TestProtozoa_AllOrNothing(t *testing.T) {
	calc := newCalculator()

	cases := []struct {
		name                            string
		flag, amoeba, dilution, dropsML domain.OptFloat
	}{
		{"missing flagellates", domain.Missing(), domain.Float(2), domain.Float(100), domain.Float(19)},
		{"missing amoebae", domain.Float(3), domain.Missing(), domain.Float(100), domain.Float(19)},
		{"missing dilution", domain.Float(3), domain.Float(2), domain.Missing(), domain.Float(19)},
		{"missing drops", domain.Float(3), domain.Float(2), domain.Float(100), domain.Missing()},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			total, flag, amoeba := calc.Protozoa(tt.flag, tt.amoeba, tt.dilution, tt.dropsML)
			assert.False(t, total.Valid())
			assert.False(t, flag.Valid())
			assert.False(t, amoeba.Valid())
		})
	}
}

func TestNematodeAbundance_Linear(t *testing.T) {
	calc := newCalculator()

	base := calc.NematodeAbundance(domain.Float(4), domain.Float(10), domain.Float(19))
	scaled := calc.NematodeAbundance(domain.Float(12), domain.Float(10), domain.Float(19))

	require.True(t, base.Valid())
	require.True(t, scaled.Valid())
	assert.Equal(t, 4.0*19*10, base.Value())
	assert.Equal(t, 3*base.Value(), scaled.Value())
}

func TestNematodeAbundance_MissingInputPropagates(t *testing.T) {
	calc := newCalculator()

	assert.False(t, calc.NematodeAbundance(domain.Missing(), domain.Float(10), domain.Float(19)).Valid())
	assert.False(t, calc.NematodeAbundance(domain.Float(4), domain.Missing(), domain.Float(19)).Valid())
	assert.False(t, calc.NematodeAbundance(domain.Float(4), domain.Float(10), domain.Missing()).Valid())
}

func TestComputeSample_IndependentMetricDegradation(t *testing.T) {
	calc := newCalculator()

	// Bacterial inputs are unusable, fungal inputs are fine: only the
	// bacterial-side metrics go missing.
	m := domain.SampleMeasurements{
		Key: domain.SampleKey{ID: "S1", Date: "2025-03-01"},
		BacterialCounts: []domain.OptFloat{
			domain.Missing(), domain.Missing(), domain.Missing(), domain.Missing(), domain.Missing(),
		},
		Fragments: []domain.Fragment{
			{LengthProportion: domain.Float(0.1), DiameterUm: domain.Float(2.0)},
		},
		MainDilution:      domain.Float(10),
		BacterialDilution: domain.Float(100),
		BacterialFOV:      domain.FOVHalf,
		DropsPerML:        domain.Float(19),
		Flagellates:       domain.Float(3),
		Amoebae:           domain.Float(2),
		Nematodes: domain.NematodeCounts{
			BacterialFeeding: domain.Float(1),
			FungalFeeding:    domain.Float(2),
			Predatory:        domain.Missing(),
			RootFeeding:      domain.Float(0),
		},
	}

	result := calc.ComputeSample(m)

	assert.Equal(t, m.Key, result.Key)
	assert.True(t, result.FungalBiomass.Valid())
	assert.False(t, result.BacterialBiomass.Valid())
	assert.False(t, result.FBRatio.Valid())
	assert.True(t, result.Protozoa.Valid())
	assert.True(t, result.Nematodes.BacterialFeeding.Valid())
	assert.True(t, result.Nematodes.FungalFeeding.Valid())
	assert.False(t, result.Nematodes.Predatory.Valid())
	require.True(t, result.Nematodes.RootFeeding.Valid())
	assert.Equal(t, 0.0, result.Nematodes.RootFeeding.Value())
}
