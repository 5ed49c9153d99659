package domain

// Fragment is a single fungal hyphal fragment measured in one field of
// view. Length is recorded as a proportion of the field-of-view
// diameter; diameter is measured directly in micrometres.
type Fragment struct {
	// LengthProportion is the fragment length as a fraction of the
	// field-of-view diameter.
	LengthProportion OptFloat

	// DiameterUm is the fragment diameter in micrometres.
	DiameterUm OptFloat
}

// Measured reports whether both measurements are present. Fragments
// with a missing length or diameter are excluded from the biomass sum,
// not treated as zero.
func (f Fragment) Measured() bool {
	return f.LengthProportion.Valid() && f.DiameterUm.Valid()
}
