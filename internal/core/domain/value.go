package domain

import "math"

// OptFloat is a numeric measurement that may be missing. Raw field data
// regularly has blank cells; every derived metric must propagate that
// missingness instead of substituting zeros or faulting.
//
// The zero value is the missing value.
type OptFloat struct {
	value float64
	valid bool
}

// Float returns a present OptFloat holding v.
func Float(v float64) OptFloat {
	return OptFloat{value: v, valid: true}
}

// Missing returns the missing OptFloat.
func Missing() OptFloat {
	return OptFloat{}
}

// Valid reports whether the value is present.
func (o OptFloat) Valid() bool {
	return o.valid
}

// Value returns the held value. Only meaningful when Valid() is true;
// for a missing value it returns 0.
func (o OptFloat) Value() float64 {
	return o.value
}

// Mul returns the product of o and others. Missing if any operand is
// missing.
func (o OptFloat) Mul(others ...OptFloat) OptFloat {
	if !o.valid {
		return Missing()
	}
	v := o.value
	for _, other := range others {
		if !other.valid {
			return Missing()
		}
		v *= other.value
	}
	return Float(v)
}

// Div returns o divided by denom. Missing if either operand is missing,
// or if the quotient would not be finite (zero denominator). A ratio
// over a zero denominator must surface as a blank cell in the output,
// never as +Inf or NaN.
func (o OptFloat) Div(denom OptFloat) OptFloat {
	if !o.valid || !denom.valid {
		return Missing()
	}
	q := o.value / denom.value
	if math.IsInf(q, 0) || math.IsNaN(q) {
		return Missing()
	}
	return Float(q)
}

// Add returns the sum of o and others. Missing if any operand is
// missing.
func (o OptFloat) Add(others ...OptFloat) OptFloat {
	if !o.valid {
		return Missing()
	}
	v := o.value
	for _, other := range others {
		if !other.valid {
			return Missing()
		}
		v += other.value
	}
	return Float(v)
}

// MeanPresent averages the present values in vs, ignoring missing
// entries. Missing if no value is present.
func MeanPresent(vs []OptFloat) OptFloat {
	sum := 0.0
	n := 0
	for _, v := range vs {
		if v.valid {
			sum += v.value
			n++
		}
	}
	if n == 0 {
		return Missing()
	}
	return Float(sum / float64(n))
}
