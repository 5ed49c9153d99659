package domain

import "strings"

// FOVFraction is the portion of the microscope field of view over which
// bacterial counts were taken.
type FOVFraction string

// Recognised field-of-view fractions.
const (
	// FOVQuarter means counts were taken over a quarter field.
	FOVQuarter FOVFraction = "quarter"

	// FOVHalf means counts were taken over a half field.
	FOVHalf FOVFraction = "half"

	// FOVWhole means counts were taken over the whole field.
	FOVWhole FOVFraction = "whole"

	// FOVUndefined is any unrecognised label. It propagates as a
	// missing bacterial biomass, never as a divide-by-zero.
	FOVUndefined FOVFraction = ""
)

// ParseFOVFraction normalizes a raw field-of-view label. Matching is
// case-insensitive. Unrecognised labels map to FOVUndefined.
func ParseFOVFraction(raw string) FOVFraction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "quarter":
		return FOVQuarter
	case "half":
		return FOVHalf
	case "whole":
		return FOVWhole
	default:
		return FOVUndefined
	}
}

// IsValid returns true if the fraction is recognised.
func (f FOVFraction) IsValid() bool {
	switch f {
	case FOVQuarter, FOVHalf, FOVWhole:
		return true
	default:
		return false
	}
}

// Fraction returns the numeric fraction of the full field, or missing
// for FOVUndefined.
func (f FOVFraction) Fraction() OptFloat {
	switch f {
	case FOVQuarter:
		return Float(0.25)
	case FOVHalf:
		return Float(0.5)
	case FOVWhole:
		return Float(1.0)
	default:
		return Missing()
	}
}

// String returns the string representation.
func (f FOVFraction) String() string {
	if f == FOVUndefined {
		return "undefined"
	}
	return string(f)
}
