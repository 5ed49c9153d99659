package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDilution normalizes a dilution ratio string of the form "1:N" to
// the numeric factor N. Whitespace around either side of the colon is
// tolerated; lab sheets are not consistent about it. A bare numeric
// string is accepted as the factor itself, since some exports have
// already been normalized upstream.
//
// An empty string is a missing dilution, not an error.
func ParseDilution(raw string) (OptFloat, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Missing(), nil
	}

	if left, right, found := strings.Cut(raw, ":"); found {
		left = strings.TrimSpace(left)
		right = strings.TrimSpace(right)
		if left != "1" {
			return Missing(), fmt.Errorf("%w: %q (expected \"1:N\")", ErrInvalidDilution, raw)
		}
		factor, err := strconv.ParseFloat(right, 64)
		if err != nil || factor <= 0 {
			return Missing(), fmt.Errorf("%w: %q", ErrInvalidDilution, raw)
		}
		return Float(factor), nil
	}

	factor, err := strconv.ParseFloat(raw, 64)
	if err != nil || factor <= 0 {
		return Missing(), fmt.Errorf("%w: %q", ErrInvalidDilution, raw)
	}
	return Float(factor), nil
}
