package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. Note that a missing
// measurement is NOT an error anywhere in the calculator: missing data
// propagates as an undefined OptFloat, never as an error value.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDilution indicates a dilution string that is not of the
	// form "1:N" with N > 0.
	ErrInvalidDilution = errors.New("invalid dilution ratio")

	// ErrInvalidConstants indicates a Constants value that fails
	// validation (non-positive diameter, density or field counts).
	ErrInvalidConstants = errors.New("invalid scaling constants")

	// ErrMalformedTable indicates an input table whose header or rows do
	// not match the expected schema. Raised by table adapters, never by
	// the calculator itself.
	ErrMalformedTable = errors.New("malformed input table")
)
