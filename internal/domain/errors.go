package domain

import "errors"

var (
	// ErrInputMismatch is returned when destinations and labels differ in length.
	ErrInputMismatch = errors.New("destinations and names must have the same length")

	// ErrSolverContractViolation is returned when a solver permutation is not a
	// bijection over the destination indices.
	ErrSolverContractViolation = errors.New("solver returned an invalid permutation")

	// ErrInvalidLocation is returned for NaN or infinite coordinates.
	ErrInvalidLocation = errors.New("location coordinates must be finite")
)

// ErrLocationNotFound is returned by geocoders when a query has no match.
var ErrLocationNotFound = errors.New("location not found")
