// Package simerr defines the error kinds shared by the simulation packages.
// Call sites wrap one of the sentinels with context; callers test with errors.Is.
package simerr

import "errors"

var (
	// ErrValidation: unknown commodity, non-positive amount, malformed input.
	ErrValidation = errors.New("validation error")
	// ErrInsufficient: credits, cargo space, fuel or held quantity too low.
	ErrInsufficient = errors.New("insufficient resource")
	// ErrInvalidTrade: trade direction does not match the port's fixed assignment.
	ErrInvalidTrade = errors.New("invalid trade")
	// ErrInvariant: a generation or logic bug (disconnected graph, combat round cap).
	ErrInvariant = errors.New("internal invariant violation")
)
