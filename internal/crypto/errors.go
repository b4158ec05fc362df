package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPrime is returned when a prime input is smaller than 2.
	ErrInvalidPrime = errors.New("prime input must be at least 2")

	// ErrModulusOverflow is returned when p*q does not fit in an int64.
	ErrModulusOverflow = errors.New("modulus overflows int64")

	// ErrPublicExponentNotFound is returned when no public exponent candidate
	// was found within the iteration ceiling.
	ErrPublicExponentNotFound = errors.New("public exponent search exhausted")

	// ErrPrivateExponentNotFound is returned when no private exponent was found
	// within the iteration ceiling or a full residue cycle.
	ErrPrivateExponentNotFound = errors.New("private exponent search exhausted")

	// ErrUnknownDigest is returned for an unrecognized digest algorithm name.
	ErrUnknownDigest = errors.New("unknown digest algorithm")

	// ErrUnknownArmor is returned for an unrecognized armor name.
	ErrUnknownArmor = errors.New("unknown armor")

	// ErrInvalidArmor is returned when armored text cannot be decoded.
	ErrInvalidArmor = errors.New("invalid armored payload")
)

// SearchError describes a failed exponent search.
type SearchError struct {
	PrimeOne   int64
	PrimeTwo   int64
	Exponent   int64 // public exponent reached when the search stopped
	Iterations int
	Err        error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("key generation for primes (%d, %d) failed after %d iterations at e=%d: %v",
		e.PrimeOne, e.PrimeTwo, e.Iterations, e.Exponent, e.Err)
}

// Unwrap returns the underlying error.
func (e *SearchError) Unwrap() error {
	return e.Err
}
