package integrity

import (
	"errors"
	"fmt"

	"github.com/kinolab/integrity/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrKeyGeneration is matched by every *KeyGenerationError.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrInvalidPrime is returned when a prime input is smaller than 2.
	ErrInvalidPrime = crypto.ErrInvalidPrime

	// ErrPublicExponentNotFound is the cause of a KeyGenerationError whose
	// public exponent search hit the iteration ceiling.
	ErrPublicExponentNotFound = crypto.ErrPublicExponentNotFound

	// ErrPrivateExponentNotFound is the cause of a KeyGenerationError whose
	// private exponent search found no inverse.
	ErrPrivateExponentNotFound = crypto.ErrPrivateExponentNotFound

	// ErrModulusOverflow is the cause of a KeyGenerationError whose primes
	// multiply past the int64 range.
	ErrModulusOverflow = crypto.ErrModulusOverflow

	// ErrInvalidKey is returned when a key has a non-positive exponent or modulus.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidKeyPair is returned when a public and private key do not invert each other.
	ErrInvalidKeyPair = errors.New("private key does not match public key")

	// ErrInvalidMessage is returned when a plaintext is not valid UTF-8.
	ErrInvalidMessage = errors.New("message is not valid UTF-8")

	// ErrPayloadTooShort is returned when a payload cannot hold the encrypted digest.
	ErrPayloadTooShort = errors.New("payload too short")

	// ErrIndexOutOfRange is returned when tampering with a position outside the payload.
	ErrIndexOutOfRange = errors.New("payload index out of range")

	// ErrIntegrityMismatch is matched by *IntegrityMismatch.
	ErrIntegrityMismatch = errors.New("integrity mismatch")

	// ErrUnknownDigest is returned for an unrecognized digest algorithm.
	ErrUnknownDigest = crypto.ErrUnknownDigest

	// ErrUnknownArmor is returned for an unrecognized payload armor.
	ErrUnknownArmor = crypto.ErrUnknownArmor

	// ErrInvalidArmor is returned when armored payload text cannot be decoded.
	ErrInvalidArmor = crypto.ErrInvalidArmor

	// ErrInvalidKeyFile is returned when a key file is malformed.
	ErrInvalidKeyFile = errors.New("invalid key file")
)

// IntegrityError is implemented by all typed errors of this package.
type IntegrityError interface {
	error
	IntegrityError() // marker method
}

// KeyGenerationError reports an exponent search that failed to terminate
// within its bound.
type KeyGenerationError struct {
	PrimeOne   int64
	PrimeTwo   int64
	Exponent   int64 // public exponent reached when the search stopped
	Iterations int
	Err        error
}

func (e *KeyGenerationError) Error() string {
	if e.Iterations > 0 {
		return fmt.Sprintf("key generation failed for primes (%d, %d) at e=%d after %d iterations: %v",
			e.PrimeOne, e.PrimeTwo, e.Exponent, e.Iterations, e.Err)
	}
	return fmt.Sprintf("key generation failed for primes (%d, %d): %v", e.PrimeOne, e.PrimeTwo, e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyGenerationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *KeyGenerationError) Is(target error) bool {
	return target == ErrKeyGeneration
}

// IntegrityError implements the IntegrityError interface.
func (e *KeyGenerationError) IntegrityError() {}

// IntegrityMismatch carries both digests of a payload that failed verification.
// Decode never returns it as an error; see VerificationResult.Err.
type IntegrityMismatch struct {
	Received string // digest decrypted from the payload
	Computed string // digest of the reconstructed message
}

func (e *IntegrityMismatch) Error() string {
	return fmt.Sprintf("integrity mismatch: received digest %s, computed %s", e.Received, e.Computed)
}

// Is implements errors.Is for sentinel error matching.
func (e *IntegrityMismatch) Is(target error) bool {
	return target == ErrIntegrityMismatch
}

// IntegrityError implements the IntegrityError interface.
func (e *IntegrityMismatch) IntegrityError() {}

// wrapError converts internal crypto errors to public errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var searchErr *crypto.SearchError
	if errors.As(err, &searchErr) {
		return &KeyGenerationError{
			PrimeOne:   searchErr.PrimeOne,
			PrimeTwo:   searchErr.PrimeTwo,
			Exponent:   searchErr.Exponent,
			Iterations: searchErr.Iterations,
			Err:        searchErr.Err,
		}
	}

	return err
}
