package integrity

import (
	"fmt"

	"github.com/kinolab/integrity/internal/crypto"
)

// Default primes for key generation.
const (
	DefaultPrimeOne = 197
	DefaultPrimeTwo = 199
)

// DefaultMaxSearchIterations is the default bound on each exponent search.
const DefaultMaxSearchIterations = crypto.DefaultMaxSearchIterations

// PublicKey is the encryption half of a key pair.
type PublicKey struct {
	E int64 `json:"e" yaml:"e"`
	N int64 `json:"n" yaml:"modulus"`
}

// PrivateKey is the decryption half of a key pair.
type PrivateKey struct {
	D int64 `json:"d" yaml:"d"`
	N int64 `json:"n" yaml:"modulus"`
}

// KeyPair holds both halves of a key together with the values they were
// derived from. It is never modified after generation and may be shared
// between goroutines.
type KeyPair struct {
	Public   PublicKey
	Private  PrivateKey
	PrimeOne int64
	PrimeTwo int64
	Phi      int64
}

// GenerateKeys derives a key pair from two primes. The inputs are not tested
// for primality.
func GenerateKeys(primeOne, primeTwo int64, opts ...KeyOption) (*KeyPair, error) {
	cfg := &keyConfig{maxSearchIterations: DefaultMaxSearchIterations}
	for _, opt := range opts {
		opt(cfg)
	}

	exp, err := crypto.DeriveExponents(primeOne, primeTwo, cfg.maxSearchIterations)
	if err != nil {
		return nil, wrapError(err)
	}

	return &KeyPair{
		Public:   PublicKey{E: exp.E, N: exp.N},
		Private:  PrivateKey{D: exp.D, N: exp.N},
		PrimeOne: primeOne,
		PrimeTwo: primeTwo,
		Phi:      exp.Phi,
	}, nil
}

// GenerateDefaultKeys derives a key pair from DefaultPrimeOne and DefaultPrimeTwo.
func GenerateDefaultKeys(opts ...KeyOption) (*KeyPair, error) {
	return GenerateKeys(DefaultPrimeOne, DefaultPrimeTwo, opts...)
}

// Transform computes value^exponent mod modulus. Encryption and decryption
// are both a Transform with the matching exponent.
// It panics if modulus <= 0 or exponent < 0.
func Transform(value, exponent, modulus int64) int64 {
	return crypto.Transform(value, exponent, modulus)
}

// Encrypt applies the public exponent to v.
func (k PublicKey) Encrypt(v int64) int64 {
	return crypto.Transform(v, k.E, k.N)
}

// Validate reports whether the key can be used for Transform.
func (k PublicKey) Validate() error {
	if k.N <= 0 || k.E <= 0 {
		return fmt.Errorf("%w: public key {e:%d n:%d}", ErrInvalidKey, k.E, k.N)
	}
	return nil
}

// Decrypt applies the private exponent to v.
func (k PrivateKey) Decrypt(v int64) int64 {
	return crypto.Transform(v, k.D, k.N)
}

// Validate reports whether the key can be used for Transform.
func (k PrivateKey) Validate() error {
	if k.N <= 0 || k.D <= 0 {
		return fmt.Errorf("%w: private key {d:%d n:%d}", ErrInvalidKey, k.D, k.N)
	}
	return nil
}

// Validate checks that both keys are usable, share a modulus, and invert each
// other on the digest characters and on a spread of values below n.
func (kp *KeyPair) Validate() error {
	if err := kp.Public.Validate(); err != nil {
		return err
	}
	if err := kp.Private.Validate(); err != nil {
		return err
	}
	if kp.Public.N != kp.Private.N {
		return fmt.Errorf("%w: moduli differ (%d != %d)", ErrInvalidKeyPair, kp.Public.N, kp.Private.N)
	}

	n := kp.Public.N
	check := func(v int64) error {
		if got := kp.Private.Decrypt(kp.Public.Encrypt(v)); got != v {
			return fmt.Errorf("%w: %d decrypts to %d", ErrInvalidKeyPair, v, got)
		}
		return nil
	}

	for _, ch := range "0123456789abcdef" {
		if v := int64(ch); v < n {
			if err := check(v); err != nil {
				return err
			}
		}
	}
	stride := max(n/256, 1)
	for v := int64(0); v < n; v += stride {
		if err := check(v); err != nil {
			return err
		}
	}
	return nil
}
