package integrity

import (
	"fmt"
	"math"
	"math/bits"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// KeyFileVersion is the current key file format version.
const KeyFileVersion = 1

// ExportedKeyPair is the on-disk form of a key pair.
// WARNING: it contains the private exponent - handle securely.
type ExportedKeyPair struct {
	// Version is the key file format version. MUST be 1.
	Version int `yaml:"version"`
	// PrimeOne and PrimeTwo are the generating primes, when known.
	PrimeOne int64 `yaml:"primeOne,omitempty"`
	PrimeTwo int64 `yaml:"primeTwo,omitempty"`
	// Digest is the digest algorithm peers agreed to use with this key.
	// Empty means DigestMD5.
	Digest Digest `yaml:"digest,omitempty"`
	// Public is the encryption key.
	Public PublicKey `yaml:"publicKey"`
	// Private is the decryption key.
	Private PrivateKey `yaml:"privateKey"`
	// ExportedAt is the export timestamp. Informational only.
	ExportedAt time.Time `yaml:"exportedAt"`
}

// Export returns the key pair in exportable form, tagged with digest.
func (kp *KeyPair) Export(digest Digest) *ExportedKeyPair {
	return &ExportedKeyPair{
		Version:    KeyFileVersion,
		PrimeOne:   kp.PrimeOne,
		PrimeTwo:   kp.PrimeTwo,
		Digest:     digest,
		Public:     kp.Public,
		Private:    kp.Private,
		ExportedAt: time.Now().UTC(),
	}
}

// Validate checks the exported data without touching the key arithmetic.
func (e *ExportedKeyPair) Validate() error {
	if e.Version != KeyFileVersion {
		return fmt.Errorf("%w: unsupported version %d, expected %d", ErrInvalidKeyFile, e.Version, KeyFileVersion)
	}
	if err := e.Public.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKeyFile, err)
	}
	if err := e.Private.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKeyFile, err)
	}
	if e.Public.N != e.Private.N {
		return fmt.Errorf("%w: public modulus %d differs from private modulus %d", ErrInvalidKeyFile, e.Public.N, e.Private.N)
	}
	if (e.PrimeOne == 0) != (e.PrimeTwo == 0) {
		return fmt.Errorf("%w: primeOne and primeTwo must be set together", ErrInvalidKeyFile)
	}
	if e.PrimeOne != 0 {
		if e.PrimeOne < 2 || e.PrimeTwo < 2 {
			return fmt.Errorf("%w: primes (%d, %d) must be at least 2", ErrInvalidKeyFile, e.PrimeOne, e.PrimeTwo)
		}
		hi, lo := bits.Mul64(uint64(e.PrimeOne), uint64(e.PrimeTwo))
		if hi != 0 || lo > math.MaxInt64 || int64(lo) != e.Public.N {
			return fmt.Errorf("%w: primes %d*%d do not give modulus %d", ErrInvalidKeyFile, e.PrimeOne, e.PrimeTwo, e.Public.N)
		}
	}
	if _, err := ParseDigest(string(e.Digest)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKeyFile, err)
	}
	return nil
}

// ImportKeyPair validates exported data and rebuilds the key pair, checking
// that the two keys invert each other.
func ImportKeyPair(e *ExportedKeyPair) (*KeyPair, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	kp := &KeyPair{
		Public:   e.Public,
		Private:  e.Private,
		PrimeOne: e.PrimeOne,
		PrimeTwo: e.PrimeTwo,
	}
	// Validate bounded the primes by n, so phi cannot overflow.
	if e.PrimeOne != 0 {
		kp.Phi = (e.PrimeOne - 1) * (e.PrimeTwo - 1)
	}
	if err := kp.Validate(); err != nil {
		return nil, err
	}
	return kp, nil
}

// MarshalKeyFile encodes exported data as YAML.
func MarshalKeyFile(e *ExportedKeyPair) ([]byte, error) {
	return yaml.Marshal(e)
}

// UnmarshalKeyFile decodes and validates YAML key file data.
func UnmarshalKeyFile(data []byte) (*ExportedKeyPair, error) {
	var e ExportedKeyPair
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyFile, err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// WriteKeyFile writes exported data to path, readable by the owner only.
func WriteKeyFile(path string, e *ExportedKeyPair) error {
	data, err := MarshalKeyFile(e)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ReadKeyFile reads and validates a key file.
func ReadKeyFile(path string) (*ExportedKeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalKeyFile(data)
}
