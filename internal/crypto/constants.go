package crypto

const (
	// DigestSize is the size of every supported digest in bytes.
	DigestSize = 16
	// HexDigestLength is the number of hex characters in an encoded digest,
	// and therefore the number of encrypted codes at the tail of a payload.
	HexDigestLength = 2 * DigestSize

	// FirstPublicExponent is where the public exponent search starts.
	FirstPublicExponent = 3

	// DefaultMaxSearchIterations bounds both exponent searches.
	DefaultMaxSearchIterations = 1 << 24
)
