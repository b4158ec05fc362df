package integrity

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kinolab/integrity/internal/crypto"
)

// HashLength is the number of encrypted digest codes at the end of every payload.
const HashLength = crypto.HexDigestLength

// Digest identifies the 128-bit digest used to fingerprint messages.
type Digest = crypto.Digest

// Digest algorithm constants.
const (
	// DigestMD5 is MD5, the default.
	DigestMD5 = crypto.DigestMD5
	// DigestBLAKE2b128 is BLAKE2b with a 16-byte output.
	DigestBLAKE2b128 = crypto.DigestBLAKE2b128
	// DigestSHAKE128 is SHAKE128 squeezed to 16 bytes.
	DigestSHAKE128 = crypto.DigestSHAKE128
)

// ParseDigest resolves a digest name. An empty name selects DigestMD5.
func ParseDigest(name string) (Digest, error) {
	return crypto.ParseDigest(name)
}

// Encoded is the sender side output of Encode.
type Encoded struct {
	// Payload is what gets transmitted.
	Payload Payload `json:"payload"`
	// Hash is the hex digest of the plaintext, kept for diagnostics.
	Hash string `json:"hash"`
}

// Codec encodes messages into payloads and verifies received payloads.
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	digest  Digest
	logger  *slog.Logger
	metrics *Metrics
}

var defaultCodec = &Codec{
	digest: DigestMD5,
	logger: slog.New(slog.DiscardHandler),
}

// NewCodec creates a Codec with the given options.
func NewCodec(opts ...Option) (*Codec, error) {
	cfg := &codecConfig{digest: DigestMD5}
	for _, opt := range opts {
		opt(cfg)
	}

	digest, err := crypto.ParseDigest(string(cfg.digest))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, cfg.digest)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Codec{
		digest:  digest,
		logger:  logger.With("digest", string(digest)),
		metrics: cfg.metrics,
	}, nil
}

// Digest returns the digest algorithm of the codec.
func (c *Codec) Digest() Digest {
	return c.digest
}

// Encode builds the payload for plaintext: the code point of every
// character followed by the encrypted code of every hex digit of its digest.
func (c *Codec) Encode(plaintext string, key PublicKey) (*Encoded, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if !utf8.ValidString(plaintext) {
		return nil, ErrInvalidMessage
	}

	hash, err := c.digest.HexSum(plaintext)
	if err != nil {
		return nil, err
	}

	payload := make(Payload, 0, utf8.RuneCountInString(plaintext)+HashLength)
	for _, r := range plaintext {
		payload = append(payload, int64(r))
	}
	for _, ch := range hash {
		payload = append(payload, key.Encrypt(int64(ch)))
	}

	c.metrics.observeEncode(len(payload))
	c.logger.Debug("message encoded", "length", len(payload), "hash", hash)

	return &Encoded{Payload: payload, Hash: hash}, nil
}

// Decode reconstructs the message carried by payload, decrypts the digest it
// carries and compares it with a freshly computed digest of the message.
//
// A mismatch is reported through VerificationResult.HashesMatch, not as an
// error. Errors are returned only for unusable input.
//
// Detection is probabilistic. Every code that is not a valid code point
// decodes to U+FFFD, so replacing a U+FFFD element with any other invalid
// code goes unnoticed. Hash codes are reduced mod n before decryption, so
// adding a multiple of n to one of them goes unnoticed too.
func (c *Codec) Decode(payload Payload, key PrivateKey) (*VerificationResult, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if len(payload) < HashLength {
		return nil, fmt.Errorf("%w: %d elements, need at least %d", ErrPayloadTooShort, len(payload), HashLength)
	}

	var message strings.Builder
	for _, code := range payload.MessageCodes() {
		message.WriteRune(codeToRune(code))
	}

	var received strings.Builder
	for _, code := range payload.HashCodes() {
		received.WriteRune(codeToRune(key.Decrypt(code)))
	}

	computed, err := c.digest.HexSum(message.String())
	if err != nil {
		return nil, err
	}

	result := &VerificationResult{
		Message:      message.String(),
		Hash:         computed,
		ReceivedHash: received.String(),
		HashesMatch:  computed == received.String(),
	}

	c.metrics.observeDecode(len(payload), result.HashesMatch)
	if result.HashesMatch {
		c.logger.Debug("message verified", "length", len(payload), "hash", computed)
	} else {
		c.logger.Warn("received message does not match its digest",
			"received_hash", result.ReceivedHash,
			"computed_hash", computed,
		)
	}

	return result, nil
}

// Encode encodes plaintext with an MD5 codec.
func Encode(plaintext string, key PublicKey) (*Encoded, error) {
	return defaultCodec.Encode(plaintext, key)
}

// Decode decodes and verifies payload with an MD5 codec.
func Decode(payload Payload, key PrivateKey) (*VerificationResult, error) {
	return defaultCodec.Decode(payload, key)
}

// codeToRune maps any integer to a character. Values that are not valid
// code points become U+FFFD.
func codeToRune(code int64) rune {
	if code < 0 || code > unicode.MaxRune {
		return utf8.RuneError
	}
	r := rune(code)
	if !utf8.ValidRune(r) {
		return utf8.RuneError
	}
	return r
}
