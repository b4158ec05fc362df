package crypto

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"strings"

	"github.com/cloudflare/circl/xof"
	"golang.org/x/crypto/blake2b"
)

// Digest identifies a 128-bit digest algorithm.
type Digest string

const (
	// DigestMD5 is MD5, the default.
	DigestMD5 Digest = "md5"
	// DigestBLAKE2b128 is BLAKE2b with a 16-byte output.
	DigestBLAKE2b128 Digest = "blake2b-128"
	// DigestSHAKE128 is SHAKE128 squeezed to 16 bytes.
	DigestSHAKE128 Digest = "shake128"
)

// Digests lists the supported algorithms in display order.
var Digests = []Digest{DigestMD5, DigestBLAKE2b128, DigestSHAKE128}

// ParseDigest resolves a digest name, case-insensitively.
// An empty name selects DigestMD5.
func ParseDigest(name string) (Digest, error) {
	switch d := Digest(strings.ToLower(strings.TrimSpace(name))); d {
	case "":
		return DigestMD5, nil
	case DigestMD5, DigestBLAKE2b128, DigestSHAKE128:
		return d, nil
	default:
		return "", ErrUnknownDigest
	}
}

// Sum returns the 16-byte digest of data.
func (d Digest) Sum(data []byte) ([]byte, error) {
	switch d {
	case DigestMD5, "":
		sum := md5.Sum(data)
		return sum[:], nil
	case DigestBLAKE2b128:
		h, err := blake2b.New(DigestSize, nil)
		if err != nil {
			return nil, err
		}
		return sumHash(h, data), nil
	case DigestSHAKE128:
		x := xof.SHAKE128.New()
		if _, err := x.Write(data); err != nil {
			return nil, err
		}
		out := make([]byte, DigestSize)
		if _, err := x.Read(out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, ErrUnknownDigest
	}
}

// HexSum returns the lowercase hex digest of s, always HexDigestLength characters.
func (d Digest) HexSum(s string) (string, error) {
	sum, err := d.Sum([]byte(s))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}

func (d Digest) String() string {
	if d == "" {
		return string(DigestMD5)
	}
	return string(d)
}

func sumHash(h hash.Hash, data []byte) []byte {
	h.Write(data)
	return h.Sum(nil)
}
