package integrity

import (
	"fmt"
	"slices"

	"github.com/kinolab/integrity/internal/crypto"
)

// Payload is the transmitted sequence: message code points followed by
// HashLength encrypted digest codes.
type Payload []int64

// MessageCodes returns the message part of the payload.
// It is empty when the payload is shorter than HashLength.
func (p Payload) MessageCodes() []int64 {
	if len(p) < HashLength {
		return nil
	}
	return p[:len(p)-HashLength]
}

// HashCodes returns the encrypted digest part of the payload.
// It is nil when the payload is shorter than HashLength.
func (p Payload) HashCodes() []int64 {
	if len(p) < HashLength {
		return nil
	}
	return p[len(p)-HashLength:]
}

// Clone returns a copy of the payload.
func (p Payload) Clone() Payload {
	return slices.Clone(p)
}

// Tamper returns a copy of the payload with the element at index replaced
// by value. The receiver is not modified.
func (p Payload) Tamper(index int, value int64) (Payload, error) {
	if index < 0 || index >= len(p) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(p))
	}
	out := p.Clone()
	out[index] = value
	return out, nil
}

// Armor identifies a textual encoding of a payload.
type Armor = crypto.Armor

// Armor constants.
const (
	// ArmorBase58 is zig-zag varints in base58. This is the default.
	ArmorBase58 = crypto.ArmorBase58
	// ArmorBase64URL is zig-zag varints in URL-safe base64 without padding.
	ArmorBase64URL = crypto.ArmorBase64URL
	// ArmorJSON is a JSON number array.
	ArmorJSON = crypto.ArmorJSON
)

// ParseArmor resolves an armor name. An empty name selects ArmorBase58.
func ParseArmor(name string) (Armor, error) {
	return crypto.ParseArmor(name)
}

// Armor renders the payload as text.
func (p Payload) Armor(a Armor) (string, error) {
	return a.Encode(p)
}

// ParsePayload decodes armored payload text.
func ParsePayload(text string, a Armor) (Payload, error) {
	values, err := a.Decode(text)
	if err != nil {
		return nil, err
	}
	return Payload(values), nil
}
