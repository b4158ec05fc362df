package crypto

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"strings"

	"github.com/mr-tron/base58"
)

// Armor identifies a textual encoding for a payload.
type Armor string

const (
	// ArmorBase58 packs elements as zig-zag varints and base58-encodes them.
	ArmorBase58 Armor = "base58"
	// ArmorBase64URL packs elements as zig-zag varints and encodes them as
	// URL-safe base64 without padding.
	ArmorBase64URL Armor = "base64url"
	// ArmorJSON renders the payload as a JSON number array.
	ArmorJSON Armor = "json"
)

// ParseArmor resolves an armor name. An empty name selects ArmorBase58.
func ParseArmor(name string) (Armor, error) {
	switch a := Armor(strings.ToLower(strings.TrimSpace(name))); a {
	case "":
		return ArmorBase58, nil
	case ArmorBase58, ArmorBase64URL, ArmorJSON:
		return a, nil
	default:
		return "", ErrUnknownArmor
	}
}

// PackVarints encodes values as consecutive zig-zag varints.
func PackVarints(values []int64) []byte {
	buf := make([]byte, 0, len(values)*3)
	for _, v := range values {
		buf = binary.AppendVarint(buf, v)
	}
	return buf
}

// UnpackVarints decodes the output of PackVarints.
func UnpackVarints(data []byte) ([]int64, error) {
	values := make([]int64, 0, len(data)/2)
	for len(data) > 0 {
		v, n := binary.Varint(data)
		if n <= 0 {
			return nil, ErrInvalidArmor
		}
		values = append(values, v)
		data = data[n:]
	}
	return values, nil
}

// Encode armors values.
func (a Armor) Encode(values []int64) (string, error) {
	switch a {
	case ArmorBase58, "":
		return base58.Encode(PackVarints(values)), nil
	case ArmorBase64URL:
		return base64.RawURLEncoding.EncodeToString(PackVarints(values)), nil
	case ArmorJSON:
		if values == nil {
			values = []int64{}
		}
		data, err := json.Marshal(values)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", ErrUnknownArmor
	}
}

// Decode parses armored text back into values.
func (a Armor) Decode(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	switch a {
	case ArmorBase58, "":
		data, err := base58.Decode(s)
		if err != nil {
			return nil, ErrInvalidArmor
		}
		return UnpackVarints(data)
	case ArmorBase64URL:
		data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
		if err != nil {
			return nil, ErrInvalidArmor
		}
		return UnpackVarints(data)
	case ArmorJSON:
		var values []int64
		if err := json.Unmarshal([]byte(s), &values); err != nil {
			return nil, ErrInvalidArmor
		}
		return values, nil
	default:
		return nil, ErrUnknownArmor
	}
}
