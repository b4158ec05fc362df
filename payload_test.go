package integrity

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func TestPayload_Split(t *testing.T) {
	p := make(Payload, HashLength+3)
	for i := range p {
		p[i] = int64(i)
	}

	if got := p.MessageCodes(); !slices.Equal(got, []int64{0, 1, 2}) {
		t.Errorf("MessageCodes() = %v, want [0 1 2]", got)
	}
	if got := p.HashCodes(); len(got) != HashLength || got[0] != 3 {
		t.Errorf("HashCodes() = %v", got)
	}

	short := make(Payload, HashLength-1)
	if short.MessageCodes() != nil || short.HashCodes() != nil {
		t.Error("short payload should have no parts")
	}

	exact := make(Payload, HashLength)
	if len(exact.MessageCodes()) != 0 || len(exact.HashCodes()) != HashLength {
		t.Error("payload of exactly HashLength should carry an empty message")
	}
}

func TestPayload_Tamper(t *testing.T) {
	p := Payload{75, 73, 78, 79}

	tampered, err := p.Tamper(1, 70)
	if err != nil {
		t.Fatalf("Tamper() error = %v", err)
	}
	if !slices.Equal(tampered, Payload{75, 70, 78, 79}) {
		t.Errorf("Tamper() = %v", tampered)
	}
	if p[1] != 73 {
		t.Error("Tamper() modified the receiver")
	}

	for _, idx := range []int{-1, 4} {
		if _, err := p.Tamper(idx, 0); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Tamper(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
}

func TestPayload_Clone(t *testing.T) {
	p := Payload{1, 2, 3}
	c := p.Clone()
	c[0] = 9
	if p[0] != 1 {
		t.Error("Clone() shares storage with the original")
	}
}

func TestPayload_JSON(t *testing.T) {
	enc := Encoded{Payload: Payload{75, 73}, Hash: "ab"}
	data, err := json.Marshal(enc)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `{"payload":[75,73],"hash":"ab"}` {
		t.Errorf("json.Marshal() = %s", data)
	}
}

func TestPayload_ArmorRoundTrip(t *testing.T) {
	kp := defaultKeys(t)
	sent, err := Encode("KINO", kp.Public)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	for _, a := range []Armor{ArmorBase58, ArmorBase64URL, ArmorJSON} {
		t.Run(string(a), func(t *testing.T) {
			text, err := sent.Payload.Armor(a)
			if err != nil {
				t.Fatalf("Armor() error = %v", err)
			}
			parsed, err := ParsePayload(text, a)
			if err != nil {
				t.Fatalf("ParsePayload() error = %v", err)
			}
			got, err := Decode(parsed, kp.Private)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got.Message != "KINO" || !got.HashesMatch {
				t.Errorf("Decode() = %+v", got)
			}
		})
	}
}

func TestParsePayload_Errors(t *testing.T) {
	if _, err := ParsePayload("[1,", ArmorJSON); !errors.Is(err, ErrInvalidArmor) {
		t.Errorf("ParsePayload(bad json) error = %v, want ErrInvalidArmor", err)
	}
	if _, err := ParsePayload("abc", "rot13"); !errors.Is(err, ErrUnknownArmor) {
		t.Errorf("ParsePayload(unknown armor) error = %v, want ErrUnknownArmor", err)
	}
	if _, err := ParseArmor("rot13"); !errors.Is(err, ErrUnknownArmor) {
		t.Errorf("ParseArmor() error = %v, want ErrUnknownArmor", err)
	}
}
