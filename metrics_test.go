package integrity

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsCodecActivity(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	codec, err := NewCodec(WithMetrics(m))
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	kp := defaultKeys(t)

	sent, err := codec.Encode("KINO", kp.Public)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if _, err := codec.Decode(sent.Payload, kp.Private); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	tampered, _ := sent.Payload.Tamper(1, 70)
	if _, err := codec.Decode(tampered, kp.Private); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got := testutil.ToFloat64(m.encoded); got != 1 {
		t.Errorf("encoded = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.decoded); got != 2 {
		t.Errorf("decoded = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.mismatches); got != 1 {
		t.Errorf("mismatches = %v, want 1", got)
	}

	count, err := testutil.GatherAndCount(reg, "integrity_payload_length")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("payload_length series = %d, want 1", count)
	}
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewMetrics(reg); err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	if _, err := NewMetrics(reg); err == nil {
		t.Error("second NewMetrics() on the same registry should fail")
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.observeEncode(36)
	m.observeDecode(36, false)

	unregistered, err := NewMetrics(nil)
	if err != nil {
		t.Fatalf("NewMetrics(nil) error = %v", err)
	}
	unregistered.observeEncode(36)
	if got := testutil.ToFloat64(unregistered.encoded); got != 1 {
		t.Errorf("encoded = %v, want 1", got)
	}
}
