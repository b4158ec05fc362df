package integrity

import (
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestDefaultConstants(t *testing.T) {
	if DefaultPrimeOne != 197 || DefaultPrimeTwo != 199 {
		t.Errorf("default primes = (%d, %d), want (197, 199)", DefaultPrimeOne, DefaultPrimeTwo)
	}
	if DefaultMaxSearchIterations != 1<<24 {
		t.Errorf("DefaultMaxSearchIterations = %d, want %d", DefaultMaxSearchIterations, 1<<24)
	}
	if HashLength != 32 {
		t.Errorf("HashLength = %d, want 32", HashLength)
	}
}

func TestWithDigest(t *testing.T) {
	tests := []struct {
		digest Digest
	}{
		{DigestMD5},
		{DigestBLAKE2b128},
		{DigestSHAKE128},
	}

	for _, tt := range tests {
		t.Run(string(tt.digest), func(t *testing.T) {
			cfg := &codecConfig{}
			WithDigest(tt.digest)(cfg)
			if cfg.digest != tt.digest {
				t.Errorf("digest = %s, want %s", cfg.digest, tt.digest)
			}
		})
	}
}

func TestWithLogger(t *testing.T) {
	cfg := &codecConfig{}
	logger := slog.New(slog.DiscardHandler)
	WithLogger(logger)(cfg)
	if cfg.logger != logger {
		t.Error("logger was not set")
	}
}

func TestWithMetrics(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	cfg := &codecConfig{}
	WithMetrics(m)(cfg)
	if cfg.metrics != m {
		t.Error("metrics was not set")
	}
}

func TestWithMaxSearchIterations(t *testing.T) {
	cfg := &keyConfig{}
	WithMaxSearchIterations(1000)(cfg)
	if cfg.maxSearchIterations != 1000 {
		t.Errorf("maxSearchIterations = %d, want 1000", cfg.maxSearchIterations)
	}
}

func TestMultipleOptions(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	c, err := NewCodec(
		WithDigest(DigestSHAKE128),
		WithLogger(logger),
		WithMetrics(nil),
	)
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	if c.Digest() != DigestSHAKE128 {
		t.Errorf("Digest() = %s, want shake128", c.Digest())
	}
	if c.metrics != nil {
		t.Error("metrics should stay nil")
	}
}
