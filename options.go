package integrity

import (
	"log/slog"
)

// codecConfig holds configuration for a Codec.
type codecConfig struct {
	digest  Digest
	logger  *slog.Logger
	metrics *Metrics
}

// keyConfig holds configuration for key generation.
type keyConfig struct {
	maxSearchIterations int
}

// Option configures a Codec.
type Option func(*codecConfig)

// KeyOption configures key generation.
type KeyOption func(*keyConfig)

// WithDigest sets the digest algorithm.
// Default: DigestMD5
func WithDigest(d Digest) Option {
	return func(c *codecConfig) {
		c.digest = d
	}
}

// WithLogger sets the logger used for diagnostics such as integrity mismatches.
// Default: a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *codecConfig) {
		c.logger = logger
	}
}

// WithMetrics records encode and decode activity in m.
func WithMetrics(m *Metrics) Option {
	return func(c *codecConfig) {
		c.metrics = m
	}
}

// WithMaxSearchIterations bounds each exponent search during key generation.
// Non-positive values restore the default.
// Default: DefaultMaxSearchIterations (16777216)
func WithMaxSearchIterations(n int) KeyOption {
	return func(c *keyConfig) {
		c.maxSearchIterations = n
	}
}
