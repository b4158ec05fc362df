package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kinolab/integrity"
)

// defaultConfigPath is tried when no --config is given.
const defaultConfigPath = "integrity.yaml"

// Settings is the driver configuration. Sources are applied in this order:
// defaults, YAML file, .env file and environment, command line flags.
type Settings struct {
	Keys  KeySettings   `yaml:"keys"`
	Codec CodecSettings `yaml:"codec"`
	Demo  DemoSettings  `yaml:"demo"`
	Log   LogSettings   `yaml:"log"`
}

// KeySettings selects the primes and bounds the exponent searches.
type KeySettings struct {
	PrimeOne            int64 `yaml:"primeOne"`
	PrimeTwo            int64 `yaml:"primeTwo"`
	MaxSearchIterations int   `yaml:"maxSearchIterations"`
}

// CodecSettings names the digest and payload armor.
type CodecSettings struct {
	Digest string `yaml:"digest"`
	Armor  string `yaml:"armor"`
}

// DemoSettings controls the message and the tampering of the demo command.
type DemoSettings struct {
	Message     string `yaml:"message"`
	TamperIndex int    `yaml:"tamperIndex"`
	TamperValue int64  `yaml:"tamperValue"`
}

// LogSettings configures the driver logger.
type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultSettings sends KINO under the keys derived from 197 and 199.
func DefaultSettings() Settings {
	return Settings{
		Keys: KeySettings{
			PrimeOne:            integrity.DefaultPrimeOne,
			PrimeTwo:            integrity.DefaultPrimeTwo,
			MaxSearchIterations: integrity.DefaultMaxSearchIterations,
		},
		Codec: CodecSettings{
			Digest: string(integrity.DigestMD5),
			Armor:  string(integrity.ArmorBase58),
		},
		Demo: DemoSettings{
			Message:     "KINO",
			TamperIndex: 1,
			TamperValue: 70,
		},
		Log: LogSettings{
			Level:  "warn",
			Format: "text",
		},
	}
}

// LoadSettings reads the YAML file at path over the defaults. An empty path
// falls back to defaultConfigPath, which may be absent.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}

// envLookup returns a lookup that prefers the process environment over the
// values of envFile. A missing envFile is not an error.
func envLookup(getenv func(string) string, envFile string) (func(string) string, error) {
	vars := map[string]string{}
	if envFile != "" {
		read, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			vars = read
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read env file %s: %w", envFile, err)
		}
	}

	return func(key string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(vars[key])
	}, nil
}

// ApplyEnvOverrides applies INTEGRITY_* variables to s.
func ApplyEnvOverrides(s *Settings, lookup func(string) string) error {
	if err := envInt64(lookup, "INTEGRITY_PRIME_ONE", &s.Keys.PrimeOne); err != nil {
		return err
	}
	if err := envInt64(lookup, "INTEGRITY_PRIME_TWO", &s.Keys.PrimeTwo); err != nil {
		return err
	}
	if v := lookup("INTEGRITY_MAX_SEARCH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("INTEGRITY_MAX_SEARCH: %w", err)
		}
		s.Keys.MaxSearchIterations = n
	}
	if v := lookup("INTEGRITY_DIGEST"); v != "" {
		s.Codec.Digest = v
	}
	if v := lookup("INTEGRITY_ARMOR"); v != "" {
		s.Codec.Armor = v
	}
	if v := lookup("INTEGRITY_MESSAGE"); v != "" {
		s.Demo.Message = v
	}
	if v := lookup("INTEGRITY_LOG_LEVEL"); v != "" {
		s.Log.Level = v
	}
	if v := lookup("INTEGRITY_LOG_FORMAT"); v != "" {
		s.Log.Format = v
	}
	return nil
}

func envInt64(lookup func(string) string, key string, dst *int64) error {
	v := lookup(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// newLogger builds the driver logger writing to w.
func newLogger(w io.Writer, s LogSettings) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.Level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", s.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(s.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", s.Format)
	}
}
