package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/kinolab/integrity"
)

const version = "0.1.0"

// exitMismatch is the exit status of decode when the digests differ.
const exitMismatch = 2

// Config holds the process dependencies of the driver.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
}

// DefaultConfig returns a Config bound to the process.
func DefaultConfig() Config {
	return Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}

// driver carries state prepared in the Before hook to the commands.
type driver struct {
	cfg      Config
	settings Settings
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *integrity.Metrics
}

func run(args []string, cfg Config) error {
	d := &driver{cfg: cfg}
	return d.app().Run(args)
}

func (d *driver) app() *cli.App {
	return &cli.App{
		Name:      "integrity",
		Usage:     "toy RSA message integrity demonstration",
		Version:   version,
		Reader:    d.cfg.Stdin,
		Writer:    d.cfg.Stdout,
		ErrWriter: d.cfg.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration `FILE`"},
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv `FILE` with INTEGRITY_* variables"},
			&cli.StringFlag{Name: "digest", Usage: "digest algorithm: md5, blake2b-128, shake128"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json"},
			&cli.BoolFlag{Name: "metrics", Usage: "print codec counters to stderr on exit"},
		},
		Before: d.before,
		After:  d.after,
		Action: d.demo,
		Commands: []*cli.Command{
			{
				Name:   "demo",
				Usage:  "encode a message, verify it, then verify a tampered copy",
				Action: d.demo,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "message to send"},
					&cli.Int64Flag{Name: "p", Usage: "first prime"},
					&cli.Int64Flag{Name: "q", Usage: "second prime"},
					&cli.IntFlag{Name: "tamper-index", Usage: "payload index to overwrite"},
					&cli.Int64Flag{Name: "tamper-value", Usage: "value written at --tamper-index"},
				},
			},
			{
				Name:   "keygen",
				Usage:  "generate a key pair and write it as a YAML key file",
				Action: d.keygen,
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "p", Usage: "first prime"},
					&cli.Int64Flag{Name: "q", Usage: "second prime"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output `FILE` (default: stdout)"},
				},
			},
			{
				Name:      "encode",
				Usage:     "encode a message into an armored payload",
				ArgsUsage: "[MESSAGE|-]",
				Action:    d.encode,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "keys", Aliases: []string{"k"}, Usage: "key `FILE`", Required: true},
					&cli.StringFlag{Name: "armor", Aliases: []string{"a"}, Usage: "base58, base64url or json"},
				},
			},
			{
				Name:      "decode",
				Usage:     "decode an armored payload and verify its digest",
				ArgsUsage: "[PAYLOAD|-]",
				Action:    d.decode,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "keys", Aliases: []string{"k"}, Usage: "key `FILE`", Required: true},
					&cli.StringFlag{Name: "armor", Aliases: []string{"a"}, Usage: "base58, base64url or json"},
				},
			},
		},
		// Exit codes are handled by main so that run stays testable.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func (d *driver) before(c *cli.Context) error {
	settings, err := LoadSettings(c.String("config"))
	if err != nil {
		return err
	}

	lookup, err := envLookup(d.cfg.Getenv, c.String("env-file"))
	if err != nil {
		return err
	}
	if err := ApplyEnvOverrides(&settings, lookup); err != nil {
		return err
	}

	if c.IsSet("digest") {
		settings.Codec.Digest = c.String("digest")
	}
	if c.IsSet("log-level") {
		settings.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		settings.Log.Format = c.String("log-format")
	}

	logger, err := newLogger(d.cfg.Stderr, settings.Log)
	if err != nil {
		return err
	}

	d.settings = settings
	d.logger = logger

	if c.Bool("metrics") {
		d.registry = prometheus.NewRegistry()
		d.metrics, err = integrity.NewMetrics(d.registry)
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *driver) after(*cli.Context) error {
	if d.registry == nil {
		return nil
	}

	families, err := d.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(d.cfg.Stderr, "%s %g\n", mf.GetName(), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				fmt.Fprintf(d.cfg.Stderr, "%s_count %d\n", mf.GetName(), m.GetHistogram().GetSampleCount())
			}
		}
	}
	return nil
}

func (d *driver) codec(digest string) (*integrity.Codec, error) {
	parsed, err := integrity.ParseDigest(digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, digest)
	}
	return integrity.NewCodec(
		integrity.WithDigest(parsed),
		integrity.WithLogger(d.logger),
		integrity.WithMetrics(d.metrics),
	)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
