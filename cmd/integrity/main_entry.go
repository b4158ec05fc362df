//go:build !testcoverage

package main

import (
	"errors"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	err := run(os.Args, DefaultConfig())
	if err == nil {
		return
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			os.Stderr.WriteString(msg + "\n")
		}
		os.Exit(exitErr.ExitCode())
	}
	fatal("%v", err)
}
