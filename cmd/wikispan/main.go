// Package main is the entry point of the wikispan CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/wikispan/internal/cli"
	"github.com/yaklabco/wikispan/internal/logging"
)

// Set at build time via ldflags.
//
//nolint:gochecknoglobals // ldflags need package-level variables
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, cli.ErrFilesFailed) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
