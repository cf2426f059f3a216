// Package cli provides the cobra command tree of wikispan.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikispan/internal/logging"
	"github.com/yaklabco/wikispan/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Persistent flag names read by subcommands.
const (
	flagDebug  = "debug"
	flagConfig = "config"
	flagColor  = "color"
)

// NewRootCommand creates the wikispan command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "wikispan",
		Short: "Inspect and edit MediaWiki markup by span",
		Long: `wikispan parses MediaWiki wikitext into typed spans: templates, parser
functions, wikilinks, parameters, comments and extension tags.

It lists the spans of wiki source files with their positions and nesting,
and rewrites files through the span model so that edits like renaming a
template keep every other construct intact.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			logging.SetDefault(logger)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, flagDebug, false, "enable debug logging")
	rootCmd.PersistentFlags().String(flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().String(flagColor, pretty.ColorAuto, "colorize output: auto, always, never")

	rootCmd.AddCommand(newSpansCommand())
	rootCmd.AddCommand(newRenameCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})
	applyHelp(rootCmd)

	return rootCmd
}
