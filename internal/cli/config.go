package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/wikispan/internal/configloader"
	"github.com/yaklabco/wikispan/internal/logging"
	"github.com/yaklabco/wikispan/internal/ui/pretty"
	"github.com/yaklabco/wikispan/pkg/config"
)

// session is the resolved state every file command starts from.
type session struct {
	ctx     context.Context
	logger  *log.Logger
	workDir string
	config  *config.Config
	styles  *pretty.Styles
}

// newSession loads the configuration, layering flags over files and the
// environment.
func newSession(cmd *cobra.Command, flags *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    flags,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("configuration files", logging.FieldFiles, loaded.LoadedFrom)
	}

	colorMode, err := cmd.Flags().GetString(flagColor)
	if err != nil {
		colorMode = pretty.ColorAuto
	}
	return &session{
		ctx:     ctx,
		logger:  logger,
		workDir: workDir,
		config:  loaded.Config,
		styles:  pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout())),
	}, nil
}

// display shortens an absolute path to one relative to the working
// directory when it lies below it.
func (s *session) display(path string) string {
	rel, err := filepath.Rel(s.workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func newConfigCommand() *cobra.Command {
	var showEnv bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration after merging defaults, the user and project
config files, --config, and WIKISPAN_* environment variables.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if showEnv {
				env := configloader.ListEnvVars()
				for _, name := range slices.Sorted(maps.Keys(env)) {
					fmt.Fprintf(out, "%-26s %s\n", name, env[name])
				}
				return nil
			}

			sess, err := newSession(cmd, &config.Config{})
			if err != nil {
				return err
			}
			data, err := sess.config.ToYAML()
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&showEnv, "env", false, "list the supported environment variables instead")
	return cmd
}
