package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikispan/internal/logging"
	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/fsutil"
)

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .wikispan.yml configuration file",
		Long: `Write a commented configuration file with the default settings to the
current directory. wikispan finds it from any subdirectory of the project.`,
		Example: `  wikispan init
  wikispan init --output wiki/.wikispan.yml --force`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite an existing file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.ConfigFileName, "file to write")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.FromContext(cmd.Context())

	path, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, err = os.Stat(path)
	switch {
	case err == nil && !flags.force:
		return fmt.Errorf("%w: %s already exists; use --force to overwrite", ErrUsage, flags.output)
	case err == nil:
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat %s: %w", flags.output, err)
	}

	content := config.GenerateTemplate(config.NewConfig())
	if err := fsutil.WriteAtomic(cmd.Context(), path, content, fsutil.DefaultFileMode); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	return nil
}
