package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikispan/internal/logging"
	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/fsutil"
	"github.com/yaklabco/wikispan/pkg/runner"
)

func newRestoreCommand() *cobra.Command {
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Undo rewrites from the backups left by --backup",
		Long: `Put back the original content of every wiki file that has a backup
from "rename --backup" and remove the backup. Files without a backup are
left alone.`,
		Example: `  wikispan rename "Cite web" "Cite news" --backup
  wikispan restore`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args, cfg)
		},
	}

	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns of files to skip")
	return cmd
}

func runRestore(cmd *cobra.Command, paths []string, cfg *config.Config) error {
	sess, err := newSession(cmd, cfg)
	if err != nil {
		return err
	}

	opts, err := runner.NewOptions(sess.config, paths, sess.logger)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	opts.WorkingDir = sess.workDir

	files, err := runner.Discover(sess.ctx, opts)
	if err != nil {
		return err
	}

	restored, failed := 0, 0
	for _, file := range files {
		ok, err := fsutil.Restore(sess.ctx, file)
		switch {
		case err != nil:
			failed++
			sess.logger.Error("restore failed", logging.FieldPath, sess.display(file), logging.FieldError, err)
		case ok:
			restored++
			sess.logger.Info("restored", logging.FieldPath, sess.display(file))
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), sess.styles.FormatRestoreSummary(restored, len(files), failed))
	if failed > 0 {
		return ErrFilesFailed
	}
	return nil
}
