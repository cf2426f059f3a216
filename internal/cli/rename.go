package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikispan/internal/logging"
	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/fix"
	"github.com/yaklabco/wikispan/pkg/runner"
)

type renameFlags struct {
	backup bool
}

func newRenameCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &renameFlags{}

	cmd := &cobra.Command{
		Use:   "rename OLD NEW [paths...]",
		Short: "Rename a template in wikitext files",
		Long: `Rename every transclusion of template OLD to NEW. Names are compared the
way MediaWiki does: case of the first letter, underscores and repeated
whitespace do not matter. Arguments, surrounding whitespace and all other
markup are left untouched.

Files are rewritten atomically. A file that changes on disk while wikispan
works on it is left alone and reported as failed.`,
		Example: `  wikispan rename "Cite web" "Cite news" pages/
  wikispan rename Infobox_person "Infobox person" --dry-run`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, args[0], args[1], args[2:], cfg, flags)
		},
	}

	cmd.Flags().BoolVarP(&cfg.DryRun, "dry-run", "n", false, "print a diff instead of writing files")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a copy of each rewritten file next to it")
	addFileFlags(cmd, cfg)

	return cmd
}

func validTemplateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty template name", ErrUsage)
	}
	if strings.ContainsAny(name, "{}|[]<>\n") {
		return fmt.Errorf("%w: template name %q contains markup", ErrUsage, name)
	}
	return nil
}

func runRename(cmd *cobra.Command, from, to string, paths []string, cfg *config.Config, flags *renameFlags) error {
	for _, name := range []string{from, to} {
		if err := validTemplateName(name); err != nil {
			return err
		}
	}

	sess, err := newSession(cmd, cfg)
	if err != nil {
		return err
	}

	opts, err := runner.NewOptions(sess.config, paths, sess.logger)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	opts.WorkingDir = sess.workDir
	opts.Backup = flags.backup

	task := func(_ context.Context, file *runner.File) error {
		edits, err := fix.RenameTemplates(file.Document, from, to)
		if err != nil {
			return err
		}
		if len(edits) == 0 {
			return nil
		}
		applied, err := fix.Apply(file.Document.Root(), edits)
		if err != nil {
			return err
		}
		sess.logger.Debug("renamed templates",
			logging.FieldPath, sess.display(file.Path),
			logging.FieldTemplate, from,
			logging.FieldEdits, applied,
		)
		return nil
	}

	result, err := runner.New(task).Run(sess.ctx, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, outcome := range result.Files {
		switch {
		case outcome.Err != nil:
			sess.logger.Error("rename failed", logging.FieldPath, sess.display(outcome.Path), logging.FieldError, outcome.Err)
		case opts.DryRun && outcome.Modified():
			fmt.Fprint(out, sess.styles.FormatDiff(outcome.Diff, sess.display(outcome.Path)))
		case outcome.Written:
			sess.logger.Info("updated", logging.FieldPath, sess.display(outcome.Path))
		}
	}
	fmt.Fprint(out, sess.styles.FormatEditSummary(result.Stats, opts.DryRun))

	sess.logger.Debug("rename finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldDryRun, opts.DryRun,
	)

	if result.HasErrors() {
		return ErrFilesFailed
	}
	return nil
}
