package cli

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/wikispan/internal/logging"
	"github.com/yaklabco/wikispan/internal/ui/pretty"
	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/langdetect"
	"github.com/yaklabco/wikispan/pkg/runner"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

type spansFlags struct {
	kinds  []string
	format string
	follow bool
}

func newSpansCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &spansFlags{}

	cmd := &cobra.Command{
		Use:   "spans [paths...]",
		Short: "List the spans of wikitext files",
		Long: `Parse wikitext files and list their spans with line and column, kind,
nesting level and a short excerpt. Extension tags also show the language
of their body.

Directories are searched for files with the configured extensions
(.wiki, .wikitext and .mediawiki by default).`,
		Example: `  wikispan spans                          # every wiki file below .
  wikispan spans Main_Page.wiki --kind template,wikilink
  wikispan spans pages/ --format yaml -j 8`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpans(cmd, args, cfg, flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.kinds, "kind", "k", nil,
		"kinds to list: template, parserfunction, wikilink, parameter, comment, extensiontag, argument")
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatText), "output format: text, yaml")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "walk into symlinked directories")
	addFileFlags(cmd, cfg)

	return cmd
}

// addFileFlags registers the flags shared by commands that process files.
func addFileFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "files processed in parallel (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&cfg.MaxDepth, "max-depth", 0, "maximum nesting depth (0 = configured value)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns of files to skip")
}

func runSpans(cmd *cobra.Command, args []string, cfg *config.Config, flags *spansFlags) error {
	format, err := config.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	kinds, err := parseKinds(flags.kinds)
	if err != nil {
		return err
	}
	cfg.Format = format

	sess, err := newSession(cmd, cfg)
	if err != nil {
		return err
	}

	opts, err := runner.NewOptions(sess.config, args, sess.logger)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	opts.WorkingDir = sess.workDir
	opts.FollowSymlinks = flags.follow

	sess.logger.Debug("listing spans", logging.FieldFiles, opts.Paths, logging.FieldJobs, opts.Jobs)

	result, err := runner.New(nil).Run(sess.ctx, opts)
	if err != nil {
		return err
	}

	var rows []pretty.SpanRow
	for _, outcome := range result.Files {
		if outcome.Err != nil {
			sess.logger.Error("parse failed", logging.FieldPath, sess.display(outcome.Path), logging.FieldError, outcome.Err)
			continue
		}
		fileRows, err := spanRows(outcome.Document, sess.display(outcome.Path), kinds)
		if err != nil {
			return fmt.Errorf("%s: %w", outcome.Path, err)
		}
		rows = append(rows, fileRows...)
	}

	out := cmd.OutOrStdout()
	switch sess.config.Format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(config.YAMLIndent())
		if rows == nil {
			rows = []pretty.SpanRow{}
		}
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		table := pretty.NewSpanTable(sess.styles, pretty.TerminalWidth(out))
		fmt.Fprint(out, table.Format(rows))
		fmt.Fprint(out, sess.styles.FormatSpanSummary(result.Stats))
	}

	if result.HasErrors() {
		return ErrFilesFailed
	}
	return nil
}

// listedKinds are shown when --kind is not given.
var listedKinds = []wikitext.Kind{
	wikitext.KindComment,
	wikitext.KindExtensionTag,
	wikitext.KindWikiLink,
	wikitext.KindParameter,
	wikitext.KindParserFunction,
	wikitext.KindTemplate,
}

func parseKinds(names []string) ([]wikitext.Kind, error) {
	if len(names) == 0 {
		return listedKinds, nil
	}
	kinds := make([]wikitext.Kind, 0, len(names))
	for _, name := range names {
		kind, ok := wikitext.ParseKind(name)
		if !ok || kind == wikitext.KindDocument {
			return nil, fmt.Errorf("%w: unknown kind %q", ErrUsage, name)
		}
		if !slices.Contains(kinds, kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}

// spanRows lists the spans of kinds in doc, outer spans before the spans
// they contain.
func spanRows(doc *wikitext.Document, path string, kinds []wikitext.Kind) ([]pretty.SpanRow, error) {
	if slices.Contains(kinds, wikitext.KindArgument) {
		if err := registerArguments(doc); err != nil {
			return nil, err
		}
	}

	var rows []pretty.SpanRow
	for _, kind := range kinds {
		for _, node := range doc.Nodes(kind) {
			row, err := spanRow(doc, path, node)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}

	slices.SortStableFunc(rows, func(a, b pretty.SpanRow) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(b.End, a.End))
	})
	return rows, nil
}

func spanRow(doc *wikitext.Document, path string, node *wikitext.Node) (pretty.SpanRow, error) {
	start, end, err := node.Span()
	if err != nil {
		return pretty.SpanRow{}, err
	}
	text, err := node.Text()
	if err != nil {
		return pretty.SpanRow{}, err
	}
	level, err := node.NestingLevel()
	if err != nil {
		return pretty.SpanRow{}, err
	}
	line, column := doc.Position(start)

	row := pretty.SpanRow{
		Path:   path,
		Line:   line,
		Column: column,
		Start:  start,
		End:    end,
		Kind:   node.Kind(),
		Level:  level,
		Text:   text,
	}

	if tag, ok := node.Element().(*wikitext.ExtensionTag); ok {
		lang, err := tag.Language()
		if err != nil {
			return pretty.SpanRow{}, err
		}
		if lang != langdetect.Wikitext {
			row.Language = lang
		}
	}
	return row, nil
}

// registerArguments splits every template and parser function so that
// their arguments are registered as spans.
func registerArguments(doc *wikitext.Document) error {
	for _, tmpl := range doc.Templates() {
		if _, err := tmpl.Arguments(); err != nil {
			return err
		}
	}
	for _, pf := range doc.ParserFunctions() {
		if _, err := pf.Arguments(); err != nil {
			return err
		}
	}
	return nil
}
