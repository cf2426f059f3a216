// Package pretty renders span listings, diffs and summaries for the terminal
// with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// DefaultTerminalWidth is used when the output is not a terminal.
const DefaultTerminalWidth = 100

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles holds the renderers used for CLI output.
type Styles struct {
	// Span listing
	FilePath lipgloss.Style
	Location lipgloss.Style
	Level    lipgloss.Style
	Excerpt  lipgloss.Style
	Language lipgloss.Style
	kinds    map[wikitext.Kind]lipgloss.Style

	// Diffs
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summaries
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Warning      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader lipgloss.Style
	TableBorder lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newPlainStyles()
	}
	return newColorStyles()
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func newColorStyles() *Styles {
	return &Styles{
		FilePath: lipgloss.NewStyle().Bold(true).Underline(true),
		Location: fg("8"),
		Level:    fg("8"),
		Excerpt:  lipgloss.NewStyle(),
		Language: fg("13").Italic(true),
		kinds: map[wikitext.Kind]lipgloss.Style{
			wikitext.KindTemplate:       fg("12").Bold(true),
			wikitext.KindParserFunction: fg("14").Bold(true),
			wikitext.KindWikiLink:       fg("10"),
			wikitext.KindParameter:      fg("11"),
			wikitext.KindComment:        fg("8").Italic(true),
			wikitext.KindExtensionTag:   fg("13"),
			wikitext.KindArgument:       fg("6"),
		},

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    fg("14"),
		DiffAdd:     fg("10"),
		DiffRemove:  fg("9"),
		DiffContext: fg("8"),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      fg("10").Bold(true),
		Warning:      fg("11").Bold(true),
		Failure:      fg("9").Bold(true),

		TableHeader: fg("7").Bold(true),
		TableBorder: fg("8"),

		Dim:  fg("8"),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newPlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		FilePath:     plain,
		Location:     plain,
		Level:        plain,
		Excerpt:      plain,
		Language:     plain,
		DiffHeader:   plain,
		DiffHunk:     plain,
		DiffAdd:      plain,
		DiffRemove:   plain,
		DiffContext:  plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		Success:      plain,
		Warning:      plain,
		Failure:      plain,
		TableHeader:  plain,
		TableBorder:  plain,
		Dim:          plain,
		Bold:         plain,
	}
}

// Kind returns the style for spans of kind.
func (s *Styles) Kind(kind wikitext.Kind) lipgloss.Style {
	if style, ok := s.kinds[kind]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// IsColorEnabled decides whether output to writer is colored. In auto mode
// (also used for unknown modes) color requires a terminal and an empty
// NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TerminalWidth returns the column count of the terminal behind writer, or
// DefaultTerminalWidth.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return DefaultTerminalWidth
}
