package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// SpanRow describes one span in a listing.
type SpanRow struct {
	Path     string        `yaml:"path"`
	Line     int           `yaml:"line"`
	Column   int           `yaml:"column"`
	Start    int           `yaml:"start"`
	End      int           `yaml:"end"`
	Kind     wikitext.Kind `yaml:"kind"`
	Level    int           `yaml:"level"`
	Text     string        `yaml:"text"`
	Language string        `yaml:"language,omitempty"`
}

const (
	columnGap      = 2
	minExcerpt     = 20
	ellipsis       = "…"
	headerLocation = "LOCATION"
	headerKind     = "KIND"
	headerLevel    = "LEVEL"
	headerText     = "TEXT"
)

// SpanTable lays span rows out in aligned columns that fit a terminal.
type SpanTable struct {
	styles *Styles
	width  int
}

// NewSpanTable creates a table renderer for a terminal of width columns.
func NewSpanTable(styles *Styles, width int) *SpanTable {
	if width <= 0 {
		width = DefaultTerminalWidth
	}
	return &SpanTable{styles: styles, width: width}
}

type columns struct {
	location, kind, level, text int
}

// Format renders rows. Rows of the same file must be adjacent; each file
// starts with its path.
func (t *SpanTable) Format(rows []SpanRow) string {
	if len(rows) == 0 {
		return ""
	}

	cols := t.measure(rows)

	var sb strings.Builder
	sb.WriteString(t.styles.TableHeader.Render(
		pad(headerLocation, cols.location) + pad(headerKind, cols.kind) +
			pad(headerLevel, cols.level) + headerText))
	sb.WriteByte('\n')
	sb.WriteString(t.styles.TableBorder.Render(strings.Repeat("-", min(t.width, cols.location+cols.kind+cols.level+cols.text))))
	sb.WriteByte('\n')

	path := ""
	for idx, row := range rows {
		if idx == 0 || row.Path != path {
			path = row.Path
			sb.WriteString(t.styles.FilePath.Render(path))
			sb.WriteByte('\n')
		}
		sb.WriteString(t.formatRow(row, cols))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (t *SpanTable) measure(rows []SpanRow) columns {
	cols := columns{
		location: len(headerLocation),
		kind:     len(headerKind),
		level:    len(headerLevel),
	}
	for _, row := range rows {
		cols.location = max(cols.location, lipgloss.Width(location(row)))
		cols.kind = max(cols.kind, lipgloss.Width(kindLabel(row)))
		cols.level = max(cols.level, len(strconv.Itoa(row.Level)))
	}
	cols.location += columnGap
	cols.kind += columnGap
	cols.level += columnGap
	cols.text = max(minExcerpt, t.width-cols.location-cols.kind-cols.level)
	return cols
}

func (t *SpanTable) formatRow(row SpanRow, cols columns) string {
	kind := t.styles.Kind(row.Kind).Render(row.Kind.String())
	if row.Language != "" {
		kind += " " + t.styles.Language.Render(row.Language)
	}
	kind += strings.Repeat(" ", max(0, cols.kind-lipgloss.Width(kindLabel(row))))

	return t.styles.Location.Render(pad(location(row), cols.location)) +
		kind +
		t.styles.Level.Render(pad(strconv.Itoa(row.Level), cols.level)) +
		t.styles.Excerpt.Render(Excerpt(row.Text, cols.text))
}

func location(row SpanRow) string {
	return fmt.Sprintf("%d:%d", row.Line, row.Column)
}

func kindLabel(row SpanRow) string {
	if row.Language == "" {
		return row.Kind.String()
	}
	return row.Kind.String() + " " + row.Language
}

func pad(text string, width int) string {
	return text + strings.Repeat(" ", max(0, width-lipgloss.Width(text)))
}

// Excerpt folds whitespace runs, newlines included, into single spaces and
// cuts the result to at most width display columns, marking a cut with an
// ellipsis.
func Excerpt(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	if lipgloss.Width(text) <= width {
		return text
	}
	if width <= 0 {
		return ""
	}

	limit := width - lipgloss.Width(ellipsis)
	var sb strings.Builder
	used := 0
	clusters := uniseg.NewGraphemes(text)
	for clusters.Next() {
		w := clusters.Width()
		if used+w > limit {
			break
		}
		sb.WriteString(clusters.Str())
		used += w
	}
	return sb.String() + ellipsis
}
