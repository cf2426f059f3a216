package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/wikispan/pkg/fix"
)

// FormatDiff renders d as a colored unified diff under the path shown.
func (s *Styles) FormatDiff(d *fix.Diff, shown string) string {
	if !d.HasChanges() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(s.DiffHeader.Render("--- a/"+shown) + "\n")
	sb.WriteString(s.DiffHeader.Render("+++ b/"+shown) + "\n")
	for _, hunk := range d.Hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
		sb.WriteString(s.DiffHunk.Render(header) + "\n")
		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.LineAdded:
				sb.WriteString(s.DiffAdd.Render("+" + line.Text))
			case fix.LineRemoved:
				sb.WriteString(s.DiffRemove.Render("-" + line.Text))
			default:
				sb.WriteString(s.DiffContext.Render(" " + line.Text))
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
