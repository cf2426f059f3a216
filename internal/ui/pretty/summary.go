package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/wikispan/pkg/runner"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatSpanSummary renders span counts per kind and the files read.
// Example: "12 spans (5 Template, 7 WikiLink) in 3 files, 1 failed".
func (s *Styles) FormatSpanSummary(stats runner.Stats) string {
	var kinds []string
	for _, kind := range wikitext.Kinds() {
		if n := stats.Spans[kind]; n > 0 {
			kinds = append(kinds, s.Kind(kind).Render(fmt.Sprintf("%d %s", n, kind)))
		}
	}

	line := s.SummaryValue.Render(plural(stats.SpansTotal(), "span"))
	if len(kinds) > 0 {
		line += " (" + strings.Join(kinds, ", ") + ")"
	}
	line += " in " + plural(stats.FilesProcessed, "file")
	return line + s.failures(stats) + "\n"
}

// FormatEditSummary renders how many files an editing command changed.
func (s *Styles) FormatEditSummary(stats runner.Stats, dryRun bool) string {
	var line string
	switch {
	case stats.FilesModified == 0:
		line = s.Success.Render("No changes") + s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesProcessed, "file")))
	case dryRun:
		line = s.Warning.Render(plural(stats.FilesModified, "file") + " would change")
	default:
		line = s.Success.Render(plural(stats.FilesWritten, "file") + " updated")
	}
	return line + s.failures(stats) + "\n"
}

// FormatRestoreSummary renders how many of the checked files were restored
// from their backups.
func (s *Styles) FormatRestoreSummary(restored, checked, failed int) string {
	line := s.Success.Render(plural(restored, "file") + " restored")
	if restored == 0 {
		line = s.Dim.Render(fmt.Sprintf("No backups found (%s checked)", plural(checked, "file")))
	}
	return line + s.failed(failed) + "\n"
}

func (s *Styles) failures(stats runner.Stats) string {
	return s.failed(stats.FilesErrored)
}

func (s *Styles) failed(n int) string {
	if n == 0 {
		return ""
	}
	return ", " + s.Failure.Render(fmt.Sprintf("%d failed", n))
}
