package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/wikispan/internal/ui/pretty"
	"github.com/yaklabco/wikispan/pkg/fix"
	"github.com/yaklabco/wikispan/pkg/runner"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

func TestFormatSpanSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 3,
		Spans: map[wikitext.Kind]int{
			wikitext.KindWikiLink: 7,
			wikitext.KindTemplate: 5,
		},
	}
	assert.Equal(t, "12 spans (7 WikiLink, 5 Template) in 3 files\n", styles.FormatSpanSummary(stats))

	stats = runner.Stats{FilesProcessed: 1, FilesErrored: 2, Spans: map[wikitext.Kind]int{wikitext.KindComment: 1}}
	assert.Equal(t, "1 span (1 Comment) in 1 file, 2 failed\n", styles.FormatSpanSummary(stats))

	assert.Equal(t, "0 spans in 0 files\n", styles.FormatSpanSummary(runner.Stats{}))
}

func TestFormatEditSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		stats  runner.Stats
		dryRun bool
		want   string
	}{
		{
			name:  "nothing changed",
			stats: runner.Stats{FilesProcessed: 4},
			want:  "No changes (4 files checked)\n",
		},
		{
			name:   "dry run",
			stats:  runner.Stats{FilesProcessed: 4, FilesModified: 2},
			dryRun: true,
			want:   "2 files would change\n",
		},
		{
			name:  "written",
			stats: runner.Stats{FilesProcessed: 4, FilesModified: 1, FilesWritten: 1, FilesErrored: 1},
			want:  "1 file updated, 1 failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatEditSummary(tt.stats, tt.dryRun))
		})
	}
}

func TestFormatRestoreSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "No backups found (3 files checked)\n", styles.FormatRestoreSummary(0, 3, 0))
	assert.Equal(t, "2 files restored\n", styles.FormatRestoreSummary(2, 3, 0))
	assert.Equal(t, "1 file restored, 1 failed\n", styles.FormatRestoreSummary(1, 3, 1))
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	diff := fix.GenerateDiff("/abs/a.wiki", "one\n{{old}}\nthree\n", "one\n{{new}}\nthree\n")
	want := "--- a/a.wiki\n" +
		"+++ b/a.wiki\n" +
		"@@ -1,3 +1,3 @@\n" +
		" one\n" +
		"-{{old}}\n" +
		"+{{new}}\n" +
		" three\n"
	assert.Equal(t, want, styles.FormatDiff(diff, "a.wiki"))

	assert.Empty(t, styles.FormatDiff(nil, "a.wiki"))
}
