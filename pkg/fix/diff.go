package fix

import (
	"fmt"
	"strings"
)

// LineKind tells whether a diff line is unchanged, added or removed.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

var linePrefix = [...]byte{LineContext: ' ', LineAdded: '+', LineRemoved: '-'}

// Line is one line of a hunk, without its prefix or newline.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Diff is a unified diff between two versions of one file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// GenerateDiff returns the line diff between before and after, or nil when
// they have the same lines.
func GenerateDiff(path, before, after string) *Diff {
	ops := diffLines(splitLines(before), splitLines(after))

	diff := &Diff{Path: path}
	for _, op := range ops {
		switch op.Kind {
		case LineAdded:
			diff.Additions++
		case LineRemoved:
			diff.Deletions++
		case LineContext:
		}
	}
	if diff.Additions == 0 && diff.Deletions == 0 {
		return nil
	}
	diff.Hunks = hunks(ops)
	return diff
}

// HasChanges reports whether d holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders d in unified format with a git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")
	var sb strings.Builder
	fmt.Fprintf(&sb, "diff --git a/%s b/%s\n--- a/%s\n+++ b/%s\n", path, path, path, path)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
		for _, line := range hunk.Lines {
			sb.WriteByte(linePrefix[line.Kind])
			sb.WriteString(line.Text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// splitLines splits text into lines. A final newline does not start an
// extra empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// diffLines returns the edit script turning a into b, built from a longest
// common subsequence table. Removals come before additions.
func diffLines(a, b []string) []Line {
	// common[i][j] is the LCS length of a[i:] and b[j:].
	common := make([][]int, len(a)+1)
	for i := range common {
		common[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				common[i][j] = common[i+1][j+1] + 1
			} else {
				common[i][j] = max(common[i+1][j], common[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, max(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			ops = append(ops, Line{Kind: LineContext, Text: a[i]})
			i++
			j++
		case i < len(a) && (j == len(b) || common[i+1][j] >= common[i][j+1]):
			ops = append(ops, Line{Kind: LineRemoved, Text: a[i]})
			i++
		default:
			ops = append(ops, Line{Kind: LineAdded, Text: b[j]})
			j++
		}
	}
	return ops
}

// hunks groups an edit script into hunks. Changes separated by at most
// twice the context share a hunk.
func hunks(ops []Line) []Hunk {
	var changes []int
	for idx, op := range ops {
		if op.Kind != LineContext {
			changes = append(changes, idx)
		}
	}

	var out []Hunk
	for first := 0; first < len(changes); {
		last := first
		for last+1 < len(changes) && changes[last+1]-changes[last] <= 2*contextLines+1 {
			last++
		}
		from := max(0, changes[first]-contextLines)
		to := min(len(ops), changes[last]+contextLines+1)
		out = append(out, hunkOf(ops, from, to))
		first = last + 1
	}
	return out
}

func hunkOf(ops []Line, from, to int) Hunk {
	hunk := Hunk{OldStart: 1, NewStart: 1}
	for _, op := range ops[:from] {
		if op.Kind != LineAdded {
			hunk.OldStart++
		}
		if op.Kind != LineRemoved {
			hunk.NewStart++
		}
	}
	for _, op := range ops[from:to] {
		if op.Kind != LineAdded {
			hunk.OldCount++
		}
		if op.Kind != LineRemoved {
			hunk.NewCount++
		}
	}
	hunk.Lines = ops[from:to]
	return hunk
}
