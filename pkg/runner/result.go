package runner

import (
	"github.com/yaklabco/wikispan/pkg/fix"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	Path string

	// Document is the parsed, possibly edited document. Nil when the file
	// could not be read or parsed.
	Document *wikitext.Document

	// Spans counts live spans per kind after the task ran.
	Spans map[wikitext.Kind]int

	// Diff holds the changes made by the task, or nil.
	Diff *fix.Diff

	// Written is set when the changes were saved to disk.
	Written bool

	Err error
}

// Modified reports whether the task changed the document.
func (o *FileOutcome) Modified() bool {
	return o.Diff != nil
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesModified   int
	FilesWritten    int

	// Spans counts spans per kind across all processed files.
	Spans map[wikitext.Kind]int
}

// SpansTotal sums Spans over every kind.
func (s Stats) SpansTotal() int {
	total := 0
	for _, n := range s.Spans {
		total += n
	}
	return total
}

// Result is the overall outcome of a run.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func newResult() *Result {
	return &Result{Stats: Stats{Spans: make(map[wikitext.Kind]int)}}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Err != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	for kind, n := range outcome.Spans {
		r.Stats.Spans[kind] += n
	}
	if outcome.Modified() {
		r.Stats.FilesModified++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
