package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/wikispan/pkg/fix"
	"github.com/yaklabco/wikispan/pkg/fsutil"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// File is a parsed source file handed to a Task.
type File struct {
	// Path is the absolute path of the file.
	Path string

	// Original is the content as read from disk.
	Original string

	// Document is the parsed content. Edits made through its nodes are
	// written back when the task returns.
	Document *wikitext.Document
}

// Task inspects or edits one file. Tasks for different files run
// concurrently; a task owns its File exclusively.
type Task func(ctx context.Context, file *File) error

// Runner runs a Task over every discovered file.
type Runner struct {
	Task Task
}

// New creates a Runner for task. A nil task only parses.
func New(task Task) *Runner {
	return &Runner{Task: task}
}

// Run discovers files and processes them with at most opts.Jobs in flight.
// Per-file failures are recorded in the outcomes; the returned error is set
// only when discovery fails or ctx is cancelled. Outcomes follow the sorted
// discovery order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := newResult()
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for idx, path := range files {
		group.Go(func() error {
			outcomes[idx] = r.process(groupCtx, path, opts)
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) process(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	doc, err := wikitext.Parse(string(content), opts.Parse)
	if err != nil {
		outcome.Err = fmt.Errorf("%s: %w", path, err)
		return outcome
	}

	file := &File{Path: path, Original: string(content), Document: doc}
	outcome.Document = doc

	if r.Task != nil {
		if err := r.Task(ctx, file); err != nil {
			outcome.Err = fmt.Errorf("%s: %w", path, err)
			return outcome
		}
	}

	outcome.Spans = countSpans(doc)

	after := doc.String()
	if after == file.Original {
		return outcome
	}
	outcome.Diff = fix.GenerateDiff(path, file.Original, after)

	if opts.DryRun {
		return outcome
	}
	if opts.Backup {
		if _, err := fsutil.Backup(ctx, snap, content); err != nil {
			outcome.Err = err
			return outcome
		}
	}
	if err := fsutil.Commit(ctx, snap, []byte(after)); err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Written = true
	return outcome
}

func countSpans(doc *wikitext.Document) map[wikitext.Kind]int {
	counts := make(map[wikitext.Kind]int)
	for _, kind := range wikitext.Kinds() {
		if kind == wikitext.KindDocument {
			continue
		}
		if n := len(doc.Nodes(kind)); n > 0 {
			counts[kind] = n
		}
	}
	return counts
}
