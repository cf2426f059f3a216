package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/fix"
	"github.com/yaklabco/wikispan/pkg/fsutil"
	"github.com/yaklabco/wikispan/pkg/runner"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

func renameTask(from, to string) runner.Task {
	return func(_ context.Context, file *runner.File) error {
		edits, err := fix.RenameTemplates(file.Document, from, to)
		if err != nil {
			return err
		}
		_, err = fix.Apply(file.Document.Root(), edits)
		return err
	}
}

func TestRunner_ParseOnly(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{
		"a.wiki": "{{cite|[[Foo]]}} <!-- c -->",
		"b.wiki": "[[Bar]] {{{1|x}}}",
	})

	result, err := runner.New(nil).Run(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 2 || result.Stats.FilesProcessed != 2 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.HasErrors() {
		t.Errorf("unexpected errors: %+v", result.Files)
	}

	want := map[wikitext.Kind]int{
		wikitext.KindTemplate:  1,
		wikitext.KindWikiLink:  2,
		wikitext.KindComment:   1,
		wikitext.KindParameter: 1,
	}
	for kind, n := range want {
		if got := result.Stats.Spans[kind]; got != n {
			t.Errorf("spans[%v] = %d, want %d", kind, got, n)
		}
	}
	if result.Stats.SpansTotal() != 5 {
		t.Errorf("SpansTotal() = %d, want 5", result.Stats.SpansTotal())
	}

	if filepath.Base(result.Files[0].Path) != "a.wiki" || filepath.Base(result.Files[1].Path) != "b.wiki" {
		t.Errorf("files out of order: %s, %s", result.Files[0].Path, result.Files[1].Path)
	}
	for _, outcome := range result.Files {
		if outcome.Modified() || outcome.Written {
			t.Errorf("%s: unexpected modification", outcome.Path)
		}
	}
}

func TestRunner_WritesEdits(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{
		"a.wiki": "{{Cite web|url=x}} and {{cite_web}}",
		"b.wiki": "{{other}}",
	})

	result, err := runner.New(renameTask("Cite web", "Cite news")).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       1,
		Backup:     true,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesModified != 1 || result.Stats.FilesWritten != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}

	got, err := os.ReadFile(filepath.Join(dir, "a.wiki"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{{Cite news|url=x}} and {{Cite news}}" {
		t.Errorf("a.wiki = %q", got)
	}

	backup, err := os.ReadFile(fsutil.BackupPath(filepath.Join(dir, "a.wiki")))
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != "{{Cite web|url=x}} and {{cite_web}}" {
		t.Errorf("backup = %q", backup)
	}
	if _, err := os.Stat(fsutil.BackupPath(filepath.Join(dir, "b.wiki"))); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("unmodified file was backed up: %v", err)
	}

	diff := result.Files[0].Diff
	if diff == nil || diff.Additions != 1 || diff.Deletions != 1 {
		t.Errorf("diff = %+v", diff)
	}
}

func TestRunner_DryRun(t *testing.T) {
	t.Parallel()

	const content = "{{old}}\n"
	dir := tree(t, map[string]string{"a.wiki": content})

	result, err := runner.New(renameTask("old", "new")).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		DryRun:     true,
	})
	if err != nil {
		t.Fatal(err)
	}

	outcome := result.Files[0]
	if !outcome.Modified() || outcome.Written {
		t.Errorf("modified = %v, written = %v", outcome.Modified(), outcome.Written)
	}
	if got := outcome.Document.String(); got != "{{new}}\n" {
		t.Errorf("document = %q", got)
	}

	got, err := os.ReadFile(filepath.Join(dir, "a.wiki"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != content {
		t.Errorf("file written during dry run: %q", got)
	}
}

func TestRunner_FileErrors(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{
		"deep.wiki": "{{a|{{b|{{c}}}}}}",
		"ok.wiki":   "{{a}}",
		"task.wiki": "boom",
	})

	errBoom := errors.New("boom")
	task := func(_ context.Context, file *runner.File) error {
		if file.Original == "boom" {
			return errBoom
		}
		return nil
	}

	result, err := runner.New(task).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Parse:      wikitext.Options{MaxDepth: 2},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesErrored != 2 || result.Stats.FilesProcessed != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if !errors.Is(result.Files[0].Err, wikitext.ErrTooDeeplyNested) {
		t.Errorf("deep.wiki err = %v", result.Files[0].Err)
	}
	if result.Files[1].Err != nil {
		t.Errorf("ok.wiki err = %v", result.Files[1].Err)
	}
	if !errors.Is(result.Files[2].Err, errBoom) {
		t.Errorf("task.wiki err = %v", result.Files[2].Err)
	}
}

func TestRunner_JobsLimit(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		files[name+".wiki"] = "{{" + name + "}}"
	}
	dir := tree(t, files)

	var active, peak atomic.Int32
	task := func(_ context.Context, _ *runner.File) error {
		now := active.Add(1)
		defer active.Add(-1)
		for {
			old := peak.Load()
			if now <= old || peak.CompareAndSwap(old, now) {
				break
			}
		}
		return nil
	}

	result, err := runner.New(task).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if result.Stats.FilesProcessed != 6 {
		t.Errorf("processed = %d, want 6", result.Stats.FilesProcessed)
	}
	if peak.Load() > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak.Load())
	}
}

func TestRunner_Cancelled(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.wiki": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.New(nil).Run(ctx, runner.Options{WorkingDir: dir}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestNewOptions(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"drafts/**"}
	cfg.Jobs = 3
	cfg.DryRun = true
	cfg.MaxDepth = 9

	opts, err := runner.NewOptions(cfg, []string{"pages"}, nil)
	if err != nil {
		t.Fatalf("NewOptions() error = %v", err)
	}
	if opts.Jobs != 3 || !opts.DryRun || opts.Parse.MaxDepth != 9 {
		t.Errorf("options = %+v", opts)
	}
	if len(opts.ExcludeGlobs) != 1 || len(opts.Paths) != 1 {
		t.Errorf("globs = %v, paths = %v", opts.ExcludeGlobs, opts.Paths)
	}
}
