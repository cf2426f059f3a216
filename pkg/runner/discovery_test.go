package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yaklabco/wikispan/pkg/runner"
)

// tree creates files under dir and returns dir.
func tree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
	return dir
}

func relative(t *testing.T, dir string, files []string) []string {
	t.Helper()
	rel := make([]string, 0, len(files))
	for _, file := range files {
		r, err := filepath.Rel(dir, file)
		if err != nil {
			t.Fatal(err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{
		"Main_Page.wiki":          "",
		"help/Editing.wikitext":   "",
		"help/Links.MEDIAWIKI":    "",
		"help/notes.txt":          "",
		".hidden/Secret.wiki":     "",
		"help/.draft.wiki":        "",
		"archive/Old.wiki":        "",
		"archive/2020/Older.wiki": "",
		"templates/Infobox.wiki":  "",
	})

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults walk the working directory",
			opts: runner.Options{},
			want: []string{
				"Main_Page.wiki",
				"archive/2020/Older.wiki",
				"archive/Old.wiki",
				"help/Editing.wikitext",
				"help/Links.MEDIAWIKI",
				"templates/Infobox.wiki",
			},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Paths: []string{"help"}, Extensions: []string{".txt"}},
			want: []string{"help/notes.txt"},
		},
		{
			name: "explicit file ignores extension",
			opts: runner.Options{Paths: []string{"help/notes.txt", "Main_Page.wiki"}},
			want: []string{"Main_Page.wiki", "help/notes.txt"},
		},
		{
			name: "duplicates collapse",
			opts: runner.Options{Paths: []string{"templates", "templates/Infobox.wiki", "./templates"}},
			want: []string{"templates/Infobox.wiki"},
		},
		{
			name: "exclude directory with double star",
			opts: runner.Options{ExcludeGlobs: []string{"archive/**"}},
			want: []string{
				"Main_Page.wiki",
				"help/Editing.wikitext",
				"help/Links.MEDIAWIKI",
				"templates/Infobox.wiki",
			},
		},
		{
			name: "exclude base name anywhere",
			opts: runner.Options{ExcludeGlobs: []string{"Old*.wiki"}},
			want: []string{
				"Main_Page.wiki",
				"help/Editing.wikitext",
				"help/Links.MEDIAWIKI",
				"templates/Infobox.wiki",
			},
		},
		{
			name: "leading double star",
			opts: runner.Options{ExcludeGlobs: []string{"**/2020/*"}},
			want: []string{
				"Main_Page.wiki",
				"archive/Old.wiki",
				"help/Editing.wikitext",
				"help/Links.MEDIAWIKI",
				"templates/Infobox.wiki",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir
			files, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			got := relative(t, dir, files)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"nope.wiki"},
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{
		"pages/A.wiki":  "",
		"shared/B.wiki": "",
	})
	dir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "shared"), filepath.Join(dir, "pages", "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"pages"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := relative(t, dir, files); !slices.Equal(got, []string{"pages/A.wiki"}) {
		t.Errorf("without following = %v", got)
	}

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		Paths:          []string{"pages"},
		FollowSymlinks: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := relative(t, dir, files); !slices.Equal(got, []string{"pages/A.wiki", "shared/B.wiki"}) {
		t.Errorf("following = %v", got)
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()}); err == nil {
		t.Fatal("expected error after cancellation")
	}
}
