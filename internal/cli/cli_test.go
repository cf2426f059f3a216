package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/wikispan/internal/cli"
	"github.com/yaklabco/wikispan/internal/configloader"
	"github.com/yaklabco/wikispan/internal/ui/pretty"
	"github.com/yaklabco/wikispan/pkg/fsutil"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

var testInfo = cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}

// execute runs the root command with args inside dir. It changes the
// working directory, so callers must not run in parallel.
func execute(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func decodeRows(t *testing.T, out string) []pretty.SpanRow {
	t.Helper()
	var rows []pretty.SpanRow
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows), out)
	return rows
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	assert.Equal(t, "wikispan", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"spans", "rename", "restore", "init", "config", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestHelp(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "Commands:")
	assert.Contains(t, stdout, "spans")
	assert.Contains(t, stdout, "--color")

	stdout, _, err = execute(t, t.TempDir(), "rename", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Examples:")
	assert.Contains(t, stdout, "--dry-run")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.2.3")
	assert.Contains(t, stdout, "abc123")
}

func TestSpans_Text(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"page.wiki": "{{Infobox|name=[[Foo]]}}\n<!-- note -->\n",
	})

	stdout, _, err := execute(t, dir, "spans")
	require.NoError(t, err)

	assert.Contains(t, stdout, "page.wiki")
	assert.Contains(t, stdout, "Template")
	assert.Contains(t, stdout, "[[Foo]]")
	assert.Contains(t, stdout, "1:16")
	assert.Contains(t, stdout, "2:1")
	assert.Contains(t, stdout, "3 spans (1 Comment, 1 WikiLink, 1 Template) in 1 file")
}

func TestSpans_YAML(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"page.wiki":  "{{Infobox|name=[[Foo]]}}\n",
		"notes.txt":  "[[Ignored]]",
		"sub/b.wiki": "[[Bar]]",
	})

	stdout, _, err := execute(t, dir, "spans", "--kind", "wikilink", "--format", "yaml")
	require.NoError(t, err)

	rows := decodeRows(t, stdout)
	require.Len(t, rows, 2)
	assert.Equal(t, pretty.SpanRow{
		Path: "page.wiki", Line: 1, Column: 16, Start: 15, End: 22,
		Kind: wikitext.KindWikiLink, Level: 1, Text: "[[Foo]]",
	}, rows[0])
	assert.Equal(t, "sub/b.wiki", rows[1].Path)
	assert.Equal(t, 0, rows[1].Level)
}

func TestSpans_Language(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"code.wiki": `<syntaxhighlight lang="Python">print(1)</syntaxhighlight><ref>x</ref>`,
	})

	stdout, _, err := execute(t, dir, "spans", "code.wiki", "-k", "extensiontag", "-f", "yaml")
	require.NoError(t, err)

	rows := decodeRows(t, stdout)
	require.Len(t, rows, 2)
	assert.Equal(t, "python", rows[0].Language)
	assert.Empty(t, rows[1].Language)
}

func TestSpans_Arguments(t *testing.T) {
	dir := writeFiles(t, map[string]string{"t.wiki": "{{a|x|y=z}}"})

	stdout, _, err := execute(t, dir, "spans", "--kind", "argument", "--format", "yaml")
	require.NoError(t, err)

	rows := decodeRows(t, stdout)
	require.Len(t, rows, 2)
	assert.Equal(t, "|x", rows[0].Text)
	assert.Equal(t, "|y=z", rows[1].Text)
}

func TestSpans_Empty(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "spans", "--format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", stdout)
}

func TestSpans_Errors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"deep.wiki": "{{a|{{b|{{c|{{d}}}}}}}}",
		"ok.wiki":   "{{c}}",
	})

	_, _, err := execute(t, dir, "spans", "--kind", "heading")
	require.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, _, err = execute(t, dir, "spans", "--format", "json")
	assert.ErrorIs(t, err, cli.ErrUsage)

	_, _, err = execute(t, dir, "spans", "--no-such-flag")
	assert.ErrorIs(t, err, cli.ErrUsage)

	stdout, stderr, err := execute(t, dir, "spans", "--max-depth", "2")
	require.ErrorIs(t, err, cli.ErrFilesFailed)
	assert.Equal(t, cli.ExitFileErrors, cli.ExitCode(err))
	assert.Contains(t, stderr, "parse failed")
	assert.Contains(t, stderr, "deep.wiki")
	assert.Contains(t, stdout, "1 failed")

	_, _, err = execute(t, dir, "spans", "missing.wiki")
	assert.Error(t, err)
}

func TestRename_DryRun(t *testing.T) {
	const content = "intro\n{{Cite web|url=x}}\n"
	dir := writeFiles(t, map[string]string{"page.wiki": content})

	stdout, _, err := execute(t, dir, "rename", "cite_web", "Cite news", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, stdout, "--- a/page.wiki")
	assert.Contains(t, stdout, "-{{Cite web|url=x}}")
	assert.Contains(t, stdout, "+{{Cite news|url=x}}")
	assert.Contains(t, stdout, "1 file would change")
	assert.Equal(t, content, readFile(t, dir, "page.wiki"))
}

func TestRename_Write(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.wiki":       "{{ Cite web |url=x}} {{cite web}}",
		"pages/b.wiki": "{{Other}}",
	})

	stdout, _, err := execute(t, dir, "rename", "Cite web", "Cite news", "--backup", "-j", "2")
	require.NoError(t, err)

	assert.Contains(t, stdout, "1 file updated")
	assert.Equal(t, "{{ Cite news |url=x}} {{Cite news}}", readFile(t, dir, "a.wiki"))
	assert.Equal(t, "{{ Cite web |url=x}} {{cite web}}", readFile(t, dir, "a.wiki"+fsutil.BackupSuffix))
	assert.Equal(t, "{{Other}}", readFile(t, dir, "pages/b.wiki"))

	stdout, _, err = execute(t, dir, "rename", "Cite web", "Cite news")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No changes")
}

func TestRestore(t *testing.T) {
	const original = "{{Cite web|url=x}}"
	dir := writeFiles(t, map[string]string{"a.wiki": original, "b.wiki": "{{Other}}"})

	_, _, err := execute(t, dir, "rename", "Cite web", "Cite news", "--backup")
	require.NoError(t, err)
	require.Equal(t, "{{Cite news|url=x}}", readFile(t, dir, "a.wiki"))

	stdout, stderr, err := execute(t, dir, "restore")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 file restored")
	assert.Contains(t, stderr, "a.wiki")
	assert.Equal(t, original, readFile(t, dir, "a.wiki"))
	assert.NoFileExists(t, filepath.Join(dir, "a.wiki"+fsutil.BackupSuffix))

	stdout, _, err = execute(t, dir, "restore")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No backups found (2 files checked)")
}

func TestRename_Usage(t *testing.T) {
	dir := t.TempDir()

	for _, args := range [][]string{
		{"rename", "only-one"},
		{"rename", "a|b", "c"},
		{"rename", "a", "{{c}}"},
		{"rename", " ", "c"},
	} {
		_, _, err := execute(t, dir, args...)
		assert.ErrorIs(t, err, cli.ErrUsage, "%v", args)
	}
}

func TestInitAndConfig(t *testing.T) {
	dir := t.TempDir()

	_, stderr, err := execute(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, stderr, "created configuration file")
	assert.FileExists(t, filepath.Join(dir, ".wikispan.yml"))

	_, _, err = execute(t, dir, "init")
	require.ErrorIs(t, err, cli.ErrUsage)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".wikispan.yml"), []byte("max_depth: 7\n"), 0o644))
	stdout, _, err := execute(t, dir, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "max_depth: 7")

	_, _, err = execute(t, dir, "init", "--force")
	require.NoError(t, err)
	stdout, _, err = execute(t, dir, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, fmt.Sprintf("max_depth: %d", wikitext.DefaultMaxDepth))
}

func TestConfig_Env(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "config", "--env")
	require.NoError(t, err)
	for name := range configloader.ListEnvVars() {
		assert.Contains(t, stdout, name)
	}
}

func TestConfig_Invalid(t *testing.T) {
	dir := writeFiles(t, map[string]string{".wikispan.yml": "max_depth: -1\n"})

	_, _, err := execute(t, dir, "config")
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	_, _, err = execute(t, dir, "spans")
	assert.ErrorIs(t, err, cli.ErrConfig)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{nil, cli.ExitSuccess},
		{cli.ErrFilesFailed, cli.ExitFileErrors},
		{fmt.Errorf("x: %w", cli.ErrUsage), cli.ExitInvalidUsage},
		{fmt.Errorf("x: %w", cli.ErrConfig), cli.ExitConfigError},
		{fmt.Errorf("x: %w", fsutil.ErrNotFound), cli.ExitIOError},
		{errors.New("boom"), cli.ExitInternalError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cli.ExitCode(tt.err), "%v", tt.err)
	}
}
