package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

func TestFromYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
max_depth: 40
match_timeout: 250ms
tags:
  parsable: [mytag]
  unparsable: [code-sample]
parser_functions: [PAGEBANNER]
ignore: ["drafts/**"]
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.MaxDepth)
	assert.Equal(t, 250*time.Millisecond, cfg.MatchTimeout)
	assert.Equal(t, []string{"mytag"}, cfg.Tags.Parsable)
	assert.Equal(t, []string{"code-sample"}, cfg.Tags.Unparsable)
	assert.Equal(t, []string{"PAGEBANNER"}, cfg.ParserFunctions)
	assert.Equal(t, []string{"drafts/**"}, cfg.Ignore)
}

func TestFromYAML_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("flavor: gfm\n"))
		require.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("match_timeout: soon\n"))
		require.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.Zero(t, cfg.MaxDepth)
	})
}

func TestConfig_ToYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.MatchTimeout = time.Second
	original.Tags.Unparsable = []string{"code-sample"}
	original.Jobs = 4

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "match_timeout: 1s")
	assert.NotContains(t, string(data), "jobs")

	decoded, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original.MaxDepth, decoded.MaxDepth)
	assert.Equal(t, original.MatchTimeout, decoded.MatchTimeout)
	assert.Equal(t, original.Tags, decoded.Tags)
	assert.Zero(t, decoded.Jobs)
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	var nilConfig *config.Config
	assert.Nil(t, nilConfig.Clone())

	original := config.NewConfig()
	original.Ignore = []string{"a/**"}
	original.DryRun = true

	clone := original.Clone()
	require.NotNil(t, clone)
	assert.NotSame(t, original, clone)
	assert.True(t, clone.DryRun)

	clone.Ignore[0] = "b/**"
	clone.Extensions = append(clone.Extensions[:0], ".txt")
	assert.Equal(t, []string{"a/**"}, original.Ignore)
	assert.Equal(t, config.DefaultExtensions, original.Extensions)
}

func TestConfig_ParseOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults use the built-in grammar", func(t *testing.T) {
		t.Parallel()

		opts, err := config.NewConfig().ParseOptions(nil)
		require.NoError(t, err)
		assert.Nil(t, opts.Grammar)
		assert.Equal(t, wikitext.DefaultMaxDepth, opts.MaxDepth)
	})

	t.Run("custom tags reach the parser", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Tags.Unparsable = []string{"code-sample"}

		opts, err := cfg.ParseOptions(nil)
		require.NoError(t, err)
		require.NotNil(t, opts.Grammar)

		doc, err := wikitext.Parse("<code-sample>{{x}}</code-sample>", opts)
		require.NoError(t, err)
		assert.Empty(t, doc.Templates())
		assert.Len(t, doc.ExtensionTags(), 1)
	})

	t.Run("conflicting tags", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Tags.Parsable = []string{"x"}
		cfg.Tags.Unparsable = []string{"x"}

		_, err := cfg.ParseOptions(nil)
		require.Error(t, err)
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.ParserFunctions = []string{"PAGEBANNER"}

	data := config.GenerateTemplate(cfg)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.MaxDepth, parsed.MaxDepth)
	assert.Equal(t, []string{"PAGEBANNER"}, parsed.ParserFunctions)
	assert.Equal(t, config.DefaultExtensions, parsed.Extensions)
	assert.Contains(t, string(data), "# match_timeout: 1s")
}
