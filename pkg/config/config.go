// Package config defines the configuration types of wikispan.
// These types are plain data with YAML tags; loading and merging live in
// internal/configloader.
package config

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// TagsConfig lists extension tags beyond the built-in MediaWiki set.
type TagsConfig struct {
	// Parsable tags have a wikitext body, like <ref>.
	Parsable []string `yaml:"parsable,omitempty"`

	// Unparsable tags have an opaque body, like <syntaxhighlight>.
	Unparsable []string `yaml:"unparsable,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// MaxDepth bounds how deeply markup may nest before parsing fails.
	MaxDepth int `yaml:"max_depth"`

	// MatchTimeout bounds a single pattern match. Zero means no limit.
	MatchTimeout time.Duration `yaml:"match_timeout,omitempty"`

	// Tags adds extension tags to the grammar.
	Tags TagsConfig `yaml:"tags,omitempty"`

	// ParserFunctions adds magic words and function names to the grammar.
	ParserFunctions []string `yaml:"parser_functions,omitempty"`

	// Extensions are the file extensions picked up when a directory is given.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options, not persisted to config files.

	// Format selects the output format of the spans command.
	Format OutputFormat `yaml:"-"`

	// Jobs is the number of files parsed concurrently. 0 means GOMAXPROCS.
	Jobs int `yaml:"-"`

	// DryRun prints diffs instead of writing files.
	DryRun bool `yaml:"-"`
}

// DefaultExtensions are the file extensions treated as wikitext.
var DefaultExtensions = []string{".wiki", ".wikitext", ".mediawiki"}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		MaxDepth:   wikitext.DefaultMaxDepth,
		Extensions: slices.Clone(DefaultExtensions),
		Format:     FormatText,
	}
}

// GrammarConfig returns the grammar additions described by c.
func (c *Config) GrammarConfig() wikitext.GrammarConfig {
	return wikitext.GrammarConfig{
		ParsableTags:    slices.Clone(c.Tags.Parsable),
		UnparsableTags:  slices.Clone(c.Tags.Unparsable),
		ParserFunctions: slices.Clone(c.ParserFunctions),
		MatchTimeout:    c.MatchTimeout,
	}
}

// customGrammar reports whether c changes the built-in grammar.
func (c *Config) customGrammar() bool {
	return len(c.Tags.Parsable) > 0 || len(c.Tags.Unparsable) > 0 ||
		len(c.ParserFunctions) > 0 || c.MatchTimeout > 0
}

// ParseOptions builds the options for wikitext.Parse. The grammar is only
// compiled when c differs from the built-in one, so callers parsing many
// files should call this once and reuse the result.
func (c *Config) ParseOptions(logger *log.Logger) (wikitext.Options, error) {
	opts := wikitext.Options{MaxDepth: c.MaxDepth, Logger: logger}
	if !c.customGrammar() {
		return opts, nil
	}

	grammar, err := wikitext.NewGrammar(c.GrammarConfig())
	if err != nil {
		return wikitext.Options{}, err
	}
	opts.Grammar = grammar
	return opts, nil
}
