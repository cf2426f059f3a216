package wikitext

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/yaklabco/wikispan/pkg/trie"
)

// GrammarConfig extends the built-in word lists used to recognise markup.
type GrammarConfig struct {
	// ParsableTags are extra extension tag names whose body is wikitext.
	ParsableTags []string

	// UnparsableTags are extra extension tag names whose body is opaque.
	UnparsableTags []string

	// ParserFunctions are extra parser function names or magic words.
	ParserFunctions []string

	// MatchTimeout bounds a single pattern match. Zero means no timeout.
	MatchTimeout time.Duration
}

// Grammar holds the compiled patterns used by the parser.
// A Grammar is immutable and safe for concurrent use.
type Grammar struct {
	extensionTags *regexp2.Regexp
	htmlStartTag  *regexp2.Regexp
	htmlEndTag    *regexp2.Regexp
	externalLink  *regexp2.Regexp
	pfTemplate    *regexp2.Regexp
	tagAttr       *regexp2.Regexp

	unparsable map[string]bool
}

// DefaultGrammar returns the grammar built from the built-in word lists.
// It is compiled once on first use.
var DefaultGrammar = sync.OnceValues(func() (*Grammar, error) {
	return NewGrammar(GrammarConfig{})
})

const caseless = regexp2.IgnoreCase | regexp2.Singleline

// Template and parser function arguments: no brace may be doubled.
const argsPattern = `(?:\|(?>(?:[^{}]|\{(?!\{)|\}(?!\}))*))?`

// NewGrammar compiles a grammar from the built-in word lists plus cfg.
func NewGrammar(cfg GrammarConfig) (*Grammar, error) {
	parsable := mergeWords(parsableTagNames, cfg.ParsableTags)
	unparsable := mergeWords(unparsableTagNames, cfg.UnparsableTags)
	functions := mergeWords(parserFunctionNames, cfg.ParserFunctions)

	for _, name := range parsable {
		if slices.Contains(unparsable, name) {
			return nil, fmt.Errorf("tag %q is configured as both parsable and unparsable", name)
		}
	}

	grammar := &Grammar{unparsable: make(map[string]bool, len(unparsable))}
	for _, name := range unparsable {
		grammar.unparsable[strings.ToLower(name)] = true
	}

	htmlNames := trie.Pattern(htmlTagNames)

	patterns := []struct {
		target  **regexp2.Regexp
		pattern string
		options regexp2.RegexOptions
	}{
		{
			target: &grammar.extensionTags,
			pattern: `(?<m><!--.*?(?:-->|\z))` +
				`|<(?<u>` + trie.Pattern(unparsable) + `)(?=[\s>/])(?>[^>]*)` +
				`(?:(?<=/)>|>.*?(?:</\k<u>\s*>|\z))` +
				`|<(?<p>` + trie.Pattern(parsable) + `)(?=[\s>/])(?>[^>]*)` +
				`(?:(?<=/)>|>(?<c>.*?)(?:</\k<p>\s*>|\z))`,
			options: caseless,
		},
		{
			target:  &grammar.htmlStartTag,
			pattern: `<(?:` + htmlNames + `)\b(?>"[^"]*"|'[^']*'|[^<>])*>`,
			options: caseless,
		},
		{
			target:  &grammar.htmlEndTag,
			pattern: `</(?:` + htmlNames + `)\b[^<>]*>`,
			options: caseless,
		},
		{
			target:  &grammar.externalLink,
			pattern: `\G[ \x00]*(?:` + trie.Pattern(bareExternalLinkSchemes) + `)`,
			options: regexp2.IgnoreCase,
		},
		{
			target: &grammar.pfTemplate,
			pattern: `\{\{(?>` +
				`[\s\x00]*(?>\#[^{}\s:|]+|` + trie.Pattern(functions) + `)` +
				`(?::(?>(?:[^{}]|\}(?!\})|\{(?!\{))*))?\}\}(?<pf>)` +
				`|[\s\x00_]*` + argsPattern + `\}\}(?<bad>)` +
				`|[\s\x00]*(?>[^|\[\]{}<>\n]*)[\s\x00]*` + argsPattern + `\}\})`,
			options: regexp2.None,
		},
		{
			target:  &grammar.tagAttr,
			pattern: `\s(?<n>[^\s/>=]+)(?:\s*=\s*(?:"(?<dq>[^"]*)"|'(?<sq>[^']*)'|(?<bare>[^\s/>]*)))?`,
			options: caseless,
		},
	}

	for _, spec := range patterns {
		re, err := regexp2.Compile(spec.pattern, spec.options)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern: %w", err)
		}
		if cfg.MatchTimeout > 0 {
			re.MatchTimeout = cfg.MatchTimeout
		}
		*spec.target = re
	}

	return grammar, nil
}

// isUnparsable reports whether the extension tag name has an opaque body.
func (g *Grammar) isUnparsable(name string) bool {
	return g.unparsable[strings.ToLower(name)]
}

// mergeWords returns base plus extra. Empty and duplicate entries are dropped.
func mergeWords(base, extra []string) []string {
	words := slices.Clone(base)
	for _, word := range extra {
		word = strings.TrimSpace(word)
		if word == "" || slices.Contains(words, word) {
			continue
		}
		words = append(words, word)
	}
	return words
}
