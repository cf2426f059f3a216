// Package langdetect guesses the language of extension tag bodies.
//
// Tags such as <templatestyles> or <math> imply a fixed language. Code tags
// (<syntaxhighlight>, <source>, <pre>) without a lang attribute are
// classified from their contents with go-enry.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language identifiers, spelled the way <syntaxhighlight lang=...> expects.
const (
	Text       = "text"
	Wikitext   = "wikitext"
	langBash   = "bash"
	langCSS    = "css"
	langHTML   = "html"
	langJSON   = "json"
	langJS     = "javascript"
	langLaTeX  = "latex"
	langLua    = "lua"
	langPHP    = "php"
	langPython = "python"
	langSQL    = "sql"
)

// tagLanguages maps tags with a fixed body language to that language.
var tagLanguages = map[string]string{
	"templatestyles": langCSS,
	"templatedata":   langJSON,
	"graph":          langJSON,
	"mapframe":       langJSON,
	"maplink":        langJSON,
	"math":           langLaTeX,
	"chem":           langLaTeX,
	"ce":             langLaTeX,
	"score":          "lilypond",
	"timeline":       "easytimeline",
	"hiero":          "hieroglyphs",
}

// codeTags hold source code in a language given by their lang attribute.
var codeTags = map[string]bool{
	"syntaxhighlight": true,
	"source":          true,
	"pre":             true,
}

// ForTag returns the language of the body of the extension tag called tag.
// Tags whose body is wikitext yield Wikitext; code tags are detected from
// their content.
func ForTag(tag string, content []byte) string {
	tag = strings.ToLower(tag)
	if lang, ok := tagLanguages[tag]; ok {
		return lang
	}
	if codeTags[tag] {
		return Detect(content)
	}
	return Wikitext
}

// classifierCandidates are the languages commonly highlighted on wikis.
var classifierCandidates = []string{
	"Lua", "JavaScript", "CSS", "PHP", "Python", "Shell", "JSON", "HTML",
	"SQL", "C", "C++", "Java", "Go", "Ruby", "Perl",
}

// signature is a pattern that identifies a language with high confidence.
type signature struct {
	lang  string
	match func(trimmed []byte, text string) bool
}

var signatures = []signature{
	{langPHP, func(trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("<?php"))
	}},
	{langLua, func(_ []byte, text string) bool {
		return strings.Contains(text, "local p = {}") ||
			strings.Contains(text, "require('Module:") ||
			(strings.Contains(text, "function p.") && strings.Contains(text, "return p"))
	}},
	{langHTML, func(trimmed []byte, _ string) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) ||
			bytes.Contains(lower, []byte("<html")) ||
			bytes.Contains(lower, []byte("<body>"))
	}},
	{langJSON, func(trimmed []byte, _ string) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`":`))
	}},
	{langPython, func(_ []byte, text string) bool {
		return (strings.Contains(text, "def ") && strings.Contains(text, "):")) ||
			strings.Contains(text, "__name__")
	}},
	{langSQL, func(_ []byte, text string) bool {
		upper := strings.ToUpper(strings.TrimSpace(text))
		for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, keyword) {
				return true
			}
		}
		return false
	}},
	{langCSS, func(trimmed []byte, text string) bool {
		return bytes.HasPrefix(trimmed, []byte("@import")) ||
			bytes.HasPrefix(trimmed, []byte("@media")) ||
			(strings.Contains(text, "{") && strings.Contains(text, ": ") &&
				strings.Contains(text, ";") && !strings.Contains(text, "function"))
	}},
	{langJS, func(_ []byte, text string) bool {
		return strings.Contains(text, "=>") ||
			strings.Contains(text, "console.log") ||
			strings.Contains(text, "mw.loader")
	}},
}

// Detect returns the language of code content, or Text if no language can
// be determined with confidence.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	text := string(content)
	for _, sig := range signatures {
		if sig.match(trimmed, text) {
			return sig.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// normalize converts go-enry language names to syntaxhighlight identifiers.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return langBash
	case "C++":
		return "cpp"
	default:
		return strings.ToLower(lang)
	}
}
