package wikitext

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is unset.
const DefaultMaxDepth = 128

// found collects the ranges discovered by one parse, per kind, relative to
// the parsed text.
type found [kindCount][][2]int

// translation maps masked characters to their replacements.
type translation map[rune]rune

func newTranslation(from, to string) translation {
	table := make(translation, len(from))
	for idx := range len(from) {
		table[rune(from[idx])] = rune(to[idx])
	}
	return table
}

var (
	// markup neutralises characters that mean something to bold, table and
	// argument syntax.
	markup            = newTranslation("=|[]'{}", "\x01_\x02\x03___")
	brackets          = newTranslation("[]", "__")
	bracesPipeNewline = newTranslation("{}|\n", "____")
)

// parser discovers spans in a working copy of the text. Matched regions are
// overwritten with placeholder characters so later passes cannot see into
// them. The working copy holds one rune per byte of the source; non-ASCII
// bytes become utf8.RuneError, which no pattern treats as markup.
type parser struct {
	grammar  *Grammar
	maxDepth int
	src      string
	buf      []rune
	out      found
	sweeps   int
}

func newParser(grammar *Grammar, maxDepth int, text string) *parser {
	buf := make([]rune, len(text))
	for idx := range len(text) {
		if char := text[idx]; char < utf8.RuneSelf {
			buf[idx] = rune(char)
		} else {
			buf[idx] = utf8.RuneError
		}
	}
	return &parser{grammar: grammar, maxDepth: maxDepth, src: text, buf: buf}
}

// parseText runs every pass over text. The returned parser holds the
// discovered spans, sorted by start within each kind, and the masked copy.
func parseText(grammar *Grammar, maxDepth int, text string) (*parser, error) {
	p := newParser(grammar, maxDepth, text)
	if err := p.run(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) run() error {
	if err := p.extractTags(0, len(p.buf), 0); err != nil {
		return err
	}
	if err := p.parseSubSpans(0, len(p.buf), 0); err != nil {
		return err
	}
	for kind := range p.out {
		slices.SortStableFunc(p.out[kind], func(a, b [2]int) int {
			return cmp.Compare(a[0], b[0])
		})
	}
	return nil
}

// shadow returns the masked working copy with untouched bytes restored.
func (p *parser) shadow() string {
	out := make([]byte, len(p.buf))
	for idx, char := range p.buf {
		if char == utf8.RuneError {
			out[idx] = p.src[idx]
		} else {
			out[idx] = byte(char)
		}
	}
	return string(out)
}

func (p *parser) add(kind Kind, start, end int) {
	p.out[kind] = append(p.out[kind], [2]int{start, end})
}

func (p *parser) fill(start, end int, char rune) {
	for idx := start; idx < end; idx++ {
		p.buf[idx] = char
	}
}

func (p *parser) translate(start, end int, table translation) {
	for idx := start; idx < end; idx++ {
		if repl, ok := table[p.buf[idx]]; ok {
			p.buf[idx] = repl
		}
	}
}

func (p *parser) checkDepth(depth int) error {
	if depth > p.maxDepth {
		return fmt.Errorf("%w: limit is %d", ErrTooDeeplyNested, p.maxDepth)
	}
	return nil
}

// findAll returns the non-overlapping matches of re inside [start, end).
func (p *parser) findAll(re *regexp2.Regexp, start, end int) ([]*regexp2.Match, error) {
	var matches []*regexp2.Match
	text := p.buf[:end]
	for pos := start; pos <= end; {
		match, err := re.FindRunesMatchStartingAt(text, pos)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMatchTimeout, err)
		}
		if match == nil {
			break
		}
		matches = append(matches, match)
		pos = match.Index + match.Length
		if match.Length == 0 {
			pos++
		}
	}
	return matches, nil
}

// group returns the extent of a named group, if it participated in the match.
func group(match *regexp2.Match, name string) (int, int, bool) {
	g := match.GroupByName(name)
	if g == nil || len(g.Captures) == 0 {
		return 0, 0, false
	}
	return g.Index, g.Index + g.Length, true
}

// extractTags finds comments and extension tags. Bodies of parsable tags are
// parsed recursively before the whole tag is neutralised.
func (p *parser) extractTags(start, end, depth int) error {
	if err := p.checkDepth(depth); err != nil {
		return err
	}

	matches, err := p.findAll(p.grammar.extensionTags, start, end)
	if err != nil {
		return err
	}

	for _, match := range matches {
		ms, me := match.Index, match.Index+match.Length

		if _, _, ok := group(match, "m"); ok {
			p.add(KindComment, ms, me)
			p.fill(ms, me, 0)
			continue
		}

		p.add(KindExtensionTag, ms, me)
		if _, _, ok := group(match, "u"); ok {
			p.fill(ms, me, '_')
			continue
		}

		if cs, ce, ok := group(match, "c"); ok {
			if err := p.extractTags(cs, ce, depth+1); err != nil {
				return err
			}
		}
		if err := p.parseSubSpans(ms, me, depth+1); err != nil {
			return err
		}
		p.translate(ms, me, markup)
	}

	return nil
}

// parseSubSpans finds wikilinks, parameters, parser functions and templates
// inside [start, end). Innermost constructs are found first; each sweep
// masks what it found so the enclosing construct matches on the next one.
func (p *parser) parseSubSpans(start, end, depth int) error {
	if err := p.checkDepth(depth); err != nil {
		return err
	}

	tags, err := p.htmlTags(start, end)
	if err != nil {
		return err
	}
	for _, tag := range tags {
		p.translate(tag[0], tag[1], brackets)
	}

	sweeps := 0
	for {
		for {
			n, err := p.linksAndParameters(start, end, depth)
			if err != nil {
				return err
			}
			if n == 0 {
				break
			}
			sweeps++
			if err := p.checkDepth(depth + sweeps); err != nil {
				return err
			}
		}

		n, err := p.functionsAndTemplates(start, end)
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}
		sweeps++
		if err := p.checkDepth(depth + sweeps); err != nil {
			return err
		}
	}
	p.sweeps += sweeps

	for _, tag := range tags {
		p.translate(tag[0], tag[1], bracesPipeNewline)
	}
	return nil
}

func (p *parser) htmlTags(start, end int) ([][2]int, error) {
	var tags [][2]int
	for _, re := range []*regexp2.Regexp{p.grammar.htmlStartTag, p.grammar.htmlEndTag} {
		matches, err := p.findAll(re, start, end)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			tags = append(tags, [2]int{match.Index, match.Index + match.Length})
		}
	}
	return tags, nil
}

// linksAndParameters runs one left-to-right sweep and returns the number of
// wikilinks and parameters it found. Constructs that still contain an
// unmasked nested construct of their own kind do not match.
func (p *parser) linksAndParameters(start, end, depth int) (int, error) {
	count := 0
	for idx := start; idx < end; {
		switch p.buf[idx] {
		case '[':
			linkEnd, ok, err := p.matchWikiLink(idx, end)
			if err != nil {
				return count, err
			}
			if ok {
				p.add(KindWikiLink, idx, linkEnd)
				if err := p.parseSubSpans(idx+2, linkEnd-2, depth+1); err != nil {
					return count, err
				}
				p.translate(idx, linkEnd, markup)
				count++
				idx = linkEnd
				continue
			}
		case '{':
			if paramEnd, ok := p.matchParameter(idx, end); ok {
				p.add(KindParameter, idx, paramEnd)
				if err := p.parseSubSpans(idx+3, paramEnd-3, depth+1); err != nil {
					return count, err
				}
				p.fill(idx, paramEnd, '_')
				count++
				idx = paramEnd
				continue
			}
		}
		idx++
	}
	return count, nil
}

// skipNulls returns the first index at or after idx that is not a masked
// comment byte.
func (p *parser) skipNulls(idx, end int) int {
	for idx < end && p.buf[idx] == 0 {
		idx++
	}
	return idx
}

// opensLink reports whether a "[" at idx starts "[[", allowing masked
// comments between the brackets. It returns the index after the second "[".
func (p *parser) opensLink(idx, end int) (int, bool) {
	next := p.skipNulls(idx+1, end)
	if next < end && p.buf[next] == '[' {
		return next + 1, true
	}
	return 0, false
}

// closesLink is the counterpart of opensLink for "]]".
func (p *parser) closesLink(idx, end int) (int, bool) {
	next := p.skipNulls(idx+1, end)
	if next < end && p.buf[next] == ']' {
		return next + 1, true
	}
	return 0, false
}

const titleStops = "|[]{}<>\n"

func (p *parser) matchWikiLink(idx, end int) (int, bool, error) {
	pos, ok := p.opensLink(idx, end)
	if !ok {
		return 0, false, nil
	}

	external, err := p.grammar.externalLink.FindRunesMatchStartingAt(p.buf[:end], pos)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrMatchTimeout, err)
	}
	if external != nil {
		return 0, false, nil
	}

	for pos < end && !strings.ContainsRune(titleStops, p.buf[pos]) {
		pos++
	}
	if pos >= end {
		return 0, false, nil
	}

	switch p.buf[pos] {
	case ']':
		closed, ok := p.closesLink(pos, end)
		return closed, ok, nil
	case '|':
		closed, ok := p.matchLinkText(pos+1, end)
		return closed, ok, nil
	default:
		return 0, false, nil
	}
}

// matchLinkText scans the text part of a wikilink. A single "[" opens a
// bracket pair which the next "]" closes, unless that "]" starts the
// closing "]]" of the link. A nested "[[" means the link is not innermost.
func (p *parser) matchLinkText(pos, end int) (int, bool) {
	open := false
	for ; pos < end; pos++ {
		switch p.buf[pos] {
		case '[':
			if _, nested := p.opensLink(pos, end); nested {
				return 0, false
			}
			open = true
		case ']':
			closed, ok := p.closesLink(pos, end)
			if !ok {
				open = false
				continue
			}
			if open && closed < end && p.buf[closed] == ']' {
				open = false
				continue
			}
			return closed, true
		}
	}
	return 0, false
}

func isBrace(char rune) bool {
	return char == '{' || char == '}'
}

// matchParameter matches "{{{" + content + "}}}" where the content is not
// empty and holds no brace adjacent to another brace.
func (p *parser) matchParameter(idx, end int) (int, bool) {
	if idx+3 > end || p.buf[idx+1] != '{' || p.buf[idx+2] != '{' {
		return 0, false
	}

	for pos := idx + 3; pos < end; pos++ {
		char := p.buf[pos]
		if !isBrace(char) {
			continue
		}
		if char == '}' && pos+3 <= end && p.buf[pos+1] == '}' && p.buf[pos+2] == '}' {
			if pos == idx+3 {
				return 0, false
			}
			return pos + 3, true
		}
		if isBrace(p.buf[pos-1]) || (pos+1 < end && isBrace(p.buf[pos+1])) {
			return 0, false
		}
	}
	return 0, false
}

// functionsAndTemplates runs one sweep of the combined parser function and
// template pattern and returns the number of matches.
func (p *parser) functionsAndTemplates(start, end int) (int, error) {
	matches, err := p.findAll(p.grammar.pfTemplate, start, end)
	if err != nil {
		return 0, err
	}

	for _, match := range matches {
		ms, me := match.Index, match.Index+match.Length

		if _, _, bad := group(match, "bad"); bad {
			p.fill(ms, me, '_')
			p.buf[ms+1] = '{'
			continue
		}

		kind := KindTemplate
		if _, _, ok := group(match, "pf"); ok {
			kind = KindParserFunction
		}
		p.add(kind, ms, me)
		p.fill(ms, me, 'X')
	}

	return len(matches), nil
}
