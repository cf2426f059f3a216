package wikitext

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/wikispan/pkg/langdetect"
)

// Element is the typed view of a node. Every element embeds *Node.
type Element interface {
	Kind() Kind
	Text() (string, error)
}

var elements = [kindCount]func(*Node) Element{
	KindDocument:       func(n *Node) Element { return n },
	KindComment:        func(n *Node) Element { return &Comment{n} },
	KindExtensionTag:   func(n *Node) Element { return &ExtensionTag{n} },
	KindWikiLink:       func(n *Node) Element { return &WikiLink{n} },
	KindParameter:      func(n *Node) Element { return &Parameter{n} },
	KindParserFunction: func(n *Node) Element { return &ParserFunction{n} },
	KindTemplate:       func(n *Node) Element { return &Template{n} },
	KindArgument:       func(n *Node) Element { return &Argument{n} },
}

// Element returns the typed view of the node.
func (n *Node) Element() Element {
	return elements[n.kind](n)
}

func wrapAll[T any](nodes []*Node, wrap func(*Node) T) []T {
	out := make([]T, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, wrap(node))
	}
	return out
}

// Templates returns the templates of the document in order.
func (d *Document) Templates() []*Template {
	return wrapAll(d.Nodes(KindTemplate), func(n *Node) *Template { return &Template{n} })
}

// ParserFunctions returns the parser functions of the document in order.
func (d *Document) ParserFunctions() []*ParserFunction {
	return wrapAll(d.Nodes(KindParserFunction), func(n *Node) *ParserFunction { return &ParserFunction{n} })
}

// WikiLinks returns the wikilinks of the document in order.
func (d *Document) WikiLinks() []*WikiLink {
	return wrapAll(d.Nodes(KindWikiLink), func(n *Node) *WikiLink { return &WikiLink{n} })
}

// Parameters returns the template parameters of the document in order.
func (d *Document) Parameters() []*Parameter {
	return wrapAll(d.Nodes(KindParameter), func(n *Node) *Parameter { return &Parameter{n} })
}

// Comments returns the comments of the document in order.
func (d *Document) Comments() []*Comment {
	return wrapAll(d.Nodes(KindComment), func(n *Node) *Comment { return &Comment{n} })
}

// ExtensionTags returns the extension tags of the document in order.
func (d *Document) ExtensionTags() []*ExtensionTag {
	return wrapAll(d.Nodes(KindExtensionTag), func(n *Node) *ExtensionTag { return &ExtensionTag{n} })
}

// textAndShadow returns the node's text and its shadow.
func (n *Node) textAndShadow() (string, string, error) {
	shadow, err := n.Shadow()
	if err != nil {
		return "", "", err
	}
	return n.doc.text[n.span.Start:n.span.End], shadow, nil
}

// body returns the bounds of the content between delimiters of width head
// and tail in a text of length bytes. Collapsed nodes yield an empty body.
func body(length, head, tail int) (int, int) {
	from := min(head, length)
	return from, max(from, length-tail)
}

// indexFrom returns the index of sep in s[from:to] relative to s, or to.
func indexFrom(s string, from, to int, sep byte) int {
	if from >= to {
		return to
	}
	if idx := strings.IndexByte(s[from:to], sep); idx >= 0 {
		return from + idx
	}
	return to
}

// splitArguments registers and returns the arguments of a template or parser
// function. first separates the first argument from the name; later ones
// are separated by "|".
func (n *Node) splitArguments(first byte) ([]*Argument, error) {
	_, shadow, err := n.textAndShadow()
	if err != nil {
		return nil, err
	}
	from, end := body(len(shadow), 2, 2)

	var starts []int
	if pos := indexFrom(shadow, from, end, first); pos < end {
		starts = append(starts, pos)
		for pos = indexFrom(shadow, pos+1, end, '|'); pos < end; pos = indexFrom(shadow, pos+1, end, '|') {
			starts = append(starts, pos)
		}
	}

	args := make([]*Argument, 0, len(starts))
	for idx, start := range starts {
		stop := end
		if idx+1 < len(starts) {
			stop = starts[idx+1]
		}
		span := n.doc.reg.insertOrGet(KindArgument, n.span.Start+start, n.span.Start+stop)
		args = append(args, &Argument{n.doc.node(KindArgument, span)})
	}
	return args, nil
}

// Template is a transclusion such as {{name|arg}}.
type Template struct {
	*Node
}

func (t *Template) nameEnd() (string, int, error) {
	text, shadow, err := t.textAndShadow()
	if err != nil {
		return "", 0, err
	}
	from, to := body(len(shadow), 2, 2)
	return text, indexFrom(shadow, from, to, '|'), nil
}

// Name returns the template name as written, including whitespace.
func (t *Template) Name() (string, error) {
	text, end, err := t.nameEnd()
	if err != nil {
		return "", err
	}
	return text[min(2, end):end], nil
}

// NormalName returns the name with comments removed, underscores and runs of
// whitespace collapsed to single spaces, and the first letter upper-cased.
func (t *Template) NormalName() (string, error) {
	text, shadow, err := t.textAndShadow()
	if err != nil {
		return "", err
	}
	from, to := body(len(shadow), 2, 2)
	end := indexFrom(shadow, from, to, '|')

	var sb strings.Builder
	for idx := from; idx < end; idx++ {
		if shadow[idx] != 0 {
			sb.WriteByte(text[idx])
		}
	}
	name := strings.Join(strings.Fields(strings.ReplaceAll(sb.String(), "_", " ")), " ")
	first, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return "", nil
	}
	return string(unicode.ToUpper(first)) + name[size:], nil
}

// SetName replaces the template name.
func (t *Template) SetName(name string) error {
	_, end, err := t.nameEnd()
	if err != nil {
		return err
	}
	return t.Replace(min(2, end), end, name)
}

// Arguments returns the arguments of the template in order.
func (t *Template) Arguments() ([]*Argument, error) {
	return t.splitArguments('|')
}

// Argument returns the last argument called name. Names are compared with
// surrounding whitespace removed.
func (t *Template) Argument(name string) (*Argument, bool, error) {
	args, err := t.Arguments()
	if err != nil {
		return nil, false, err
	}
	for idx := len(args) - 1; idx >= 0; idx-- {
		argName, err := args[idx].Name()
		if err != nil {
			return nil, false, err
		}
		if strings.TrimSpace(argName) == strings.TrimSpace(name) {
			return args[idx], true, nil
		}
	}
	return nil, false, nil
}

// ParserFunction is a call such as {{#if:x|y}} or a magic word.
type ParserFunction struct {
	*Node
}

// Name returns the function name as written.
func (pf *ParserFunction) Name() (string, error) {
	text, shadow, err := pf.textAndShadow()
	if err != nil {
		return "", err
	}
	from, to := body(len(shadow), 2, 2)
	end := min(indexFrom(shadow, from, to, ':'), indexFrom(shadow, from, to, '|'))
	return text[from:end], nil
}

// Arguments returns the arguments of the function. The first one is
// separated from the name by ":".
func (pf *ParserFunction) Arguments() ([]*Argument, error) {
	return pf.splitArguments(':')
}

// Argument is one "|name=value" or "|value" part of a template or parser
// function, separator included.
type Argument struct {
	*Node
}

// equals returns the text of the argument and the index of the "=" that
// separates its name from its value, or -1 for positional arguments.
func (a *Argument) equals() (string, int, error) {
	text, shadow, err := a.textAndShadow()
	if err != nil {
		return "", 0, err
	}
	if len(shadow) == 0 {
		return text, -1, nil
	}
	eq := strings.IndexByte(shadow[1:], '=')
	if eq >= 0 {
		eq++
	}
	return text, eq, nil
}

// Positional reports whether the argument has no name.
func (a *Argument) Positional() (bool, error) {
	_, eq, err := a.equals()
	return eq < 0, err
}

// Name returns the name of a named argument, or the 1-based position of a
// positional argument among the positional arguments of its parent.
func (a *Argument) Name() (string, error) {
	text, eq, err := a.equals()
	if err != nil {
		return "", err
	}
	if eq >= 0 {
		return text[1:eq], nil
	}

	parent, err := a.Parent(KindTemplate, KindParserFunction)
	if err != nil || parent == nil {
		return "1", err
	}
	var siblings []*Argument
	if parent.kind == KindTemplate {
		siblings, err = parent.splitArguments('|')
	} else {
		siblings, err = parent.splitArguments(':')
	}
	if err != nil {
		return "", err
	}

	position := 0
	for _, sibling := range siblings {
		positional, err := sibling.Positional()
		if err != nil {
			return "", err
		}
		if positional {
			position++
		}
		if sibling.span == a.span {
			break
		}
	}
	return strconv.Itoa(position), nil
}

// Value returns the value of the argument.
func (a *Argument) Value() (string, error) {
	text, eq, err := a.equals()
	if err != nil {
		return "", err
	}
	return text[a.valueStart(len(text), eq):], nil
}

// SetValue replaces the value of the argument.
func (a *Argument) SetValue(value string) error {
	text, eq, err := a.equals()
	if err != nil {
		return err
	}
	return a.Replace(a.valueStart(len(text), eq), End, value)
}

func (a *Argument) valueStart(length, eq int) int {
	if eq >= 0 {
		return eq + 1
	}
	return min(1, length)
}

// WikiLink is an internal link such as [[target#fragment|text]].
type WikiLink struct {
	*Node
}

// parts returns the text of the link, the index of the "|" before the link
// text (or the end of the target) and the end of the link body.
func (w *WikiLink) parts() (string, int, int, error) {
	text, shadow, err := w.textAndShadow()
	if err != nil {
		return "", 0, 0, err
	}
	from, end := body(len(shadow), 2, 2)
	return text, indexFrom(shadow, from, end, '|'), end, nil
}

// Target returns the link target, fragment included.
func (w *WikiLink) Target() (string, error) {
	text, pipe, _, err := w.parts()
	if err != nil {
		return "", err
	}
	return text[min(2, pipe):pipe], nil
}

// SetTarget replaces the link target.
func (w *WikiLink) SetTarget(target string) error {
	_, pipe, _, err := w.parts()
	if err != nil {
		return err
	}
	return w.Replace(min(2, pipe), pipe, target)
}

// Title returns the target without its fragment.
func (w *WikiLink) Title() (string, error) {
	target, err := w.Target()
	if err != nil {
		return "", err
	}
	title, _, _ := strings.Cut(target, "#")
	return title, nil
}

// SetTitle replaces the target while keeping its fragment.
func (w *WikiLink) SetTitle(title string) error {
	target, err := w.Target()
	if err != nil {
		return err
	}
	old, _, _ := strings.Cut(target, "#")
	return w.Replace(2, 2+len(old), title)
}

// Fragment returns the part of the target after "#".
func (w *WikiLink) Fragment() (string, bool, error) {
	target, err := w.Target()
	if err != nil {
		return "", false, err
	}
	_, fragment, ok := strings.Cut(target, "#")
	return fragment, ok, nil
}

// LinkText returns the text shown for the link, if there is one.
func (w *WikiLink) LinkText() (string, bool, error) {
	text, pipe, end, err := w.parts()
	if err != nil {
		return "", false, err
	}
	if pipe == end {
		return "", false, nil
	}
	return text[pipe+1 : end], true, nil
}

// SetLinkText replaces the link text, adding it if the link has none.
func (w *WikiLink) SetLinkText(linkText string) error {
	_, pipe, end, err := w.parts()
	if err != nil {
		return err
	}
	if pipe == end {
		return w.Insert(end, "|"+linkText)
	}
	return w.Replace(pipe+1, end, linkText)
}

// DeleteLinkText removes the link text and its "|".
func (w *WikiLink) DeleteLinkText() error {
	_, pipe, end, err := w.parts()
	if err != nil {
		return err
	}
	if pipe == end {
		return nil
	}
	return w.Delete(pipe, end)
}

// Parameter is a template parameter such as {{{name|default}}}.
type Parameter struct {
	*Node
}

func (p *Parameter) parts() (string, int, int, error) {
	text, shadow, err := p.textAndShadow()
	if err != nil {
		return "", 0, 0, err
	}
	from, end := body(len(shadow), 3, 3)
	return text, indexFrom(shadow, from, end, '|'), end, nil
}

// Name returns the parameter name as written.
func (p *Parameter) Name() (string, error) {
	text, pipe, _, err := p.parts()
	if err != nil {
		return "", err
	}
	return text[min(3, pipe):pipe], nil
}

// Default returns the default value of the parameter, if it has one.
func (p *Parameter) Default() (string, bool, error) {
	text, pipe, end, err := p.parts()
	if err != nil {
		return "", false, err
	}
	if pipe == end {
		return "", false, nil
	}
	return text[pipe+1 : end], true, nil
}

// Comment is an HTML comment.
type Comment struct {
	*Node
}

// Contents returns the text between "<!--" and "-->".
func (c *Comment) Contents() (string, error) {
	text, err := c.Text()
	if err != nil {
		return "", err
	}
	head, tail := delimiters(KindComment, text)
	from, to := body(len(text), head, tail)
	return text[from:to], nil
}

// ExtensionTag is a tag such as <ref> or <syntaxhighlight> whose body is
// handled by a MediaWiki extension.
type ExtensionTag struct {
	*Node
}

// Name returns the tag name as written.
func (et *ExtensionTag) Name() (string, error) {
	text, err := et.Text()
	if err != nil {
		return "", err
	}
	return tagName(text), nil
}

// Contents returns the body of the tag. Self-closing tags have none.
func (et *ExtensionTag) Contents() (string, error) {
	text, err := et.Text()
	if err != nil {
		return "", err
	}
	head, tail := delimiters(KindExtensionTag, text)
	from, to := body(len(text), head, tail)
	return text[from:to], nil
}

// Attr returns the value of the attribute called name.
func (et *ExtensionTag) Attr(name string) (string, bool, error) {
	text, err := et.Text()
	if err != nil {
		return "", false, err
	}
	startTag := text
	if end := strings.IndexByte(text, '>'); end >= 0 {
		startTag = text[:end+1]
	}

	match, err := et.doc.grammar.tagAttr.FindStringMatch(startTag)
	for ; match != nil && err == nil; match, err = et.doc.grammar.tagAttr.FindNextMatch(match) {
		if !strings.EqualFold(match.GroupByName("n").String(), name) {
			continue
		}
		for _, groupName := range []string{"dq", "sq", "bare"} {
			if g := match.GroupByName(groupName); len(g.Captures) > 0 {
				return g.String(), true, nil
			}
		}
		return "", true, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrMatchTimeout, err)
	}
	return "", false, nil
}

// Language returns the language of the tag body: the lang attribute when
// present, otherwise a language detected from the tag name and contents.
func (et *ExtensionTag) Language() (string, error) {
	lang, ok, err := et.Attr("lang")
	if err != nil {
		return "", err
	}
	if ok && lang != "" {
		return strings.ToLower(lang), nil
	}

	name, err := et.Name()
	if err != nil {
		return "", err
	}
	contents, err := et.Contents()
	if err != nil {
		return "", err
	}
	return langdetect.ForTag(name, []byte(contents)), nil
}
