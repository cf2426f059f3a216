// Package fix applies batches of text edits to wikitext nodes and renders
// the result as a unified diff.
package fix

import (
	"strings"

	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// TextEdit replaces the bytes [Start, End) of a node with NewText.
// Offsets are relative to the node the edit is applied through.
type TextEdit struct {
	Start   int
	End     int
	NewText string
}

// EditBuilder accumulates edits against one node.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{Edits: make([]TextEdit, 0)}
}

// ReplaceRange adds an edit that replaces [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{Start: start, End: end, NewText: newText})
}

// Insert adds an edit that inserts text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that removes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// Len returns the number of accumulated edits.
func (b *EditBuilder) Len() int {
	return len(b.Edits)
}

// RenameTemplates returns edits, relative to the document root, that rename
// every template whose normalised name equals the normalised form of from.
// Whitespace around the old name is kept.
func RenameTemplates(doc *wikitext.Document, from, to string) ([]TextEdit, error) {
	want, err := normalName(from)
	if err != nil {
		return nil, err
	}

	builder := NewEditBuilder()
	for _, tmpl := range doc.Templates() {
		normal, err := tmpl.NormalName()
		if err != nil {
			return nil, err
		}
		if normal != want {
			continue
		}

		name, err := tmpl.Name()
		if err != nil {
			return nil, err
		}
		start, _, err := tmpl.Span()
		if err != nil {
			return nil, err
		}

		lead := len(name) - len(strings.TrimLeft(name, " \t\n"))
		trimmed := strings.TrimSpace(name)
		builder.ReplaceRange(start+2+lead, start+2+lead+len(trimmed), to)
	}
	return builder.Edits, nil
}

// normalName normalises a bare template name the way Template.NormalName
// does.
func normalName(name string) (string, error) {
	doc, err := wikitext.Parse("{{"+name+"}}", wikitext.Options{})
	if err != nil {
		return "", err
	}
	templates := doc.Templates()
	if len(templates) == 0 {
		return strings.TrimSpace(name), nil
	}
	return templates[0].NormalName()
}
