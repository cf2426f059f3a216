// Package wikitext parses MediaWiki markup into typed spans over one shared
// text buffer and keeps every span consistent while the text is edited.
//
// A Document owns the buffer and a registry of spans per Kind. Nodes are
// lightweight views onto a span; reading a node slices the buffer, and every
// write goes through Node.Replace, which repairs the offsets of all spans and
// parses the inserted text so new markup is immediately queryable.
//
// A Document and its nodes are not safe for concurrent use.
package wikitext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configures parsing.
type Options struct {
	// Grammar supplies the compiled patterns. Nil means DefaultGrammar().
	Grammar *Grammar

	// MaxDepth bounds how deeply markup may nest.
	// 0 or negative means DefaultMaxDepth.
	MaxDepth int

	// Logger receives debug output about parsing and edits. Nil disables it.
	Logger *log.Logger
}

// Document is a parsed wikitext buffer.
type Document struct {
	text     string
	reg      registry
	root     *Span
	grammar  *Grammar
	maxDepth int
	logger   *log.Logger

	// lineStarts holds the offset of every line start; nil when stale.
	lineStarts []int
}

// Parse parses text into a Document.
func Parse(text string, opts Options) (*Document, error) {
	grammar := opts.Grammar
	if grammar == nil {
		var err error
		if grammar, err = DefaultGrammar(); err != nil {
			return nil, err
		}
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	doc := &Document{
		text:     text,
		grammar:  grammar,
		maxDepth: maxDepth,
		logger:   opts.Logger,
	}

	p, err := parseText(grammar, maxDepth, text)
	if err != nil {
		doc.debug("parse failed", "error", err, "max_depth", maxDepth)
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	doc.root = &Span{Start: 0, End: len(text), shadow: p.shadow(), hasShadow: true}
	doc.reg.spans[KindDocument] = []*Span{doc.root}
	for kind, ranges := range p.out {
		for _, r := range ranges {
			doc.reg.spans[kind] = append(doc.reg.spans[kind], &Span{Start: r[0], End: r[1]})
		}
	}

	if doc.logger != nil {
		doc.debug("parsed document",
			"bytes", len(text),
			"sweeps", p.sweeps,
			"templates", doc.reg.count(KindTemplate),
			"parser_functions", doc.reg.count(KindParserFunction),
			"wikilinks", doc.reg.count(KindWikiLink),
			"parameters", doc.reg.count(KindParameter),
			"comments", doc.reg.count(KindComment),
			"extension_tags", doc.reg.count(KindExtensionTag),
		)
	}

	return doc, nil
}

func (d *Document) debug(msg string, keyvals ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, keyvals...)
	}
}

// String returns the whole text of the document.
func (d *Document) String() string {
	return d.text
}

// Len returns the length of the document in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// Root returns the node covering the whole document. It never dies.
func (d *Document) Root() *Node {
	return d.node(KindDocument, d.root)
}

func (d *Document) node(kind Kind, span *Span) *Node {
	return &Node{doc: d, kind: kind, span: span}
}

// Nodes returns the live nodes of kind in document order.
func (d *Document) Nodes(kind Kind) []*Node {
	var nodes []*Node
	for _, span := range d.reg.spans[kind] {
		if !span.dead {
			nodes = append(nodes, d.node(kind, span))
		}
	}
	return nodes
}

// Position converts a byte offset to 1-based line and column numbers.
// Columns count bytes. Returns (0, 0) if the offset is out of range.
func (d *Document) Position(offset int) (int, int) {
	if offset < 0 || offset > len(d.text) {
		return 0, 0
	}

	if d.lineStarts == nil {
		d.lineStarts = append(d.lineStarts, 0)
		for idx := strings.IndexByte(d.text, '\n'); idx >= 0; {
			d.lineStarts = append(d.lineStarts, idx+1)
			next := strings.IndexByte(d.text[idx+1:], '\n')
			if next < 0 {
				break
			}
			idx += next + 1
		}
	}

	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	})
	return line, offset - d.lineStarts[line-1] + 1
}
