package wikitext

import (
	"fmt"
	"strings"
)

// Shadow returns the node's text with every nested construct masked, so that
// callers can search it for separators without matching inside templates,
// links, tags or comments. The node's own delimiters are kept as they are.
// Masked bytes never change length, so offsets into the shadow are offsets
// into the text.
func (n *Node) Shadow() (string, error) {
	if err := n.live(); err != nil {
		return "", err
	}
	if n.span.hasShadow {
		return n.span.shadow, nil
	}

	text := n.doc.text[n.span.Start:n.span.End]
	head, tail := delimiters(n.kind, text)

	var shadow string
	if n.kind == KindExtensionTag && n.doc.grammar.isUnparsable(tagName(text)) {
		shadow = text[:head] + strings.Repeat("_", len(text)-head-tail) + text[len(text)-tail:]
	} else {
		blanked := strings.Repeat("_", head) + text[head:len(text)-tail] + strings.Repeat("_", tail)
		p, err := parseText(n.doc.grammar, n.doc.maxDepth, blanked)
		if err != nil {
			return "", fmt.Errorf("computing shadow: %w", err)
		}
		masked := p.shadow()
		shadow = text[:head] + masked[head:len(masked)-tail] + text[len(text)-tail:]
	}

	n.span.shadow = shadow
	n.span.hasShadow = true
	return shadow, nil
}

// delimiters returns the length of the opening and closing delimiters of a
// construct of kind whose text is text.
func delimiters(kind Kind, text string) (int, int) {
	var head, tail int
	switch kind {
	case KindTemplate, KindParserFunction, KindWikiLink:
		head, tail = 2, 2
	case KindParameter:
		head, tail = 3, 3
	case KindComment:
		head = 4
		if strings.HasSuffix(text, "-->") {
			tail = 3
		}
	case KindExtensionTag:
		head = strings.IndexByte(text, '>') + 1
		if head == 0 || strings.HasSuffix(text[:head], "/>") {
			return len(text), 0
		}
		closing := strings.LastIndex(text, "</")
		if closing >= head && strings.EqualFold(tagName("<"+text[closing+2:]), tagName(text)) {
			tail = len(text) - closing
		}
	case KindDocument, KindArgument:
		return 0, 0
	}
	if head+tail > len(text) {
		return len(text), 0
	}
	return head, tail
}

// tagName returns the name of the tag that text starts with.
func tagName(text string) string {
	name := strings.TrimPrefix(text, "<")
	if end := strings.IndexAny(name, " \t\n\r\f/>"); end >= 0 {
		name = name[:end]
	}
	return name
}
