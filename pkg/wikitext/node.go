package wikitext

import (
	"fmt"
	"math"
	"slices"
)

// End, used as a stop offset, means the end of the node.
const End = math.MaxInt

// Node is a view of one span of a document. Nodes do not own text: they
// slice the document buffer on every read.
type Node struct {
	doc  *Document
	kind Kind
	span *Span
}

// Kind returns the kind of construct the node covers.
func (n *Node) Kind() Kind {
	return n.kind
}

// Document returns the document the node belongs to.
func (n *Node) Document() *Document {
	return n.doc
}

// Dead reports whether the node's text was overwritten through another node.
func (n *Node) Dead() bool {
	return n.span.dead
}

func (n *Node) live() error {
	if n.span.dead {
		return fmt.Errorf("%s node: %w", n.kind, ErrDeadNode)
	}
	return nil
}

// Span returns the absolute [start, end) offsets of the node.
func (n *Node) Span() (int, int, error) {
	if err := n.live(); err != nil {
		return 0, 0, err
	}
	return n.span.Start, n.span.End, nil
}

// Len returns the length of the node's text in bytes.
func (n *Node) Len() (int, error) {
	if err := n.live(); err != nil {
		return 0, err
	}
	return n.span.Len(), nil
}

// Text returns the node's text.
func (n *Node) Text() (string, error) {
	if err := n.live(); err != nil {
		return "", err
	}
	return n.doc.text[n.span.Start:n.span.End], nil
}

// Slice returns the text between two offsets relative to the node.
// Negative offsets count from the node's end and End as stop means the
// node's end.
func (n *Node) Slice(start, stop int) (string, error) {
	if err := n.live(); err != nil {
		return "", err
	}
	a, b, err := n.resolve(start, stop)
	if err != nil {
		return "", err
	}
	return n.doc.text[a:b], nil
}

// resolve converts relative offsets to absolute buffer offsets.
func (n *Node) resolve(start, stop int) (int, int, error) {
	length := n.span.Len()
	if start < 0 {
		start += length
	}
	switch {
	case stop == End:
		stop = length
	case stop < 0:
		stop += length
	}
	if start < 0 || stop > length || start > stop {
		return 0, 0, fmt.Errorf("%w: [%d:%d] in node of length %d", ErrIndexOutOfRange, start, stop, length)
	}
	return n.span.Start + start, n.span.Start + stop, nil
}

// Subspans returns the nodes of kind contained in this node, including the
// node itself when it is of that kind.
func (n *Node) Subspans(kind Kind) ([]*Node, error) {
	if err := n.live(); err != nil {
		return nil, err
	}
	spans := n.doc.reg.subspans(kind, n.span.Start, n.span.End)
	nodes := make([]*Node, 0, len(spans))
	for _, span := range spans {
		nodes = append(nodes, n.doc.node(kind, span))
	}
	return nodes, nil
}

// Descendants returns the nodes of kind strictly inside this node.
func (n *Node) Descendants(kind Kind) ([]*Node, error) {
	nodes, err := n.Subspans(kind)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(nodes, func(other *Node) bool {
		return other.span == n.span
	}), nil
}

// Ancestors returns the nodes of kinds that strictly contain this node,
// nearest first. With no kinds, the parsed kinds are used.
func (n *Node) Ancestors(kinds ...Kind) ([]*Node, error) {
	if err := n.live(); err != nil {
		return nil, err
	}
	if len(kinds) == 0 {
		kinds = parsedKinds[:]
	}
	found := n.doc.reg.ancestors(n.span, kinds)
	nodes := make([]*Node, 0, len(found))
	for _, ancestor := range found {
		nodes = append(nodes, n.doc.node(ancestor.kind, ancestor.span))
	}
	return nodes, nil
}

// Parent returns the nearest ancestor of kinds, or nil if there is none.
func (n *Node) Parent(kinds ...Kind) (*Node, error) {
	ancestors, err := n.Ancestors(kinds...)
	if err != nil || len(ancestors) == 0 {
		return nil, err
	}
	return ancestors[0], nil
}

// NestingLevel returns the number of ancestors of kinds.
func (n *Node) NestingLevel(kinds ...Kind) (int, error) {
	ancestors, err := n.Ancestors(kinds...)
	return len(ancestors), err
}
