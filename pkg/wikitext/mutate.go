package wikitext

import "fmt"

// Replace replaces the text between two offsets relative to the node.
// Offsets follow the rules of Slice.
//
// The inserted text is parsed first; if that fails, the document is left
// untouched. Spans of other nodes that lie inside the replaced range die.
// Every other span is shifted, grown or shrunk so that it keeps covering
// the same text, and constructs in the inserted text become new spans.
func (n *Node) Replace(start, stop int, text string) error {
	if err := n.live(); err != nil {
		return err
	}
	a, b, err := n.resolve(start, stop)
	if err != nil {
		return err
	}

	inserted, err := parseText(n.doc.grammar, n.doc.maxDepth, text)
	if err != nil {
		n.doc.debug("edit rejected", "kind", n.kind, "error", err)
		return fmt.Errorf("parsing inserted text: %w", err)
	}

	doc := n.doc
	killed := 0
	if a < b {
		killed = doc.killInside(a, b, n.span)
	}

	doc.text = doc.text[:a] + text + doc.text[b:]
	doc.lineStarts = nil

	delta := len(text) - (b - a)
	switch {
	case delta > 0:
		doc.grow(a, delta, n.span)
	case delta < 0:
		killed += doc.shrink(a+len(text), b, n.span)
	}
	doc.invalidate(a, a+len(text))
	doc.reg.restore()

	added := 0
	for kind, ranges := range inserted.out {
		for _, r := range ranges {
			before := len(doc.reg.spans[kind])
			doc.reg.insertOrGet(Kind(kind), r[0]+a, r[1]+a)
			added += len(doc.reg.spans[kind]) - before
		}
	}

	doc.debug("edited", "kind", n.kind, "start", a, "stop", b, "delta", delta,
		"killed", killed, "added", added)
	return nil
}

// Insert inserts text at an offset relative to the node. The offset may be
// negative, and it is clamped to the node's bounds.
func (n *Node) Insert(index int, text string) error {
	if err := n.live(); err != nil {
		return err
	}
	length := n.span.Len()
	if index < 0 {
		index += length
	}
	index = max(0, min(index, length))
	return n.Replace(index, index, text)
}

// Delete removes the text between two offsets relative to the node.
func (n *Node) Delete(start, stop int) error {
	return n.Replace(start, stop, "")
}

// SetText replaces the whole text of the node. The node stays alive.
func (n *Node) SetText(text string) error {
	return n.Replace(0, End, text)
}

// DeleteText removes the whole text of the node, leaving it empty.
func (n *Node) DeleteText() error {
	return n.Replace(0, End, "")
}

// survives reports whether span is exempt from dying in an edit issued
// through editor.
func (d *Document) survives(span, editor *Span) bool {
	return span == editor || span == d.root
}

// killInside kills every span within [a, b) other than the editor and the
// root, and returns how many died.
func (d *Document) killInside(a, b int, editor *Span) int {
	killed := 0
	d.reg.each(func(_ Kind, span *Span) {
		if a <= span.Start && span.End <= b && !d.survives(span, editor) {
			span.kill()
			killed++
		}
	})
	return killed
}

// grow repairs offsets after delta bytes were added at a. The editor, the
// root and spans strictly enclosing the editor absorb an insertion at their
// edge; every other span touching a is pushed forward.
func (d *Document) grow(a, delta int, editor *Span) {
	target := Span{Start: editor.Start, End: editor.End}
	d.reg.each(func(_ Kind, span *Span) {
		encloses := d.survives(span, editor) ||
			(span.contains(&target) && span.Len() > target.Len())
		moved := false
		if span.End > a || (span.End == a && (encloses || span.Start == a)) {
			span.End += delta
			moved = true
		}
		if span.Start > a || (span.Start == a && !encloses) {
			span.Start += delta
			moved = true
		}
		if moved {
			span.invalidate()
		}
	})
}

// shrink repairs offsets after [a, b) was removed and returns the number of
// spans that died. The editor and the root collapse instead of dying.
func (d *Document) shrink(a, b int, editor *Span) int {
	delta := b - a
	killed := 0
	d.reg.each(func(_ Kind, span *Span) {
		switch s, e := span.Start, span.End; {
		case e <= a && s < a:
			return
		case b <= s:
			span.Start -= delta
			span.End -= delta
		case a <= s && b < e:
			span.Start = a
			span.End -= delta
		case a <= s:
			if d.survives(span, editor) {
				span.Start, span.End = a, a
				break
			}
			span.kill()
			killed++
			return
		case b < e:
			span.End -= delta
		default:
			span.End = a
		}
		span.invalidate()
	})
	return killed
}

// invalidate clears the caches of every span touching [a, b).
func (d *Document) invalidate(a, b int) {
	d.reg.each(func(_ Kind, span *Span) {
		if span.Start <= b && a <= span.End {
			span.invalidate()
		}
	})
}
