package wikitext

import (
	"cmp"
	"slices"
	"sort"
)

// registry maps each kind to its spans, sorted by start.
type registry struct {
	spans [kindCount][]*Span
}

// firstAtOrAfter returns the index of the first span of kind starting at or
// after start.
func (r *registry) firstAtOrAfter(kind Kind, start int) int {
	list := r.spans[kind]
	return sort.Search(len(list), func(i int) bool {
		return list[i].Start >= start
	})
}

// firstAfter returns the index of the first span of kind starting after start.
func (r *registry) firstAfter(kind Kind, start int) int {
	list := r.spans[kind]
	return sort.Search(len(list), func(i int) bool {
		return list[i].Start > start
	})
}

// subspans returns the live spans of kind contained in [start, end),
// including one equal to the range itself.
func (r *registry) subspans(kind Kind, start, end int) []*Span {
	var out []*Span
	list := r.spans[kind]
	for idx := r.firstAtOrAfter(kind, start); idx < len(list); idx++ {
		span := list[idx]
		if span.Start > end {
			break
		}
		if span.End <= end && !span.dead {
			out = append(out, span)
		}
	}
	return out
}

// kindSpan pairs a span with the kind list it belongs to.
type kindSpan struct {
	kind Kind
	span *Span
}

// ancestors returns the live spans of kinds that strictly contain target:
// start <= target.Start and target.End < end. The nearest enclosing span
// comes first.
func (r *registry) ancestors(target *Span, kinds []Kind) []kindSpan {
	var out []kindSpan
	for _, kind := range kinds {
		list := r.spans[kind]
		for idx := r.firstAfter(kind, target.Start) - 1; idx >= 0; idx-- {
			span := list[idx]
			if span == target || span.dead {
				continue
			}
			if target.End < span.End {
				out = append(out, kindSpan{kind: kind, span: span})
			}
		}
	}

	slices.SortFunc(out, func(a, b kindSpan) int {
		return cmp.Or(
			cmp.Compare(target.Start-a.span.Start, target.Start-b.span.Start),
			cmp.Compare(a.span.End, b.span.End),
			cmp.Compare(kindRank(a.kind), kindRank(b.kind)),
		)
	})
	return out
}

// kindRank orders kinds for ancestor ties; the document always comes last.
func kindRank(kind Kind) int {
	if kind == KindDocument {
		return kindCount
	}
	return int(kind)
}

// insertOrGet returns the existing span of kind with exactly [start, end),
// or inserts a new one after any spans with the same start.
func (r *registry) insertOrGet(kind Kind, start, end int) *Span {
	list := r.spans[kind]
	idx := r.firstAfter(kind, start)
	for prev := idx - 1; prev >= 0 && list[prev].Start == start; prev-- {
		if list[prev].End == end && !list[prev].dead {
			return list[prev]
		}
	}

	span := &Span{Start: start, End: end}
	r.spans[kind] = slices.Insert(list, idx, span)
	return span
}

// each calls fn for every live span of every kind.
func (r *registry) each(fn func(kind Kind, span *Span)) {
	for kind := range r.spans {
		for _, span := range r.spans[kind] {
			if !span.dead {
				fn(Kind(kind), span)
			}
		}
	}
}

// restore re-sorts lists that edits left out of order and drops dead spans.
func (r *registry) restore() {
	for kind, list := range r.spans {
		list = slices.DeleteFunc(list, (*Span).Dead)
		if !slices.IsSortedFunc(list, compareStart) {
			slices.SortStableFunc(list, compareStart)
		}
		r.spans[kind] = list
	}
}

func compareStart(a, b *Span) int {
	return cmp.Compare(a.Start, b.Start)
}

// count returns the number of live spans of kind.
func (r *registry) count(kind Kind) int {
	n := 0
	for _, span := range r.spans[kind] {
		if !span.dead {
			n++
		}
	}
	return n
}
