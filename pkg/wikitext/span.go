package wikitext

// Span is a half-open byte range [Start, End) into a document buffer.
//
// Spans are owned by the registry of one document. While a span is live,
// buffer[Start:End] is exactly the text of every node that refers to it.
type Span struct {
	Start int
	End   int

	dead bool

	// shadow caches the masked text of the span. It is cleared whenever the
	// span's extent or the content under it changes.
	shadow    string
	hasShadow bool
}

// Len returns the number of bytes covered by the span.
func (s *Span) Len() int {
	return s.End - s.Start
}

// Dead reports whether the span was killed by an edit.
func (s *Span) Dead() bool {
	return s.dead
}

func (s *Span) kill() {
	s.dead = true
	s.invalidate()
}

func (s *Span) invalidate() {
	s.shadow = ""
	s.hasShadow = false
}

// contains reports whether other lies within s, bounds included.
func (s *Span) contains(other *Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}
