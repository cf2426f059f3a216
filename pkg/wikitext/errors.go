package wikitext

import "errors"

var (
	// ErrDeadNode is returned by any read or write through a node whose text
	// was overwritten by an edit issued through another node.
	ErrDeadNode = errors.New("node no longer represents live text")

	// ErrIndexOutOfRange is returned when a relative offset falls outside the
	// node it is resolved against.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrTooDeeplyNested is returned when markup nests deeper than the
	// configured limit.
	ErrTooDeeplyNested = errors.New("markup too deeply nested")

	// ErrMatchTimeout is returned when a pattern exceeds its match timeout.
	ErrMatchTimeout = errors.New("pattern match timed out")
)
