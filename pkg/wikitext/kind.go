package wikitext

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies the markup construct a span covers.
type Kind uint8

// Span kinds. The order is used as a tie breaker when sorting ancestors.
const (
	KindDocument Kind = iota
	KindComment
	KindExtensionTag
	KindWikiLink
	KindParameter
	KindParserFunction
	KindTemplate
	KindArgument

	kindCount int = iota
)

// parsedKinds are the kinds discovered by the parser, in registry order.
var parsedKinds = [...]Kind{
	KindComment,
	KindExtensionTag,
	KindWikiLink,
	KindParameter,
	KindParserFunction,
	KindTemplate,
}

var kindNames = [kindCount]string{
	KindDocument:       "Document",
	KindComment:        "Comment",
	KindExtensionTag:   "ExtensionTag",
	KindWikiLink:       "WikiLink",
	KindParameter:      "Parameter",
	KindParserFunction: "ParserFunction",
	KindTemplate:       "Template",
	KindArgument:       "Argument",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < kindCount {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind looks a kind up by its name, case-insensitively.
func ParseKind(name string) (Kind, bool) {
	for idx, kindName := range kindNames {
		if strings.EqualFold(kindName, name) {
			return Kind(idx), true
		}
	}
	return 0, false
}

// Kinds returns all kinds that can be queried on a document.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for idx := range kindCount {
		kinds = append(kinds, Kind(idx))
	}
	return kinds
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name, case-insensitively.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown span kind %q", text)
	}
	*k = kind
	return nil
}
