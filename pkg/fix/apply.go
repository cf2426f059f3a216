package fix

import (
	"fmt"

	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// Apply applies edits through node and returns how many were applied.
// Edits are applied from the last to the first so that the offsets of the
// remaining ones stay valid. Spans covered by an edit die as with any
// Replace; the node itself survives.
func Apply(node *wikitext.Node, edits []TextEdit) (int, error) {
	length, err := node.Len()
	if err != nil {
		return 0, err
	}
	prepared, err := Prepare(edits, length)
	if err != nil {
		return 0, err
	}

	for idx := len(prepared) - 1; idx >= 0; idx-- {
		edit := prepared[idx]
		if err := node.Replace(edit.Start, edit.End, edit.NewText); err != nil {
			return len(prepared) - 1 - idx, fmt.Errorf("applying edit [%d:%d]: %w", edit.Start, edit.End, err)
		}
	}
	return len(prepared), nil
}
