package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit the node.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes two edits whose ranges overlap.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// Validate checks that every edit lies within a node of the given length.
func Validate(edits []TextEdit, length int) error {
	for _, edit := range edits {
		switch {
		case edit.Start < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.End < edit.Start:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.End > length:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds length %d", edit.End, length),
			}
		}
	}
	return nil
}

// Sort orders edits by start, then end. Insertions at the same offset keep
// the order they were added in.
func Sort(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
	})
}

// DetectConflicts returns a ConflictError for the first pair of overlapping
// edits in a sorted slice.
func DetectConflicts(edits []TextEdit) error {
	for idx := 1; idx < len(edits); idx++ {
		if edits[idx].Start < edits[idx-1].End {
			return &ConflictError{First: edits[idx-1], Second: edits[idx]}
		}
	}
	return nil
}

// Prepare validates a copy of edits, sorts it and checks it for conflicts.
func Prepare(edits []TextEdit, length int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	if err := Validate(edits, length); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	Sort(sorted)
	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}
