package fix_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/wikispan/pkg/fix"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edits   []fix.TextEdit
		length  int
		wantErr bool
	}{
		{name: "empty", length: 10},
		{name: "valid", edits: []fix.TextEdit{{Start: 0, End: 5}, {Start: 7, End: 10}}, length: 10},
		{name: "insert at end", edits: []fix.TextEdit{{Start: 10, End: 10, NewText: "x"}}, length: 10},
		{name: "negative start", edits: []fix.TextEdit{{Start: -1, End: 2}}, length: 10, wantErr: true},
		{name: "reversed", edits: []fix.TextEdit{{Start: 5, End: 2}}, length: 10, wantErr: true},
		{name: "past end", edits: []fix.TextEdit{{Start: 5, End: 11}}, length: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.Validate(tt.edits, tt.length)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var validation *fix.ValidationError
			if err != nil && !errors.As(err, &validation) {
				t.Errorf("Validate() error type = %T, want *ValidationError", err)
			}
		})
	}
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edits   []fix.TextEdit
		wantErr bool
	}{
		{name: "disjoint", edits: []fix.TextEdit{{Start: 0, End: 2}, {Start: 3, End: 5}}},
		{name: "touching", edits: []fix.TextEdit{{Start: 0, End: 2}, {Start: 2, End: 5}}},
		{name: "insert at boundary", edits: []fix.TextEdit{{Start: 0, End: 2}, {Start: 2, End: 2}}},
		{name: "overlap", edits: []fix.TextEdit{{Start: 0, End: 3}, {Start: 2, End: 5}}, wantErr: true},
		{name: "insert inside replacement", edits: []fix.TextEdit{{Start: 0, End: 3}, {Start: 1, End: 1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.DetectConflicts(tt.edits)
			if (err != nil) != tt.wantErr {
				t.Errorf("DetectConflicts() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		{Start: 5, End: 6, NewText: "c"},
		{Start: 1, End: 1, NewText: "a"},
		{Start: 1, End: 1, NewText: "b"},
		{Start: 0, End: 4, NewText: "z"},
	}
	fix.Sort(edits)

	want := []string{"z", "a", "b", "c"}
	for idx, edit := range edits {
		if edit.NewText != want[idx] {
			t.Errorf("edits[%d] = %q, want %q", idx, edit.NewText, want[idx])
		}
	}
}

func TestEditBuilder(t *testing.T) {
	t.Parallel()

	builder := fix.NewEditBuilder()
	builder.Insert(3, "x")
	builder.Delete(4, 6)
	builder.ReplaceRange(0, 1, "y")

	if builder.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", builder.Len())
	}
	if got := builder.Edits[1]; got != (fix.TextEdit{Start: 4, End: 6}) {
		t.Errorf("Edits[1] = %+v", got)
	}
}
