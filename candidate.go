package autocomplete

import (
	"context"
	"fmt"
	"maps"

	"github.com/samber/lo"
)

// Candidate is a single entry produced by a Source.
//
// Name is what the list shows, Value is the opaque payload returned when the
// candidate is accepted, and Short (optional) is echoed after the prompt has
// been answered. Cursor overrides where the caret lands after the candidate
// is tab-completed into the line. Separator entries are display-only markers:
// they are removed before the list is stored, so they are never counted or
// selectable.
type Candidate struct {
	Name      string // Text shown in the candidate list
	Value     any    // Payload returned on acceptance
	Short     string // Text echoed after the prompt is answered (optional)
	Cursor    *int   // Caret position after tab-completion (nil = end of value)
	Separator bool   // Display-only marker, never selectable
}

// NewCandidate returns a candidate whose name and value are the same string.
func NewCandidate(s string) Candidate {
	return Candidate{Name: s, Value: s}
}

// Separator returns a separator marker. Sources may return it freely; the
// prompt drops it before indexing the list.
func Separator(label string) Candidate {
	return Candidate{Name: label, Separator: true}
}

// CursorAt is a helper for filling Candidate.Cursor.
func CursorAt(pos int) *int {
	return &pos
}

// text returns the value as it should be inserted into the line on tab-completion.
func (c Candidate) text() string {
	switch v := c.Value.(type) {
	case nil:
		return c.Name
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// stripSeparators removes separator markers so list length and indexing only
// ever see selectable candidates.
func stripSeparators(candidates []Candidate) []Candidate {
	return lo.Reject(candidates, func(c Candidate, _ int) bool {
		return c.Separator
	})
}

// Answer is the final result of a prompt.
type Answer struct {
	Value any    // Accepted value, after the Filter transform
	Name  string // Display name of the accepted candidate (or the typed text)
	Short string // Short display of the accepted candidate (optional)
}

// String returns the text echoed after the prompt is answered.
func (a Answer) String() string {
	if a.Short != "" {
		return a.Short
	}
	if a.Name != "" {
		return a.Name
	}
	if a.Value == nil {
		return ""
	}
	return fmt.Sprint(a.Value)
}

// Answers holds answers given to earlier prompts, keyed by prompt name.
type Answers map[string]any

// clone returns a shallow copy that can be handed to a Source goroutine.
func (a Answers) clone() Answers {
	return maps.Clone(a)
}

// SourceContext carries auxiliary information about the line being edited.
type SourceContext struct {
	Cursor int // Caret offset in runes
}

// Source produces candidates for the current input.
//
// It is called from a background goroutine and may block; results arriving
// after a newer search has been issued are discarded. The returned error is
// shown inline in place of the candidate list.
type Source func(ctx context.Context, answers Answers, input string, sc SourceContext) ([]Candidate, error)

// Validator checks the submitted text in suggest-only mode. Returning nil
// accepts the value; a non-nil error rejects it and its message is shown.
type Validator func(value string) error

// Filter transforms the accepted value before it becomes the answer.
type Filter func(ctx context.Context, value any) (any, error)
