package autocomplete

// Mode selects how a prompt is answered.
type Mode int

const (
	// ListSelect answers with the highlighted candidate.
	ListSelect Mode = iota
	// SuggestOnly answers with the typed text; candidates are only
	// suggestions that Tab copies into the line.
	SuggestOnly
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ListSelect:
		return "list-select"
	case SuggestOnly:
		return "suggest-only"
	default:
		return "unknown"
	}
}

// Status is the prompt lifecycle status.
type Status int

const (
	// Active accepts input.
	Active Status = iota
	// Answered is final; further input is ignored.
	Answered
)

// Direction is a navigation direction in the candidate list.
type Direction int

const (
	// Up moves the highlight to the previous candidate.
	Up Direction = iota
	// Down moves the highlight to the next candidate.
	Down
)

// SelectionState holds the displayed candidates and the highlight.
type SelectionState struct {
	Candidates  []Candidate
	Highlighted int
	Mode        Mode
	Status      Status

	submitting bool // A Filter is running; input is ignored until it returns
}

// setCandidates replaces the list and resets the highlight to the top.
func (s *SelectionState) setCandidates(candidates []Candidate) {
	s.Candidates = candidates
	s.Highlighted = 0
}

// navigate moves the highlight by one with wraparound. An empty list is left
// untouched.
func (s *SelectionState) navigate(d Direction) {
	n := len(s.Candidates)
	if n == 0 {
		return
	}
	switch d {
	case Up:
		s.Highlighted = (s.Highlighted - 1 + n) % n
	case Down:
		s.Highlighted = (s.Highlighted + 1) % n
	}
}

// highlighted returns the highlighted candidate, if the highlight addresses
// a real one.
func (s *SelectionState) highlighted() (Candidate, bool) {
	if s.Highlighted < 0 || s.Highlighted >= len(s.Candidates) {
		return Candidate{}, false
	}
	return s.Candidates[s.Highlighted], true
}

// acceptsInput reports whether keypresses should still be interpreted.
func (s *SelectionState) acceptsInput() bool {
	return s.Status == Active && !s.submitting
}
