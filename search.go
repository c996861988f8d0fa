package autocomplete

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// SearchState tracks the asynchronous search lifecycle of one prompt.
type SearchState struct {
	// Generation is incremented every time a search is issued. A result is
	// applied only when it carries the current generation.
	Generation uint64
	// Searching is set once the searching indicator is showing.
	Searching bool
	// HasSearchedOnce is set after the first search has been issued.
	HasSearchedOnce bool

	debounceID uint64 // Latest debounce timer; older ticks are ignored
	resolved   uint64 // Latest generation whose result has been applied
}

// debounceMsg fires once the quiet window after a text edit has elapsed.
type debounceMsg struct {
	id    uint64 // Must match SearchState.debounceID to issue a search
	term  string
	caret int
}

// searchDoneMsg carries a Source result back into the update loop.
type searchDoneMsg struct {
	generation uint64
	candidates []Candidate
	err        error
}

// searchingMsg fires when the searching indicator delay for a generation has
// elapsed.
type searchingMsg struct {
	generation uint64
}

// searchController schedules and resolves searches. It holds only
// configuration; all mutable state lives in SearchState and SelectionState.
type searchController struct {
	source         Source
	answers        Answers
	debounce       time.Duration
	indicatorDelay time.Duration
	indicator      bool // False disables the searching indicator entirely
	logger         *zap.Logger
}

// schedule arms a debounce timer for term. Only the most recent timer issues
// a search, so a burst of edits collapses into one Source call with the last
// term.
func (c searchController) schedule(s *SearchState, term string, caret int) tea.Cmd {
	s.debounceID++
	id := s.debounceID
	return tea.Tick(c.debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id, term: term, caret: caret}
	})
}

// debounced issues the search carried by msg when its timer is still current.
func (c searchController) debounced(ctx context.Context, s *SearchState, msg debounceMsg) tea.Cmd {
	if msg.id != s.debounceID {
		return nil
	}
	return c.issue(ctx, s, msg.term, msg.caret)
}

// issue starts a search immediately. The first search of a prompt never arms
// the searching indicator.
func (c searchController) issue(ctx context.Context, s *SearchState, term string, caret int) tea.Cmd {
	s.Generation++
	generation := s.Generation
	first := !s.HasSearchedOnce
	s.HasSearchedOnce = true

	c.logger.Debug("issuing search",
		zap.Uint64("generation", generation),
		zap.String("term", term),
		zap.Int("caret", caret))

	run := c.run(ctx, generation, term, caret)
	if first || !c.indicator {
		return run
	}
	return tea.Batch(run, tea.Tick(c.indicatorDelay, func(time.Time) tea.Msg {
		return searchingMsg{generation: generation}
	}))
}

// run invokes the Source off the update loop. It captures only immutable
// values, and a panicking Source resolves as a failure.
func (c searchController) run(ctx context.Context, generation uint64, term string, caret int) tea.Cmd {
	source := c.source
	answers := c.answers.clone()
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = searchDoneMsg{
					generation: generation,
					err:        fmt.Errorf("source panicked: %v", r),
				}
			}
		}()
		candidates, err := source(ctx, answers, term, SourceContext{Cursor: caret})
		return searchDoneMsg{generation: generation, candidates: candidates, err: err}
	}
}

// showIndicator applies a searchingMsg. It reports whether the indicator is
// now showing; a tick for a superseded or already resolved generation is a
// no-op.
func (c searchController) showIndicator(s *SearchState, sel *SelectionState, msg searchingMsg) bool {
	if msg.generation != s.Generation || s.resolved == msg.generation {
		return false
	}
	c.logger.Debug("showing searching indicator", zap.Uint64("generation", msg.generation))
	s.Searching = true
	sel.setCandidates(nil)
	return true
}

// resolve applies a searchDoneMsg. It reports whether the result was
// current, and returns the Source error when it failed.
func (c searchController) resolve(s *SearchState, sel *SelectionState, msg searchDoneMsg) (bool, error) {
	if msg.generation != s.Generation {
		c.logger.Debug("stale search result, discarding",
			zap.Uint64("startGeneration", msg.generation),
			zap.Uint64("currentGeneration", s.Generation))
		return false, nil
	}

	s.resolved = msg.generation
	s.Searching = false

	if msg.err != nil {
		c.logger.Error("source failed",
			zap.Uint64("generation", msg.generation),
			zap.Error(msg.err))
		sel.setCandidates(nil)
		return true, msg.err
	}

	sel.setCandidates(stripSeparators(msg.candidates))
	return true, nil
}
