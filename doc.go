// Package autocomplete provides an interactive search-as-you-type prompt for
// terminal applications.
//
// The user types free text while candidates produced by an asynchronous
// Source are listed below the input line. Candidates can be navigated with
// the arrow keys and submitted with Enter, or, in suggest-only mode, copied
// into the line with Tab while the typed text stays the answer.
//
// Key Features:
//
//   - Debounced, asynchronous searches; results of superseded searches are discarded
//   - A delayed "Searching..." indicator that only appears for slow searches
//   - Suggest-only mode with validation and a default value
//   - Cursor-aware token slicing (SliceInput) for completing one word of a longer line
//   - Filters that transform the accepted value
//   - Configurable key bindings and color schemes
//   - Context support for timeouts and cancellation
//
// Quick Start:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//		"strings"
//
//		"github.com/nao1215/autocomplete"
//	)
//
//	func main() {
//		fruits := []string{"apple", "banana", "cherry"}
//		source := func(_ context.Context, _ autocomplete.Answers, input string, _ autocomplete.SourceContext) ([]autocomplete.Candidate, error) {
//			var out []autocomplete.Candidate
//			for _, f := range fruits {
//				if strings.Contains(f, input) {
//					out = append(out, autocomplete.NewCandidate(f))
//				}
//			}
//			return out, nil
//		}
//
//		p, err := autocomplete.New("fruit", "Pick a fruit", autocomplete.WithSource(source))
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer p.Close()
//
//		answer, err := p.Run()
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("You picked: %v\n", answer.Value)
//	}
//
// Completing a token inside a line:
//
//	source := func(_ context.Context, _ autocomplete.Answers, input string, sc autocomplete.SourceContext) ([]autocomplete.Candidate, error) {
//		token := autocomplete.SliceInput(input,
//			autocomplete.WithCursor(sc.Cursor),
//			autocomplete.WithDelimiters(`\s,`),
//		)
//		if !strings.HasPrefix(token.Matching, "#") {
//			return nil, nil
//		}
//		var out []autocomplete.Candidate
//		for _, issue := range []string{"#123", "#222"} {
//			out = append(out, autocomplete.Candidate{
//				Name:   issue,
//				Value:  token.Replace(input, issue),
//				Cursor: autocomplete.CursorAt(token.Left + len(issue)),
//			})
//		}
//		return out, nil
//	}
//
//	p, err := autocomplete.New("commit", "Commit message",
//		autocomplete.WithSource(source),
//		autocomplete.WithSuggestOnly(),
//	)
//
// Key Bindings:
//
//   - Up / Ctrl+P, Down / Ctrl+N: move the highlight (wraps around)
//   - Tab: autocomplete the highlighted candidate (suggest-only)
//   - Enter: submit
//   - Ctrl+C / Esc: cancel with ErrInterrupted
//
// Everything else is handled by the line editor. Bindings can be replaced
// with WithKeyMap.
//
// Error Handling:
//
// New returns a *ParamError (matching ErrMissingParam) when the name, message
// or Source is missing. Source failures and Filter failures are shown inline
// and the prompt stays interactive. RunWithContext returns ErrInterrupted on
// cancel keys and the context error when the context ends.
package autocomplete
