// Package main demonstrates chained autocomplete prompts backed by a slow,
// fuzzy-ranked source.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/nao1215/autocomplete"
)

var states = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
	"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
	"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
	"Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
	"New Hampshire", "New Jersey", "New Mexico", "New York",
	"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
	"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
	"West Virginia", "Wisconsin", "Wyoming",
}

// searchStates ranks the states with fuzzy matching after a random delay,
// long enough now and then to show the searching message.
func searchStates(ctx context.Context, answers autocomplete.Answers, input string, _ autocomplete.SourceContext) ([]autocomplete.Candidate, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(time.Duration(rand.IntN(700)) * time.Millisecond):
	}

	from, _ := answers["from"].(string)

	if input == "" {
		var all []autocomplete.Candidate
		all = append(all, autocomplete.Separator("-- all states --"))
		for _, s := range states {
			if s != from {
				all = append(all, autocomplete.NewCandidate(s))
			}
		}
		return all, nil
	}

	var candidates []autocomplete.Candidate
	for _, m := range fuzzy.Find(input, states) {
		if m.Str == from {
			continue
		}
		candidates = append(candidates, autocomplete.NewCandidate(m.Str))
	}
	return candidates, nil
}

func ask(ctx context.Context, name, message string, answers autocomplete.Answers) (autocomplete.Answer, error) {
	p, err := autocomplete.New(name, message,
		autocomplete.WithSource(searchStates),
		autocomplete.WithAnswers(answers),
		autocomplete.WithColorScheme(autocomplete.ThemeDracula),
		autocomplete.WithPageSize(6),
	)
	if err != nil {
		return autocomplete.Answer{}, err
	}
	defer p.Close()

	return p.RunWithContext(ctx)
}

func main() {
	fmt.Println("Travel Planner")
	fmt.Println("==============")
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	answers := autocomplete.Answers{}
	if _, err := ask(ctx, "from", "Select a state to travel from", answers); err != nil {
		exit(err)
	}
	if _, err := ask(ctx, "to", "Select a state to travel to", answers); err != nil {
		exit(err)
	}

	fmt.Printf("Trip: %v -> %v\n", answers["from"], answers["to"])
}

func exit(err error) {
	switch {
	case errors.Is(err, autocomplete.ErrInterrupted):
		fmt.Println("Cancelled")
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Println("Timed out")
	default:
		log.Fatal(err)
	}
}
