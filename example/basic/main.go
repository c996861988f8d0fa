// Package main demonstrates basic usage of the autocomplete library.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nao1215/autocomplete"
)

var fruits = []string{
	"Apple", "Apricot", "Banana", "Blueberry", "Cherry", "Grape",
	"Kiwi", "Lemon", "Mango", "Orange", "Peach", "Pear", "Plum",
}

// searchFruits offers every fruit containing the typed text.
func searchFruits(_ context.Context, _ autocomplete.Answers, input string, _ autocomplete.SourceContext) ([]autocomplete.Candidate, error) {
	var candidates []autocomplete.Candidate
	for _, f := range fruits {
		if strings.Contains(strings.ToLower(f), strings.ToLower(input)) {
			candidates = append(candidates, autocomplete.NewCandidate(f))
		}
	}
	return candidates, nil
}

func main() {
	fmt.Println("Basic Autocomplete Example")
	fmt.Println("Type to search, arrow keys to move, Enter to pick")
	fmt.Println("Press Ctrl+C or Esc to cancel")
	fmt.Println()

	p, err := autocomplete.New("fruit", "Pick a fruit",
		autocomplete.WithSource(searchFruits),
		autocomplete.WithPageSize(5),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	answer, err := p.Run()
	if err != nil {
		if errors.Is(err, autocomplete.ErrInterrupted) {
			fmt.Println("Goodbye!")
			return
		}
		log.Fatal(err)
	}

	fmt.Printf("You picked: %v\n", answer.Value)
}
