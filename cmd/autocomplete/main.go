// Package main is the entry point for the autocomplete CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nao1215/autocomplete"
	"github.com/nao1215/autocomplete/internal/cmd"
)

// Exit codes.
//
//	0 = answer printed on stdout
//	1 = cancelled by user
//	2 = error
const (
	exitSuccess   = 0
	exitCancelled = 1
	exitError     = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cmd.Execute()
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, autocomplete.ErrInterrupted):
		return exitCancelled
	default:
		fmt.Fprintf(os.Stderr, "autocomplete: %v\n", err)
		return exitError
	}
}
