// Package main provides a shell-like file explorer example using the autocomplete library.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/nao1215/autocomplete"
)

const maxCatBytes = 4096

var errExit = errors.New("exit")

var commands = []struct {
	name        string
	description string
	run         func(args []string) error
}{
	{"ls", "list directory contents", listDir},
	{"cd", "change directory", changeDir},
	{"cat", "show file contents", showFile},
	{"pwd", "print working directory", printDir},
	{"exit", "exit shell", func([]string) error { return errExit }},
}

func main() {
	fmt.Println("Shell-like File Explorer Example")
	fmt.Println("================================")
	fmt.Println("Commands:")
	fmt.Println("  ls [path]    - List directory contents")
	fmt.Println("  cd [path]    - Change directory")
	fmt.Println("  cat [file]   - Show file contents")
	fmt.Println("  pwd          - Show current directory")
	fmt.Println("  exit         - Exit")
	fmt.Println()
	fmt.Println("Use Tab to complete the word under the cursor!")
	fmt.Println("Use ↑/↓ arrow keys to navigate suggestions")
	fmt.Println()

	source := createShellSource()

	for {
		// Update prompt with current directory
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "unknown"
		}

		result, err := run(fmt.Sprintf("shell:%s>", filepath.Base(cwd)), source)
		if err != nil {
			if !errors.Is(err, autocomplete.ErrInterrupted) {
				fmt.Printf("Error: %v\n", err)
			}
			break
		}

		if err := execute(result); errors.Is(err, errExit) {
			fmt.Println("Goodbye!")
			break
		} else if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func run(message string, source autocomplete.Source) (string, error) {
	p, err := autocomplete.New("command", message,
		autocomplete.WithSource(source),
		autocomplete.WithSuggestOnly(),
		autocomplete.WithDebounce(100*time.Millisecond),
	)
	if err != nil {
		return "", err
	}
	defer p.Close()

	answer, err := p.Run()
	if err != nil {
		return "", err
	}
	return fmt.Sprint(answer.Value), nil
}

// createShellSource completes command names for the first word and paths
// for every later word.
func createShellSource() autocomplete.Source {
	pathSource := autocomplete.NewPathSource(`\s`)

	return func(ctx context.Context, answers autocomplete.Answers, input string, sc autocomplete.SourceContext) ([]autocomplete.Candidate, error) {
		token := autocomplete.SliceInput(input, autocomplete.WithCursor(sc.Cursor))
		if before := string([]rune(input)[:token.Left]); strings.TrimSpace(before) != "" {
			return pathSource(ctx, answers, input, sc)
		}

		var candidates []autocomplete.Candidate
		for _, c := range commands {
			if !strings.HasPrefix(c.name, token.Matching) {
				continue
			}
			text := c.name + " "
			candidates = append(candidates, autocomplete.Candidate{
				Name:   fmt.Sprintf("%-5s %s", c.name, c.description),
				Value:  token.Replace(input, text),
				Cursor: autocomplete.CursorAt(token.Left + len(text)),
			})
		}
		return candidates, nil
	}
}

// execute runs one line. Quoted words keep their spaces.
func execute(line string) error {
	words, err := shlex.Split(line)
	if err != nil || len(words) == 0 {
		return err
	}
	for _, c := range commands {
		if c.name == words[0] {
			return c.run(words[1:])
		}
	}
	return fmt.Errorf("unknown command: %s", words[0])
}

func firstArg(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}

func listDir(args []string) error {
	entries, err := os.ReadDir(firstArg(args, "."))
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			fmt.Printf("  %s/\n", e.Name())
		} else {
			fmt.Printf("  %s\n", e.Name())
		}
	}
	return nil
}

func changeDir(args []string) error {
	home, _ := os.UserHomeDir()
	return os.Chdir(firstArg(args, home))
}

func printDir([]string) error {
	cwd, err := os.Getwd()
	if err == nil {
		fmt.Println(cwd)
	}
	return err
}

func showFile(args []string) error {
	if len(args) == 0 {
		return errors.New("cat: missing file operand")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(os.Stdout, io.LimitReader(f, maxCatBytes))
	fmt.Println()
	return err
}
