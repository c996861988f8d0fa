package autocomplete

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// NewPathSource creates a Source that completes the filesystem path under
// the caret. The token is found with SliceInput using delimiters, so a path
// can be completed in the middle of a longer line.
//
// Each candidate shows the completed path; its value is the whole line with
// the token replaced and its cursor sits right after the replacement, which
// makes it a natural fit for suggest-only prompts.
//
// Example:
//
//	p, err := autocomplete.New("file", "Open",
//		autocomplete.WithSource(autocomplete.NewPathSource(`\s`)),
//		autocomplete.WithSuggestOnly(),
//	)
func NewPathSource(delimiters string) Source {
	return func(ctx context.Context, _ Answers, input string, sc SourceContext) ([]Candidate, error) {
		token := SliceInput(input, WithCursor(sc.Cursor), WithDelimiters(delimiters))

		entries := completeFilePath(token.Matching)
		candidates := make([]Candidate, 0, len(entries))
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			candidates = append(candidates, Candidate{
				Name:   entry,
				Value:  token.Replace(input, entry),
				Cursor: CursorAt(token.Left + len([]rune(entry))),
			})
		}
		return candidates, nil
	}
}

// completeFilePath lists the directory entries that extend path. Directories
// get a trailing slash. An unreadable directory yields no entries.
func completeFilePath(path string) []string {
	// Handle empty path - start from current directory
	if path == "" {
		path = "."
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	// If path ends with separator, we're completing in that directory
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		dir = path
		base = ""
	}
	if path == "." {
		base = ""
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	bare := dir == "." && !strings.HasPrefix(path, "./")
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()

		// Skip hidden files unless explicitly requested
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if base != "" && !strings.HasPrefix(name, base) {
			continue
		}

		full := name
		if !bare {
			full = strings.TrimSuffix(dir, "/") + "/" + name
		}
		if entry.IsDir() {
			full += "/"
		}
		paths = append(paths, full)
	}

	return paths
}
