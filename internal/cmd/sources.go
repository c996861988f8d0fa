package cmd

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/nao1215/autocomplete"
)

// queryPlaceholder is replaced by the current search term in --command.
const queryPlaceholder = "{q}"

// readLines reads non-empty lines from r, dropping duplicates while keeping
// the first occurrence.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return lo.Uniq(lines), nil
}

// rankLines returns the lines matching term, best fuzzy match first. An empty
// term keeps the input order. limit <= 0 means no limit.
func rankLines(lines []string, term string, limit int) []string {
	var ranked []string
	if term == "" {
		ranked = lines
	} else {
		matches := fuzzy.Find(term, lines)
		ranked = lo.Map(matches, func(m fuzzy.Match, _ int) string { return m.Str })
	}
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// lineSource searches a fixed set of lines with fuzzy matching.
func lineSource(lines []string, limit int) autocomplete.Source {
	return func(_ context.Context, _ autocomplete.Answers, input string, _ autocomplete.SourceContext) ([]autocomplete.Candidate, error) {
		return toCandidates(rankLines(lines, input, limit)), nil
	}
}

// buildCommand splits template into argv and substitutes term for every
// placeholder. Without a placeholder the term is appended as the last
// argument.
func buildCommand(template, term string) ([]string, error) {
	argv, err := shlex.Split(template)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command %q: %w", template, err)
	}
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	substituted := false
	for i, arg := range argv {
		if strings.Contains(arg, queryPlaceholder) {
			argv[i] = strings.ReplaceAll(arg, queryPlaceholder, term)
			substituted = true
		}
	}
	if !substituted {
		argv = append(argv, term)
	}
	return argv, nil
}

// commandSource runs template for every search and offers each output line.
func commandSource(template string, limit int) autocomplete.Source {
	return func(ctx context.Context, _ autocomplete.Answers, input string, _ autocomplete.SourceContext) ([]autocomplete.Candidate, error) {
		argv, err := buildCommand(template, input)
		if err != nil {
			return nil, err
		}

		out, err := exec.CommandContext(ctx, argv[0], argv[1:]...).Output()
		if err != nil {
			return nil, fmt.Errorf("failed to run %s: %w", argv[0], err)
		}

		lines, err := readLines(strings.NewReader(string(out)))
		if err != nil {
			return nil, err
		}
		if limit > 0 && len(lines) > limit {
			lines = lines[:limit]
		}
		return toCandidates(lines), nil
	}
}

// sqliteSource runs query with a single LIKE pattern argument built from the
// search term. The first column is displayed; an optional second column is
// used as the answer value.
func sqliteSource(db *sql.DB, query string, limit int) autocomplete.Source {
	return func(ctx context.Context, _ autocomplete.Answers, input string, _ autocomplete.SourceContext) ([]autocomplete.Candidate, error) {
		rows, err := db.QueryContext(ctx, query, "%"+input+"%")
		if err != nil {
			return nil, fmt.Errorf("failed to query database: %w", err)
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read columns: %w", err)
		}

		var candidates []autocomplete.Candidate
		for rows.Next() {
			var name, value sql.NullString
			dest := []any{&name}
			if len(columns) > 1 {
				dest = append(dest, &value)
			}
			for len(dest) < len(columns) {
				dest = append(dest, new(any))
			}
			if err := rows.Scan(dest...); err != nil {
				return nil, fmt.Errorf("failed to scan row: %w", err)
			}

			c := autocomplete.NewCandidate(name.String)
			if value.Valid {
				c.Value = value.String
			}
			candidates = append(candidates, c)
			if limit > 0 && len(candidates) >= limit {
				break
			}
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate rows: %w", err)
		}
		return candidates, nil
	}
}

// tokenSource completes only the token under the caret. The wrapped source is
// queried with that token; every candidate's value becomes the whole line
// with the token replaced, and the caret lands after the replacement.
func tokenSource(source autocomplete.Source, delimiters string) autocomplete.Source {
	return func(ctx context.Context, answers autocomplete.Answers, input string, sc autocomplete.SourceContext) ([]autocomplete.Candidate, error) {
		token := autocomplete.SliceInput(input,
			autocomplete.WithCursor(sc.Cursor),
			autocomplete.WithDelimiters(delimiters),
		)

		found, err := source(ctx, answers, token.Matching, autocomplete.SourceContext{Cursor: len([]rune(token.Matching))})
		if err != nil {
			return nil, err
		}

		return lo.Map(found, func(c autocomplete.Candidate, _ int) autocomplete.Candidate {
			text := fmt.Sprint(lo.Ternary(c.Value == nil, any(c.Name), c.Value))
			return autocomplete.Candidate{
				Name:      c.Name,
				Value:     token.Replace(input, text),
				Short:     c.Short,
				Cursor:    autocomplete.CursorAt(token.Left + len([]rune(text))),
				Separator: c.Separator,
			}
		}), nil
	}
}

func toCandidates(lines []string) []autocomplete.Candidate {
	return lo.Map(lines, func(line string, _ int) autocomplete.Candidate {
		return autocomplete.NewCandidate(line)
	})
}
