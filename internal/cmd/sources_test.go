package cmd

import (
	"context"
	"database/sql"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/autocomplete"
)

func names(candidates []autocomplete.Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Name
	}
	return out
}

func TestReadLines(t *testing.T) {
	t.Parallel()

	lines, err := readLines(strings.NewReader("main\r\n\nfeature/x\n  \nmain\nfix\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "feature/x", "fix"}, lines)
}

func TestRankLines(t *testing.T) {
	t.Parallel()

	lines := []string{"apple", "banana", "blueberry", "cherry"}

	tests := []struct {
		name  string
		term  string
		limit int
		want  []string
	}{
		{name: "empty term keeps order", term: "", want: lines},
		{name: "empty term with limit", term: "", limit: 2, want: []string{"apple", "banana"}},
		{name: "fuzzy subsequence", term: "bry", want: []string{"blueberry"}},
		{name: "no match", term: "zzz", want: []string{}},
		{name: "limit after ranking", term: "ch", limit: 1, want: []string{"cherry"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rankLines(lines, tt.term, tt.limit)
			assert.Len(t, got, len(tt.want))
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}

func TestLineSource(t *testing.T) {
	t.Parallel()

	source := lineSource([]string{"alpha", "beta", "gamma"}, 0)
	got, err := source(context.Background(), nil, "ga", autocomplete.SourceContext{})
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma"}, names(got))
	assert.Equal(t, "gamma", got[0].Value)
}

func TestBuildCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		term     string
		want     []string
		wantErr  bool
	}{
		{name: "placeholder", template: "grep -i {q} notes.txt", term: "todo", want: []string{"grep", "-i", "todo", "notes.txt"}},
		{name: "placeholder inside argument", template: "find . -name '*{q}*'", term: "go", want: []string{"find", ".", "-name", "*go*"}},
		{name: "appended without placeholder", template: "git branch --list", term: "fe", want: []string{"git", "branch", "--list", "fe"}},
		{name: "query with spaces stays one argument", template: "grep {q} f", term: "a b", want: []string{"grep", "a b", "f"}},
		{name: "empty", template: "   ", wantErr: true},
		{name: "unterminated quote", template: `grep "oops`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := buildCommand(tt.template, tt.term)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandSource(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("printf"); err != nil {
		t.Skip("printf not available")
	}

	source := commandSource(`printf '%s\n' {q}-1 {q}-2 {q}-1`, 0)
	got, err := source(context.Background(), nil, "x", autocomplete.SourceContext{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x-1", "x-2"}, names(got))

	limited := commandSource(`printf '%s\n' a b c`, 2)
	got, err = limited(context.Background(), nil, "", autocomplete.SourceContext{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCommandSourceFailure(t *testing.T) {
	t.Parallel()

	source := commandSource("definitely-not-a-real-command-xyz", 0)
	_, err := source(context.Background(), nil, "q", autocomplete.SourceContext{})
	assert.ErrorContains(t, err, "failed to run definitely-not-a-real-command-xyz")
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE users (id TEXT, name TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (id, name) VALUES ('u1', 'Alice'), ('u2', 'Bob'), ('u3', 'Alicia')`)
	require.NoError(t, err)
	return db
}

func TestSQLiteSource(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)

	t.Run("name only", func(t *testing.T) {
		source := sqliteSource(db, "SELECT name FROM users WHERE name LIKE ? ORDER BY name", 0)
		got, err := source(context.Background(), nil, "ali", autocomplete.SourceContext{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "Alicia"}, names(got))
		assert.Equal(t, "Alice", got[0].Value)
	})

	t.Run("name and value", func(t *testing.T) {
		source := sqliteSource(db, "SELECT name, id FROM users WHERE name LIKE ? ORDER BY name", 0)
		got, err := source(context.Background(), nil, "bo", autocomplete.SourceContext{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Bob", got[0].Name)
		assert.Equal(t, "u2", got[0].Value)
	})

	t.Run("extra columns and limit", func(t *testing.T) {
		source := sqliteSource(db, "SELECT name, id, 1 FROM users WHERE name LIKE ? ORDER BY name", 1)
		got, err := source(context.Background(), nil, "", autocomplete.SourceContext{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice"}, names(got))
	})

	t.Run("bad query", func(t *testing.T) {
		source := sqliteSource(db, "SELECT nope FROM missing WHERE x LIKE ?", 0)
		_, err := source(context.Background(), nil, "", autocomplete.SourceContext{})
		assert.ErrorContains(t, err, "failed to query database")
	})
}

func TestTokenSource(t *testing.T) {
	t.Parallel()

	var gotTerm string
	base := func(_ context.Context, _ autocomplete.Answers, input string, _ autocomplete.SourceContext) ([]autocomplete.Candidate, error) {
		gotTerm = input
		return []autocomplete.Candidate{
			autocomplete.NewCandidate("README.md"),
			{Name: "docs", Value: "docs/"},
		}, nil
	}

	source := tokenSource(base, `\s,`)
	got, err := source(context.Background(), nil, "cat RE,x", autocomplete.SourceContext{Cursor: 6})
	require.NoError(t, err)

	assert.Equal(t, "RE", gotTerm)
	require.Len(t, got, 2)
	assert.Equal(t, "cat README.md,x", got[0].Value)
	assert.Equal(t, 13, *got[0].Cursor)
	assert.Equal(t, "docs", got[1].Name)
	assert.Equal(t, "cat docs/,x", got[1].Value)
	assert.Equal(t, 9, *got[1].Cursor)
}

func TestTokenSourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	base := func(context.Context, autocomplete.Answers, string, autocomplete.SourceContext) ([]autocomplete.Candidate, error) {
		return nil, boom
	}
	_, err := tokenSource(base, "")(context.Background(), nil, "a", autocomplete.SourceContext{Cursor: 1})
	assert.ErrorIs(t, err, boom)
}
