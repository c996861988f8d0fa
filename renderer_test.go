package autocomplete

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewFirstRenderHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{
			name: "list select",
			want: "? Pick one (Use arrow keys or type to search)",
		},
		{
			name: "suggest only",
			opts: []Option{WithSuggestOnly()},
			want: "? Pick one (Use arrow keys or type to search, tab to autocomplete)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := start(t, newTestModel(t, staticSource("a"), tt.opts...))
			assert.True(t, strings.HasPrefix(m.View(), tt.want), "got %q", m.View())

			m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
			assert.NotContains(t, m.View(), "Use arrow keys")
		})
	}
}

func TestViewCandidateList(t *testing.T) {
	t.Parallel()

	m := start(t, newTestModel(t, staticSource("alpha", "beta", "gamma")))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "  alpha", lines[1])
	assert.Equal(t, "❯ beta", lines[2])
	assert.Equal(t, "  gamma", lines[3])
}

func TestViewPagination(t *testing.T) {
	t.Parallel()

	var all []string
	for i := range 10 {
		all = append(all, fmt.Sprintf("item%02d", i))
	}
	m := start(t, newTestModel(t, staticSource(all...), WithPageSize(3)))

	view := m.View()
	assert.Contains(t, view, "❯ item00")
	assert.Contains(t, view, "item02")
	assert.NotContains(t, view, "item03")
	assert.Contains(t, view, "••••", "four pages are shown as dots")

	for range 4 {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	view = m.View()
	assert.Contains(t, view, "❯ item04")
	assert.Contains(t, view, "item03")
	assert.Contains(t, view, "item05")
	assert.NotContains(t, view, "item02")

	// Wrapping up from the top lands on the last page.
	for range 5 {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, 9, m.sel.Highlighted)
	assert.Contains(t, m.View(), "❯ item09")
}

func TestViewSinglePageHasNoDots(t *testing.T) {
	t.Parallel()

	m := start(t, newTestModel(t, staticSource("a", "b")))
	assert.NotContains(t, m.View(), "•")
}

func TestViewTruncatesLongNames(t *testing.T) {
	t.Parallel()

	m := start(t, newTestModel(t, staticSource("abcdefghijklmnop")))
	m, _ = update(m, tea.WindowSizeMsg{Width: 10, Height: 5})

	assert.Contains(t, m.View(), "❯ abcdefg…")
}

func TestViewMessages(t *testing.T) {
	t.Parallel()

	t.Run("no result message", func(t *testing.T) {
		t.Parallel()

		m := start(t, newTestModel(t, staticSource()))
		assert.Contains(t, m.View(), DefaultNoResultMessage)
	})

	t.Run("custom no result message", func(t *testing.T) {
		t.Parallel()

		m := start(t, newTestModel(t, staticSource(), WithNoResultMessage("nothing here")))
		assert.Contains(t, m.View(), "nothing here")
	})

	t.Run("empty no result message shows nothing", func(t *testing.T) {
		t.Parallel()

		m := start(t, newTestModel(t, staticSource(), WithNoResultMessage("")))
		assert.NotContains(t, m.View(), "\n")
	})

	t.Run("nothing before the first result", func(t *testing.T) {
		t.Parallel()

		m := newTestModel(t, staticSource())
		assert.NotContains(t, m.View(), DefaultNoResultMessage)
	})

	t.Run("disabled searching message never shows the indicator", func(t *testing.T) {
		t.Parallel()

		m := start(t, newTestModel(t, staticSource("a"), WithSearchingMessage("")))
		m, _ = update(m, keyRunes("x"))
		m, cmd := update(m, debounceMsg{id: m.search.debounceID, term: "x", caret: 1})

		_, ok := runCmd(cmd).(searchDoneMsg)
		assert.True(t, ok)
		assert.False(t, m.search.Searching)
	})
}

func TestViewAnswered(t *testing.T) {
	t.Parallel()

	source := func(_ context.Context, _ Answers, _ string, _ SourceContext) ([]Candidate, error) {
		return []Candidate{{Name: "United States", Value: "US", Short: "US"}}, nil
	}
	m := start(t, newTestModel(t, source))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "? Pick one US\n", m.View())
}
