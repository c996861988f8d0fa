package autocomplete

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorHex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#00ff80", Color{R: 0, G: 255, B: 128}.Hex())
	assert.Equal(t, "#000000", Color{}.Hex())
}

func TestColorStyle(t *testing.T) {
	t.Parallel()

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)

	out := Color{R: 255, G: 0, B: 0, Bold: true}.Style(r).Render("x")
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "x")

	r.SetColorProfile(termenv.Ascii)
	assert.Equal(t, "x", Color{R: 255, Bold: true}.Style(r).Render("x"))
}

func TestThemeByName(t *testing.T) {
	t.Parallel()

	for _, theme := range themes {
		got, err := ThemeByName(theme.Name)
		require.NoError(t, err)
		assert.Same(t, theme, got)
	}

	got, err := ThemeByName("DRACULA")
	require.NoError(t, err)
	assert.Same(t, ThemeDracula, got)

	_, err = ThemeByName("neon")
	assert.Error(t, err)
}
