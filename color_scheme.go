package autocomplete

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColorScheme defines the color configuration for the prompt.
type ColorScheme struct {
	Name      string `json:"name"`
	Prefix    Color  `json:"prefix"`    // "?" marker before the question
	Message   Color  `json:"message"`   // Question text
	Input     Color  `json:"input"`     // Line being edited
	Hint      Color  `json:"hint"`      // Usage hint, default value and searching message
	Pointer   Color  `json:"pointer"`   // Glyph before the highlighted candidate
	Selected  Color  `json:"selected"`  // Highlighted candidate
	Candidate Color  `json:"candidate"` // Other candidates
	Answer    Color  `json:"answer"`    // Echo of the final answer
	Warning   Color  `json:"warning"`   // No-result message
	Error     Color  `json:"error"`     // Source, validation and filter errors
}

// Color represents an RGB color with optional formatting.
type Color struct {
	R    uint8 `json:"r"`
	G    uint8 `json:"g"`
	B    uint8 `json:"b"`
	Bold bool  `json:"bold"`
}

// ThemeDefault mirrors the classic inquirer palette: green marker, cyan
// selection and answer.
var ThemeDefault = &ColorScheme{
	Name:      "default",
	Prefix:    Color{R: 0, G: 205, B: 0, Bold: true},
	Message:   Color{R: 255, G: 255, B: 255, Bold: true},
	Input:     Color{R: 255, G: 255, B: 255},
	Hint:      Color{R: 128, G: 128, B: 128},
	Pointer:   Color{R: 0, G: 205, B: 205},
	Selected:  Color{R: 0, G: 205, B: 205},
	Candidate: Color{R: 200, G: 200, B: 200},
	Answer:    Color{R: 0, G: 205, B: 205},
	Warning:   Color{R: 205, G: 205, B: 0},
	Error:     Color{R: 205, G: 0, B: 0},
}

// ThemeDark is a dark theme with light blue accents
var ThemeDark = &ColorScheme{
	Name:      "dark",
	Prefix:    Color{R: 102, G: 217, B: 239, Bold: true},
	Message:   Color{R: 248, G: 248, B: 242, Bold: true},
	Input:     Color{R: 248, G: 248, B: 242},
	Hint:      Color{R: 98, G: 114, B: 164},
	Pointer:   Color{R: 80, G: 250, B: 123, Bold: true},
	Selected:  Color{R: 80, G: 250, B: 123, Bold: true},
	Candidate: Color{R: 189, G: 147, B: 249},
	Answer:    Color{R: 102, G: 217, B: 239},
	Warning:   Color{R: 255, G: 184, B: 108},
	Error:     Color{R: 255, G: 85, B: 85},
}

// ThemeLight is a light theme with blue accents and dark gray text
var ThemeLight = &ColorScheme{
	Name:      "light",
	Prefix:    Color{R: 0, G: 119, B: 187, Bold: true},
	Message:   Color{R: 36, G: 41, B: 46, Bold: true},
	Input:     Color{R: 36, G: 41, B: 46},
	Hint:      Color{R: 149, G: 157, B: 165},
	Pointer:   Color{R: 40, G: 167, B: 69, Bold: true},
	Selected:  Color{R: 40, G: 167, B: 69, Bold: true},
	Candidate: Color{R: 88, G: 96, B: 105},
	Answer:    Color{R: 0, G: 119, B: 187},
	Warning:   Color{R: 176, G: 136, B: 0},
	Error:     Color{R: 215, G: 58, B: 73},
}

// ThemeSolarizedDark is the Solarized Dark color scheme
var ThemeSolarizedDark = &ColorScheme{
	Name:      "solarized-dark",
	Prefix:    Color{R: 133, G: 153, B: 0, Bold: true},
	Message:   Color{R: 147, G: 161, B: 161, Bold: true},
	Input:     Color{R: 147, G: 161, B: 161},
	Hint:      Color{R: 88, G: 110, B: 117},
	Pointer:   Color{R: 38, G: 139, B: 210, Bold: true},
	Selected:  Color{R: 38, G: 139, B: 210, Bold: true},
	Candidate: Color{R: 131, G: 148, B: 150},
	Answer:    Color{R: 42, G: 161, B: 152},
	Warning:   Color{R: 181, G: 137, B: 0},
	Error:     Color{R: 220, G: 50, B: 47},
}

// ThemeAccessible is a colorblind-safe theme with high contrast
var ThemeAccessible = &ColorScheme{
	Name:      "accessible",
	Prefix:    Color{R: 0, G: 114, B: 178, Bold: true},
	Message:   Color{R: 255, G: 255, B: 255, Bold: true},
	Input:     Color{R: 255, G: 255, B: 255},
	Hint:      Color{R: 204, G: 204, B: 204},
	Pointer:   Color{R: 230, G: 159, B: 0, Bold: true},
	Selected:  Color{R: 230, G: 159, B: 0, Bold: true},
	Candidate: Color{R: 255, G: 255, B: 255},
	Answer:    Color{R: 86, G: 180, B: 233},
	Warning:   Color{R: 240, G: 228, B: 66},
	Error:     Color{R: 213, G: 94, B: 0},
}

// ThemeDracula is the Dracula color scheme
var ThemeDracula = &ColorScheme{
	Name:      "dracula",
	Prefix:    Color{R: 255, G: 121, B: 198, Bold: true},
	Message:   Color{R: 248, G: 248, B: 242, Bold: true},
	Input:     Color{R: 248, G: 248, B: 242},
	Hint:      Color{R: 98, G: 114, B: 164},
	Pointer:   Color{R: 80, G: 250, B: 123, Bold: true},
	Selected:  Color{R: 80, G: 250, B: 123, Bold: true},
	Candidate: Color{R: 139, G: 233, B: 253},
	Answer:    Color{R: 189, G: 147, B: 249},
	Warning:   Color{R: 241, G: 250, B: 140},
	Error:     Color{R: 255, G: 85, B: 85},
}

// ThemeMonokai is the Monokai color scheme
var ThemeMonokai = &ColorScheme{
	Name:      "monokai",
	Prefix:    Color{R: 249, G: 38, B: 114, Bold: true},
	Message:   Color{R: 248, G: 248, B: 242, Bold: true},
	Input:     Color{R: 248, G: 248, B: 242},
	Hint:      Color{R: 117, G: 113, B: 94},
	Pointer:   Color{R: 102, G: 217, B: 239, Bold: true},
	Selected:  Color{R: 102, G: 217, B: 239, Bold: true},
	Candidate: Color{R: 166, G: 226, B: 46},
	Answer:    Color{R: 253, G: 151, B: 31},
	Warning:   Color{R: 230, G: 219, B: 116},
	Error:     Color{R: 249, G: 38, B: 114},
}

var themes = []*ColorScheme{
	ThemeDefault,
	ThemeDark,
	ThemeLight,
	ThemeSolarizedDark,
	ThemeAccessible,
	ThemeDracula,
	ThemeMonokai,
}

// ThemeByName looks a built-in theme up by its case-insensitive name.
func ThemeByName(name string) (*ColorScheme, error) {
	for _, theme := range themes {
		if strings.EqualFold(theme.Name, name) {
			return theme, nil
		}
	}
	return nil, fmt.Errorf("unknown theme %q", name)
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Style returns a lipgloss style for the color, downsampled by r to what the
// terminal supports.
func (c Color) Style(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().
		Foreground(lipgloss.Color(c.Hex())).
		Bold(c.Bold)
}

// styles is a ColorScheme resolved against one output.
type styles struct {
	prefix    lipgloss.Style
	message   lipgloss.Style
	input     lipgloss.Style
	hint      lipgloss.Style
	pointer   lipgloss.Style
	selected  lipgloss.Style
	candidate lipgloss.Style
	answer    lipgloss.Style
	warning   lipgloss.Style
	error     lipgloss.Style
}

func newStyles(cs *ColorScheme, r *lipgloss.Renderer) styles {
	return styles{
		prefix:    cs.Prefix.Style(r),
		message:   cs.Message.Style(r),
		input:     cs.Input.Style(r),
		hint:      cs.Hint.Style(r),
		pointer:   cs.Pointer.Style(r),
		selected:  cs.Selected.Style(r),
		candidate: cs.Candidate.Style(r),
		answer:    cs.Answer.Style(r),
		warning:   cs.Warning.Style(r),
		error:     cs.Error.Style(r),
	}
}
