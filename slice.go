package autocomplete

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// defaultDelimiters is the delimiter class used when none is given.
const defaultDelimiters = `\s`

// SliceResult describes the token under the caret.
//
// Left and Right are rune offsets into the sliced input, and the input can
// always be rebuilt as input[:Left] + Matching + input[Right:].
type SliceResult struct {
	Matching string // Token under the caret, never containing a delimiter
	Left     int    // Rune offset where the token starts
	Right    int    // Rune offset where the token ends
}

// Replace returns input with the sliced token replaced by text.
func (r SliceResult) Replace(input, text string) string {
	runes := []rune(input)
	left, right := min(r.Left, len(runes)), min(r.Right, len(runes))
	return string(runes[:left]) + text + string(runes[right:])
}

// SliceOption configures SliceInput.
type SliceOption func(*sliceOptions)

type sliceOptions struct {
	cursor     int
	cursorSet  bool
	delimiters string
}

// WithCursor sets the caret position in runes. Out of range values are
// clamped. Without it the caret is at the end of the input.
func WithCursor(cursor int) SliceOption {
	return func(o *sliceOptions) {
		o.cursor = cursor
		o.cursorSet = true
	}
}

// WithDelimiters sets the delimiter characters as the body of a regular
// expression character class, e.g. `\s,` for whitespace and commas.
// An empty class means whitespace. A class that is not a valid regular
// expression is read as a plain list of delimiter characters.
func WithDelimiters(class string) SliceOption {
	return func(o *sliceOptions) {
		o.delimiters = class
	}
}

// SliceInput isolates the token around the caret so a Source can complete
// one word of a longer line.
//
// The token extends left from the caret while the preceding rune is not a
// delimiter and right from the caret while the rune at that position is not
// a delimiter. A caret that sits between two delimiters, or directly after a
// non-whitespace delimiter with nothing typed yet, yields an empty token at
// the caret.
//
// Example:
//
//	r := autocomplete.SliceInput("closed #123", autocomplete.WithCursor(7))
//	// r.Matching == "#123", r.Left == 7, r.Right == 11
func SliceInput(input string, opts ...SliceOption) SliceResult {
	o := sliceOptions{delimiters: defaultDelimiters}
	for _, opt := range opts {
		opt(&o)
	}

	runes := []rune(input)
	cursor := len(runes)
	if o.cursorSet {
		cursor = max(0, min(o.cursor, len(runes)))
	}
	isDelimiter := delimiterMatcher(o.delimiters)

	left := cursor
	for left > 0 && !isDelimiter(runes[left-1]) {
		left--
	}

	right := cursor
	if !atLoneBoundary(runes, left, cursor, isDelimiter) {
		for right < len(runes) && !isDelimiter(runes[right]) {
			right++
		}
	}

	return SliceResult{
		Matching: string(runes[left:right]),
		Left:     left,
		Right:    right,
	}
}

// atLoneBoundary reports whether the caret directly follows a
// non-whitespace delimiter with no token on its left.
func atLoneBoundary(runes []rune, left, cursor int, isDelimiter func(rune) bool) bool {
	if left != cursor || cursor == 0 {
		return false
	}
	prev := runes[cursor-1]
	return isDelimiter(prev) && !unicode.IsSpace(prev)
}

var whitespaceDelimiter = regexp.MustCompile(`[` + defaultDelimiters + `]`)

// delimiterMatcher compiles class into a rune predicate. A leading ^ is a
// delimiter, not a negation. A class that does not compile is taken
// literally, each of its runes being a delimiter.
func delimiterMatcher(class string) func(rune) bool {
	if class == "" || class == defaultDelimiters {
		return matchRegexp(whitespaceDelimiter)
	}

	body := class
	if strings.HasPrefix(body, "^") {
		body = `\` + body
	}
	if re, err := regexp.Compile(`[` + body + `]`); err == nil {
		return matchRegexp(re)
	}

	literal := lo.SliceToMap([]rune(class), func(r rune) (rune, struct{}) {
		return r, struct{}{}
	})
	return func(r rune) bool {
		_, ok := literal[r]
		return ok
	}
}

func matchRegexp(re *regexp.Regexp) func(rune) bool {
	return func(r rune) bool {
		return re.MatchString(string(r))
	}
}
