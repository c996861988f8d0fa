package autocomplete

import (
	"io"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// Fallback size used when the terminal cannot report one.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// terminalInterface abstracts the terminal the prompt program runs on.
//
// Implementations:
//   - realTerminal: the controlling tty via go-tty
//   - mockTerminal: scripted input and a buffer for tests
type terminalInterface interface {
	Input() io.Reader                     // Keypress stream handed to the program
	Output() io.Writer                    // Where the program renders
	Size() (width, height int, err error) // Terminal dimensions with safe fallbacks
	Close() error                         // Release the tty; safe to call twice
}

// realTerminal opens the controlling terminal directly, so the prompt works
// even when stdin or stdout are redirected.
//
//   - Double-close protection: the closed flag prevents panics on Windows
//   - Safe size fallbacks: 80x24 when neither go-tty nor x/term can tell
//   - Color support: go-colorable translates ANSI sequences on Windows
type realTerminal struct {
	tty    *tty.TTY
	output io.Writer
	closed bool
}

func newRealTerminal() (*realTerminal, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}

	return &realTerminal{
		tty:    t,
		output: colorable.NewColorable(t.Output()),
	}, nil
}

func (t *realTerminal) Input() io.Reader {
	return t.tty.Input()
}

func (t *realTerminal) Output() io.Writer {
	return t.output
}

func (t *realTerminal) Size() (width, height int, err error) {
	w, h, err := t.tty.Size()
	if err == nil && w > 0 && h > 0 {
		return w, h, nil
	}
	// go-tty cannot size some pseudo terminals; ask the output fd directly.
	if w, h, termErr := term.GetSize(int(t.tty.Output().Fd())); termErr == nil && w > 0 && h > 0 {
		return w, h, nil
	}
	return fallbackWidth, fallbackHeight, err
}

func (t *realTerminal) Close() error {
	// Prevent double-close which causes panic on Windows
	if t.closed || t.tty == nil {
		return nil
	}
	t.closed = true
	return t.tty.Close()
}
