package autocomplete

import (
	"bytes"
	"io"
	"strings"
)

// mockTerminal implements terminalInterface for tests.
//
// Input is a pre-configured keypress script and everything rendered is kept
// in a buffer, so a full program run is deterministic and safe in CI.
type mockTerminal struct {
	input        io.Reader     // Pre-configured input sequence for testing
	output       *bytes.Buffer // Everything the program rendered
	terminalSize [2]int        // Fixed terminal dimensions [width, height]
	closed       int           // Number of Close calls
}

func newMockTerminal(input string) *mockTerminal {
	return &mockTerminal{
		input:        strings.NewReader(input),
		output:       &bytes.Buffer{},
		terminalSize: [2]int{fallbackWidth, fallbackHeight},
	}
}

func (m *mockTerminal) Input() io.Reader {
	return m.input
}

func (m *mockTerminal) Output() io.Writer {
	return m.output
}

func (m *mockTerminal) Size() (width, height int, err error) {
	return m.terminalSize[0], m.terminalSize[1], nil
}

func (m *mockTerminal) Close() error {
	m.closed++
	return nil
}
