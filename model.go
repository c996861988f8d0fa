package autocomplete

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// initMsg is sent by Init() so the first search is issued from Update().
type initMsg struct{}

// filterDoneMsg carries the Filter result for an accepted value.
type filterDoneMsg struct {
	value any
	name  string
	short string
	err   error
}

// Model is the bubbletea model of an autocomplete prompt.
type Model struct {
	ctx      context.Context
	config   Config
	keys     *KeyMap
	logger   *zap.Logger
	styles   styles
	searcher searchController

	input  textinput.Model
	search SearchState
	sel    SelectionState

	searchErr error  // Last Source failure, shown instead of the list
	notice    string // Validation or Filter failure, cleared on the next key
	pristine  bool   // No key has been pressed yet
	width     int

	answer    Answer
	cancelled bool
}

// newModel builds the model for one prompt run. config must be valid.
func newModel(ctx context.Context, config Config, renderer *lipgloss.Renderer) Model {
	config = config.withDefaults()
	st := newStyles(config.ColorScheme, renderer)

	input := textinput.New()
	input.Prompt = ""
	input.TextStyle = st.input
	input.Cursor.SetMode(cursor.CursorStatic)
	input.Focus()

	// A list-select default pre-fills the line. In suggest-only mode it is
	// only substituted for an empty submit.
	if config.Mode == ListSelect && config.Default != "" {
		input.SetValue(config.Default)
		input.CursorEnd()
	}

	return Model{
		ctx:    ctx,
		config: config,
		keys:   config.KeyMap,
		logger: config.Logger,
		styles: st,
		searcher: searchController{
			source:         config.Source,
			answers:        config.Answers,
			debounce:       config.Debounce,
			indicatorDelay: config.SearchingDelay,
			indicator:      config.SearchingMessage != "",
			logger:         config.Logger,
		},
		input:    input,
		sel:      SelectionState{Mode: config.Mode},
		pristine: true,
		width:    fallbackWidth,
	}
}

// Answer returns the final answer. It is only meaningful once Status reports
// Answered.
func (m Model) Answer() Answer {
	return m.answer
}

// Status returns the lifecycle status of the prompt.
func (m Model) Status() Status {
	return m.sel.Status
}

// Init implements tea.Model. It sends an initMsg so that the first search
// runs through Update().
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return initMsg{} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case initMsg:
		return m, m.searcher.issue(m.ctx, &m.search, m.input.Value(), m.input.Position())

	case debounceMsg:
		if m.sel.Status == Answered {
			return m, nil
		}
		return m, m.searcher.debounced(m.ctx, &m.search, msg)

	case searchingMsg:
		if m.sel.Status == Answered {
			return m, nil
		}
		m.searcher.showIndicator(&m.search, &m.sel, msg)
		return m, nil

	case searchDoneMsg:
		if m.sel.Status == Answered {
			return m, nil
		}
		if applied, err := m.searcher.resolve(&m.search, &m.sel, msg); applied {
			m.searchErr = err
		}
		return m, nil

	case filterDoneMsg:
		return m.handleFilterDone(msg)
	}

	return m, nil
}

// handleKey dispatches one keypress.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sel.Status == Answered {
		return m, nil
	}
	if key.Matches(msg, m.keys.Cancel) {
		m.cancelled = true
		return m, tea.Quit
	}
	if !m.sel.acceptsInput() {
		return m, nil
	}

	m.pristine = false
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Up):
		m.sel.navigate(Up)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.sel.navigate(Down)
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		if m.sel.Mode == SuggestOnly {
			m.completeHighlighted()
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	return m.editText(msg)
}

// completeHighlighted replaces the line with the highlighted candidate. It
// neither submits nor searches.
func (m *Model) completeHighlighted() {
	c, ok := m.sel.highlighted()
	if !ok {
		return
	}
	text := c.text()
	m.input.SetValue(text)

	pos := len([]rune(text))
	if c.Cursor != nil {
		pos = max(0, min(*c.Cursor, pos))
	}
	m.input.SetCursor(pos)
}

// editText hands a key to the line editor and schedules a search only when
// the line or the caret actually moved.
func (m Model) editText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before, beforePos := m.input.Value(), m.input.Position()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() == before && m.input.Position() == beforePos {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.searcher.schedule(&m.search, m.input.Value(), m.input.Position()))
}

// submit handles the submit key for both modes.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.sel.Mode == SuggestOnly {
		return m.submitSuggestion()
	}

	c, ok := m.sel.highlighted()
	if !ok {
		// Nothing to pick yet: echo the line and search for it.
		line := m.input.Value()
		m.input.SetValue(line)
		m.input.CursorEnd()
		return m, m.searcher.schedule(&m.search, line, m.input.Position())
	}

	m.sel.submitting = true
	return m, m.runFilter(c.Value, c.Name, c.Short, false)
}

// submitSuggestion answers with the typed text, or the default for an empty
// line, once it passes validation.
func (m Model) submitSuggestion() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	if value == "" && m.config.Default != "" {
		value = m.config.Default
	}

	if m.config.Validate != nil {
		if err := m.config.Validate(value); err != nil {
			m.notice = err.Error()
			if m.notice == "" {
				m.notice = defaultValidateMessage
			}
			return m, nil
		}
	}

	m.sel.submitting = true
	return m, m.runFilter(value, value, value, true)
}

// runFilter applies the Filter off the update loop. Without a Filter the
// value passes through unchanged. In suggest-only mode Name keeps the typed
// line and Short shows the filtered value.
func (m Model) runFilter(value any, name, short string, suggestion bool) tea.Cmd {
	filter := m.config.Filter
	ctx := m.ctx
	return func() (msg tea.Msg) {
		if filter == nil {
			return filterDoneMsg{value: value, name: name, short: short}
		}
		defer func() {
			if r := recover(); r != nil {
				msg = filterDoneMsg{err: fmt.Errorf("filter panicked: %v", r)}
			}
		}()

		filtered, err := filter(ctx, value)
		if err != nil {
			return filterDoneMsg{err: err}
		}
		if suggestion {
			short = fmt.Sprint(filtered)
		}
		return filterDoneMsg{value: filtered, name: name, short: short}
	}
}

func (m Model) handleFilterDone(msg filterDoneMsg) (tea.Model, tea.Cmd) {
	m.sel.submitting = false
	if msg.err != nil {
		m.logger.Error("filter failed", zap.String("name", m.config.Name), zap.Error(msg.err))
		m.notice = msg.err.Error()
		return m, nil
	}

	m.answer = Answer{Value: msg.value, Name: msg.name, Short: msg.short}
	m.sel.Status = Answered
	m.input.SetValue("")
	m.input.Blur()
	return m, tea.Quit
}
