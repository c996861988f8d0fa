package autocomplete

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
)

// Common errors
var (
	// ErrInterrupted is returned when the user cancels the prompt (Ctrl+C or Esc)
	ErrInterrupted = errors.New("interrupted")
	// ErrMissingParam is matched by every *ParamError returned from New
	ErrMissingParam = errors.New("missing required parameter")
)

// ParamError reports a required parameter that was not supplied to New.
type ParamError struct {
	Param string // Name of the missing parameter: "name", "message" or "source"
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingParam, e.Param)
}

// Is makes errors.Is(err, ErrMissingParam) hold for any ParamError.
func (e *ParamError) Is(target error) bool {
	return target == ErrMissingParam
}

// Default configuration values.
const (
	DefaultPageSize         = 7
	DefaultDebounce         = 400 * time.Millisecond
	DefaultSearchingDelay   = 300 * time.Millisecond
	DefaultSearchingMessage = "Searching..."
	DefaultNoResultMessage  = "No results..."
	defaultValidateMessage  = "Enter something, tab to autocomplete!"
)

// KeyMap holds the key bindings of the prompt. Every other key is passed to
// the line editor.
type KeyMap struct {
	Up       key.Binding // Highlight the previous candidate
	Down     key.Binding // Highlight the next candidate
	Complete key.Binding // Copy the highlighted candidate into the line (suggest-only)
	Submit   key.Binding // Answer the prompt
	Cancel   key.Binding // Abort with ErrInterrupted
}

// NewDefaultKeyMap creates the default key bindings for the prompt.
//
// Default key bindings:
//   - Up / Ctrl+P: previous candidate
//   - Down / Ctrl+N: next candidate
//   - Tab: autocomplete the highlighted candidate (suggest-only mode)
//   - Enter: submit
//   - Ctrl+C / Esc: cancel
//
// Example:
//
//	keyMap := autocomplete.NewDefaultKeyMap()
//	// Use Ctrl+Space for completion instead of Tab
//	keyMap.Complete = key.NewBinding(key.WithKeys("ctrl+@"))
//
//	p, err := autocomplete.New("state", "Pick a state",
//		autocomplete.WithSource(source),
//		autocomplete.WithKeyMap(keyMap),
//	)
func NewDefaultKeyMap() *KeyMap {
	return &KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "ctrl+p")),
		Down:     key.NewBinding(key.WithKeys("down", "ctrl+n")),
		Complete: key.NewBinding(key.WithKeys("tab")),
		Submit:   key.NewBinding(key.WithKeys("enter")),
		Cancel:   key.NewBinding(key.WithKeys("ctrl+c", "esc")),
	}
}

// Config holds the configuration for a prompt.
type Config struct {
	Name             string           // Key under which the answer is recorded (required)
	Message          string           // Question shown before the input line (required)
	Source           Source           // Candidate producer (required)
	Mode             Mode             // ListSelect (default) or SuggestOnly
	Validate         Validator        // Checks the submitted text in suggest-only mode
	Filter           Filter           // Transforms the accepted value
	Default          string           // Initial line (list-select) or empty-submit value (suggest-only)
	PageSize         int              // Candidates per page (default: 7)
	SearchingMessage string           // Shown while a slow search runs ("" disables the indicator)
	NoResultMessage  string           // Shown for an empty result ("" shows nothing)
	Debounce         time.Duration    // Quiet window after an edit before searching (default: 400ms)
	SearchingDelay   time.Duration    // Delay before the searching indicator appears (default: 300ms)
	Answers          Answers          // Earlier answers passed to the Source (optional)
	ColorScheme      *ColorScheme     // Color scheme (nil for default)
	ColorProfile     *termenv.Profile // Forced color profile (nil detects it from the output)
	KeyMap           *KeyMap          // Key bindings (nil for default)
	Logger           *zap.Logger      // Logger (nil for no logging)
}

// Option represents a configuration option for the prompt
type Option func(*Config)

// WithSource sets the candidate Source.
func WithSource(source Source) Option {
	return func(c *Config) {
		c.Source = source
	}
}

// WithSuggestOnly switches the prompt to suggest-only mode: the typed text is
// the answer and Tab copies the highlighted candidate into the line.
func WithSuggestOnly() Option {
	return func(c *Config) {
		c.Mode = SuggestOnly
	}
}

// WithValidate sets the validator used in suggest-only mode.
func WithValidate(validate Validator) Option {
	return func(c *Config) {
		c.Validate = validate
	}
}

// WithFilter sets the transform applied to the accepted value.
func WithFilter(filter Filter) Option {
	return func(c *Config) {
		c.Filter = filter
	}
}

// WithDefault sets the default value.
//
// In list-select mode the line starts out containing it. In suggest-only
// mode it is shown dimmed next to the question and used when the user submits
// an empty line.
func WithDefault(value string) Option {
	return func(c *Config) {
		c.Default = value
	}
}

// WithPageSize sets how many candidates are shown at once
func WithPageSize(size int) Option {
	return func(c *Config) {
		if size <= 0 {
			size = DefaultPageSize
		}
		c.PageSize = size
	}
}

// WithSearchingMessage sets the searching indicator text. An empty message
// disables the indicator.
func WithSearchingMessage(message string) Option {
	return func(c *Config) {
		c.SearchingMessage = message
	}
}

// WithNoResultMessage sets the text shown when a search returns nothing.
func WithNoResultMessage(message string) Option {
	return func(c *Config) {
		c.NoResultMessage = message
	}
}

// WithDebounce sets the quiet window between the last edit and the search.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) {
		c.Debounce = max(d, 0)
	}
}

// WithSearchingDelay sets how long a search may run before the searching
// indicator replaces the list.
func WithSearchingDelay(d time.Duration) Option {
	return func(c *Config) {
		c.SearchingDelay = max(d, 0)
	}
}

// WithAnswers passes earlier answers to the Source. The answer of this prompt
// is recorded in the same map under its name.
func WithAnswers(answers Answers) Option {
	return func(c *Config) {
		c.Answers = answers
	}
}

// WithColorScheme sets the color scheme
func WithColorScheme(colorScheme *ColorScheme) Option {
	return func(c *Config) {
		c.ColorScheme = colorScheme
	}
}

// WithColorProfile forces the color profile used for rendering, for example
// termenv.Ascii to disable colors.
func WithColorProfile(profile termenv.Profile) Option {
	return func(c *Config) {
		c.ColorProfile = &profile
	}
}

// WithKeyMap sets the key bindings
func WithKeyMap(keyMap *KeyMap) Option {
	return func(c *Config) {
		c.KeyMap = keyMap
	}
}

// WithLogger sets the logger used for search and submission diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

func defaultConfig(name, message string) Config {
	return Config{
		Name:             name,
		Message:          message,
		PageSize:         DefaultPageSize,
		SearchingMessage: DefaultSearchingMessage,
		NoResultMessage:  DefaultNoResultMessage,
		Debounce:         DefaultDebounce,
		SearchingDelay:   DefaultSearchingDelay,
	}
}

// validate reports the first missing required parameter.
func (c Config) validate() error {
	switch {
	case c.Name == "":
		return &ParamError{Param: "name"}
	case c.Message == "":
		return &ParamError{Param: "message"}
	case c.Source == nil:
		return &ParamError{Param: "source"}
	}
	return nil
}

// withDefaults fills the optional fields left nil.
func (c Config) withDefaults() Config {
	if c.ColorScheme == nil {
		c.ColorScheme = ThemeDefault
	}
	if c.KeyMap == nil {
		c.KeyMap = NewDefaultKeyMap()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	return c
}

// Prompt is an interactive autocomplete prompt bound to a terminal.
type Prompt struct {
	config   Config
	terminal terminalInterface
}

// New creates a new prompt named name that asks message.
//
// A Source is required. Missing parameters are reported as a *ParamError
// that matches ErrMissingParam.
//
// Example:
//
//	states := []string{"Alabama", "Alaska", "Arizona", "Arkansas"}
//	p, err := autocomplete.New("state", "Select a state to travel from",
//		autocomplete.WithSource(func(ctx context.Context, _ autocomplete.Answers, input string, _ autocomplete.SourceContext) ([]autocomplete.Candidate, error) {
//			var out []autocomplete.Candidate
//			for _, s := range states {
//				if strings.Contains(strings.ToLower(s), strings.ToLower(input)) {
//					out = append(out, autocomplete.NewCandidate(s))
//				}
//			}
//			return out, nil
//		}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	answer, err := p.Run()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("You picked: %v\n", answer.Value)
func New(name, message string, options ...Option) (*Prompt, error) {
	config := defaultConfig(name, message)

	// Apply options
	for _, option := range options {
		option(&config)
	}

	return newFromConfig(config)
}

func newFromConfig(config Config) (*Prompt, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	terminal, err := newRealTerminal()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal: %w", err)
	}

	return &Prompt{
		config:   config.withDefaults(),
		terminal: terminal,
	}, nil
}

// Run starts the interactive prompt and returns the answer.
//
// This is a convenience method that calls RunWithContext with a background context.
func (p *Prompt) Run() (Answer, error) {
	return p.RunWithContext(context.Background())
}

// RunWithContext starts the interactive prompt with context support.
//
// The context is handed to every Source and Filter call. Cancelling it ends
// the prompt and returns the context error. Ctrl+C or Esc return
// ErrInterrupted.
//
// Example with timeout:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	answer, err := p.RunWithContext(ctx)
//	if errors.Is(err, context.DeadlineExceeded) {
//		fmt.Println("Timeout reached")
//		return
//	}
func (p *Prompt) RunWithContext(ctx context.Context) (Answer, error) {
	renderer := lipgloss.NewRenderer(p.terminal.Output())
	if p.config.ColorProfile != nil {
		renderer.SetColorProfile(*p.config.ColorProfile)
	}
	m := newModel(ctx, p.config, renderer)
	if width, _, err := p.terminal.Size(); err == nil {
		m.width = width
	}

	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.terminal.Input()),
		tea.WithOutput(p.terminal.Output()),
		tea.WithoutSignalHandler(),
	)
	final, err := program.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Answer{}, ctxErr
	}
	if err != nil {
		return Answer{}, fmt.Errorf("failed to run prompt: %w", err)
	}

	result, ok := final.(Model)
	if !ok || result.cancelled || result.sel.Status != Answered {
		return Answer{}, ErrInterrupted
	}

	if p.config.Answers != nil {
		p.config.Answers[p.config.Name] = result.answer.Value
	}
	return result.answer, nil
}

// Close releases the terminal. It's safe to call Close multiple times.
func (p *Prompt) Close() error {
	if p.terminal != nil {
		if err := p.terminal.Close(); err != nil {
			return fmt.Errorf("failed to close terminal: %w", err)
		}
	}
	return nil
}
