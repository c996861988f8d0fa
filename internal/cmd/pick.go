package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	// Register the pure-Go SQLite driver for --sqlite.
	_ "modernc.org/sqlite"

	"github.com/nao1215/autocomplete"
	"github.com/nao1215/autocomplete/internal/config"
)

// answerName is the key the picked value is recorded under.
const answerName = "answer"

// pickOpts holds the parsed flags of the pick command.
type pickOpts struct {
	message          string
	file             string
	command          string
	sqlitePath       string
	query            string
	token            bool
	suggestOnly      bool
	defaultValue     string
	pageSize         int
	limit            int
	debounceMs       int
	searchingDelayMs int
	searchingMessage string
	noResultMessage  string
	theme            string
	delimiters       string
	color            string
	logLevel         string
	logFile          string
}

func newPickCmd(opts *pickOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a candidate with search-as-you-type",
		Long: `Pick a candidate with search-as-you-type and print it on stdout.

Candidates come from one of:
  stdin / --file   one candidate per line, fuzzy ranked
  --command        a command run per search; {q} is replaced by the query
  --sqlite         a SQLite database queried with --query (one ? for LIKE)

Examples:
  git branch --format='%(refname:short)' | autocomplete pick -m "Branch"
  autocomplete pick --command 'grep -ri {q} notes.txt'
  autocomplete pick --sqlite app.db --query 'SELECT name, id FROM users WHERE name LIKE ?'
  ls | autocomplete pick --token --delimiters '\s,' -m "Files"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPick(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.message, "message", "m", "", "question shown before the input")
	flags.StringVarP(&opts.file, "file", "f", "", "read candidates from file instead of stdin")
	flags.StringVarP(&opts.command, "command", "c", "", "command producing candidates ({q} = query)")
	flags.StringVar(&opts.sqlitePath, "sqlite", "", "SQLite database to query")
	flags.StringVar(&opts.query, "query", "", "SQL query with one ? parameter (requires --sqlite)")
	flags.BoolVar(&opts.token, "token", false, "complete the token under the caret (implies --suggest-only)")
	flags.BoolVar(&opts.suggestOnly, "suggest-only", false, "answer with the typed text, tab completes")
	flags.StringVar(&opts.defaultValue, "default", "", "initial input or empty-submit value")
	flags.IntVar(&opts.pageSize, "page-size", 0, "candidates per page")
	flags.IntVarP(&opts.limit, "limit", "n", 0, "maximum candidates per search (0 = no limit)")
	flags.IntVar(&opts.debounceMs, "debounce-ms", 0, "quiet window after an edit before searching")
	flags.IntVar(&opts.searchingDelayMs, "searching-delay-ms", 0, "delay before the searching message")
	flags.StringVar(&opts.searchingMessage, "searching-message", "", "message while searching (empty disables)")
	flags.StringVar(&opts.noResultMessage, "no-result-message", "", "message for an empty result (empty disables)")
	flags.StringVar(&opts.theme, "theme", "", "color theme")
	flags.StringVar(&opts.delimiters, "delimiters", "", "token delimiter class for --token")
	flags.StringVar(&opts.color, "color", "auto", "color output: auto, always, or never")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")

	return cmd
}

func runPick(cmd *cobra.Command, opts *pickOpts) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	logger, err := initializeLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	source, closeSource, err := newSource(opts, cfg, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSource(); err != nil {
			logger.Warn("failed to close source", zap.Error(err))
		}
	}()

	promptOpts, err := cfg.Options()
	if err != nil {
		return err
	}
	promptOpts = append(promptOpts,
		autocomplete.WithSource(source),
		autocomplete.WithLogger(logger),
	)
	if profile, ok := colorProfile(opts.color); ok {
		promptOpts = append(promptOpts, autocomplete.WithColorProfile(profile))
	}

	p, err := autocomplete.New(answerName, cfg.Message, promptOpts...)
	if err != nil {
		return err
	}
	defer p.Close()

	logger.Debug("prompt started", zap.String("message", cfg.Message), zap.Bool("suggestOnly", cfg.SuggestOnly))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	answer, err := p.RunWithContext(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), answer.Value)
	return err
}

func loadConfig() (*config.Config, error) {
	return config.LoadFromFile(resolveConfigPath())
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(cmd *cobra.Command, opts *pickOpts, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("message") {
		cfg.Message = opts.message
	}
	if changed("suggest-only") {
		cfg.SuggestOnly = opts.suggestOnly
	}
	if opts.token {
		cfg.SuggestOnly = true
	}
	if changed("default") {
		cfg.Default = opts.defaultValue
	}
	if changed("page-size") {
		cfg.PageSize = opts.pageSize
	}
	if changed("limit") {
		cfg.Limit = opts.limit
	}
	if changed("debounce-ms") {
		cfg.DebounceMs = opts.debounceMs
	}
	if changed("searching-delay-ms") {
		cfg.SearchingDelayMs = opts.searchingDelayMs
	}
	if changed("searching-message") {
		cfg.SearchingMessage = opts.searchingMessage
	}
	if changed("no-result-message") {
		cfg.NoResultMessage = opts.noResultMessage
	}
	if changed("theme") {
		cfg.Theme = opts.theme
	}
	if changed("delimiters") {
		cfg.Delimiters = opts.delimiters
	}
	if changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if changed("log-file") {
		cfg.LogFile = opts.logFile
	}
}

// newSource picks the candidate source from the flags. The returned close
// function releases whatever the source holds open.
func newSource(opts *pickOpts, cfg *config.Config, stdin io.Reader) (autocomplete.Source, func() error, error) {
	noop := func() error { return nil }

	var (
		source      autocomplete.Source
		closeSource = noop
	)

	switch {
	case opts.sqlitePath != "":
		if opts.query == "" {
			return nil, nil, errors.New("--sqlite requires --query")
		}
		db, err := sql.Open("sqlite", opts.sqlitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		source = sqliteSource(db, opts.query, cfg.Limit)
		closeSource = db.Close
	case opts.query != "":
		return nil, nil, errors.New("--query requires --sqlite")
	case opts.command != "":
		if _, err := buildCommand(opts.command, ""); err != nil {
			return nil, nil, err
		}
		source = commandSource(opts.command, cfg.Limit)
	default:
		lines, err := loadLines(opts.file, stdin)
		if err != nil {
			return nil, nil, err
		}
		source = lineSource(lines, cfg.Limit)
	}

	if opts.token {
		source = tokenSource(source, cfg.Delimiters)
	}
	return source, closeSource, nil
}

// loadLines reads candidates from path, or from stdin when path is empty.
// An interactive stdin has nothing to read and is rejected.
func loadLines(path string, stdin io.Reader) ([]string, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		return readLines(f)
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, errors.New("no candidates: pipe lines on stdin or use --file, --command or --sqlite")
	}
	return readLines(stdin)
}

// colorProfile maps the --color flag to a forced profile. ok is false when
// the profile should be detected from the terminal.
func colorProfile(mode string) (termenv.Profile, bool) {
	switch mode {
	case "never":
		return termenv.Ascii, true
	case "always":
		return termenv.TrueColor, true
	default:
		if termenv.EnvNoColor() {
			return termenv.Ascii, true
		}
		return termenv.Ascii, false
	}
}
