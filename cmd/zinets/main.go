package main

import (
	"context"
	"fmt"
	"io"
	stdslog "log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/zinets/zinets"
	"github.com/zinets/zinets/enrich"
	"github.com/zinets/zinets/gemini"
	"github.com/zinets/zinets/slog"
	"github.com/zinets/zinets/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin is read when an outline file is given as "-".
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. When set, Run uses them instead of
	// opening the database or connecting to Gemini.
	CharacterService zinets.CharacterService
	Enricher         zinets.Enricher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("zinets"),
		kong.Description("Parse ZiNets character networks and enrich their tokens."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'zinets --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	if cmd == "cache" || (cmd == "enrich" && !cli.Enrich.DryRun) {
		if err := m.wireCache(deps); err != nil {
			return err
		}
		defer m.Close()
	}

	if cmd == "enrich" {
		if err := m.wireEnrich(ctx, deps, &cli.Enrich); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireCache opens the character cache unless a service was injected.
func (m *Main) wireCache(deps *Dependencies) error {
	if m.CharacterService == nil {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(deps.Stderr, "Hint: Set ZINETS_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		m.CharacterService = sqlite.NewCharacterService(m.DB)
		deps.DB = m.DB
	}
	deps.Characters = slog.NewLoggingCharacterService(m.CharacterService, deps.Logger)
	return nil
}

func (m *Main) wireEnrich(ctx context.Context, deps *Dependencies, c *EnrichCmd) error {
	if c.DryRun {
		counter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		deps.TokenCounter = counter
		return nil
	}

	svc := &enrich.Service{
		Characters:  deps.Characters,
		UseCache:    !c.NoCache,
		ChunkSize:   c.ChunkSize,
		Concurrency: c.Concurrency,
		Progress:    progressPrinter(deps.Stderr),
	}

	if !c.NoLLM {
		enricher, err := m.newEnricher(ctx, deps, c)
		if err != nil {
			return err
		}
		if enricher != nil {
			svc.Enricher = slog.NewLoggingEnricher(enricher, deps.Logger)
		}
	}

	deps.Dictionary = slog.NewLoggingDictionary(svc, deps.Logger)
	return nil
}

// newEnricher returns the injected enricher or connects to Gemini. Without
// an API key it warns and returns nil, leaving the lookup cache-only.
func (m *Main) newEnricher(ctx context.Context, deps *Dependencies, c *EnrichCmd) (zinets.Enricher, error) {
	if m.Enricher != nil {
		return m.Enricher, nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY not set; using cached data only. Get an API key at https://aistudio.google.com/apikey")
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return gemini.NewEnricher(client, c.Model, c.Language, c.RPS), nil
}

// tokenizerModel is used for prompt sizing. The local tokenizer shares a
// vocabulary across the 2.5 models.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("ZINETS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "zinets.db"
	}
	dir := filepath.Join(home, ".zinets")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "zinets.db")
}

// newLogger logs to w at Debug when verbose and only warnings otherwise.
func newLogger(w io.Writer, verbose bool) *stdslog.Logger {
	level := stdslog.LevelWarn
	if verbose {
		level = stdslog.LevelDebug
	}
	return stdslog.New(stdslog.NewTextHandler(w, &stdslog.HandlerOptions{Level: level}))
}
