package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/smileynet/rolodex"
	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/card"
	"github.com/smileynet/rolodex/internal/command"
	"github.com/smileynet/rolodex/internal/config"
	"github.com/smileynet/rolodex/internal/contact"
	"github.com/smileynet/rolodex/internal/logging"
	"github.com/smileynet/rolodex/internal/shell"
	"github.com/smileynet/rolodex/internal/store"
	"github.com/smileynet/rolodex/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	Config  string `help:"Config file layered over user and project config." type:"path"`
	Book    string `help:"Address book file (overrides book.path)." type:"path"`
	NoColor bool   `help:"Disable colored output."`
}

// CLI is the top-level command structure for rolodex.
type CLI struct {
	Globals

	Version   kong.VersionFlag `help:"Show version." short:"V"`
	Shell     ShellCmd         `cmd:"" default:"1" help:"Start the interactive shell (default)."`
	Exec      ExecCmd          `cmd:"" help:"Run one command against the book, then save."`
	Browse    BrowseCmd        `cmd:"" help:"Browse contacts in a terminal UI."`
	Birthdays BirthdaysCmd     `cmd:"" help:"List upcoming birthdays."`
}

// userConfigPath is the per-user config layer.
func userConfigPath() string {
	return os.ExpandEnv("$HOME/.config/rolodex/config.yaml")
}

// loadConfig loads .env, layered config, env overrides, and flag overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.LoadLayered(
		userConfigPath(),
		".rolodex/config.yaml",
		g.Config,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.Book != "" {
		cfg.Book.Path = g.Book
	}
	if g.NoColor {
		cfg.Display.Color = tui.ColorNever
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app holds the wired dependencies for one invocation.
type app struct {
	cfg      *config.Config
	store    store.Store
	book     *book.AddressBook
	renderer *card.Renderer
	session  *command.Session
	printer  *tui.Printer
	logger   *zap.Logger
	closeLog func() error
}

// newApp loads config, opens the logger and the store, and loads the book.
func newApp(g *Globals, stdout, stderr io.Writer) (*app, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.File, stderr)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Book.Path, cfg.Book.Backend)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	b, err := st.Load()
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	logger.Info("book loaded",
		zap.String("path", st.Path()),
		zap.String("backend", store.ResolveBackend(cfg.Book.Path, cfg.Book.Backend)),
		zap.Int("contacts", b.Len()),
	)

	renderer := card.NewRenderer(rolodex.OverlayFS(".rolodex/templates", rolodex.Templates))
	session := command.NewSession(b, command.Options{
		PageSize:       cfg.Display.PageSize,
		BirthdayWindow: cfg.Birthdays.Window,
		NoteOnExisting: cfg.Notes.OnExisting,
		Renderer:       renderer,
		Logger:         logger,
	})

	return &app{
		cfg:      cfg,
		store:    st,
		book:     b,
		renderer: renderer,
		session:  session,
		printer:  tui.NewPrinter(stdout, cfg.Display.Color),
		logger:   logger,
		closeLog: closeLog,
	}, nil
}

func (a *app) save() error {
	if err := a.store.Save(a.book); err != nil {
		a.logger.Error("saving book", zap.String("path", a.store.Path()), zap.Error(err))
		return err
	}
	a.logger.Info("book saved", zap.String("path", a.store.Path()), zap.Int("contacts", a.book.Len()))
	return nil
}

func (a *app) close() {
	_ = a.closeLog()
}

// --- Shell command ---

// ShellCmd runs the interactive line loop.
type ShellCmd struct{}

// Run starts the shell on stdin; Ctrl+C saves before exiting.
func (s *ShellCmd) Run(g *Globals) error {
	a, err := newApp(g, os.Stdout, os.Stderr)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.run(ctx, a, os.Stdin)
}

// run executes the loop with the given input, enabling testable wiring.
func (s *ShellCmd) run(ctx context.Context, a *app, in io.Reader) error {
	return shell.Run(ctx, shell.Options{
		In:      in,
		Printer: a.printer,
		Session: a.session,
		Save:    a.save,
		Logger:  a.logger,
	})
}

// --- Exec command ---

// ExecCmd runs a single line command.
type ExecCmd struct {
	Words []string `arg:"" passthrough:"" help:"Command and arguments, e.g. add anna 0501234567."`
}

// Run executes the command and saves the book.
func (e *ExecCmd) Run(g *Globals) error {
	a, err := newApp(g, os.Stdout, os.Stderr)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	defer a.close()
	return e.run(a)
}

// run executes against a, enabling testable wiring. The book is saved only
// when the command succeeds.
func (e *ExecCmd) run(a *app) error {
	res, err := a.session.Run(e.Words)
	if err != nil {
		return err
	}
	a.printer.Result(res.Output)
	return a.save()
}

// --- Birthdays command ---

// BirthdaysCmd lists upcoming birthdays.
type BirthdaysCmd struct {
	Days *int `help:"Look-ahead window in days (default: birthdays.window)."`
}

// Run prints the birthdays within the window.
func (c *BirthdaysCmd) Run(g *Globals) error {
	a, err := newApp(g, os.Stdout, os.Stderr)
	if err != nil {
		return fmt.Errorf("birthdays: %w", err)
	}
	defer a.close()
	return c.run(a)
}

func (c *BirthdaysCmd) run(a *app) error {
	tokens := []string{"birthdays"}
	if c.Days != nil {
		tokens = append(tokens, strconv.Itoa(*c.Days))
	}
	res, err := a.session.Run(tokens)
	if err != nil {
		return err
	}
	a.printer.Result(res.Output)
	return nil
}

// --- Browse command ---

// BrowseCmd opens the contact browser.
type BrowseCmd struct{}

// browseFunc runs the browser over entries; tui.Browse in production.
type browseFunc func(entries []tui.Entry, opts ...tea.ProgramOption) error

// Run builds the browser over the loaded book and runs it full-screen.
func (c *BrowseCmd) Run(g *Globals) error {
	a, err := newApp(g, os.Stdout, os.Stderr)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	defer a.close()
	return c.run(a, tui.IsTTY(os.Stdout), tui.Browse)
}

// run checks for a terminal and hands the rendered entries to browse.
func (c *BrowseCmd) run(a *app, isTTY bool, browse browseFunc) error {
	if !isTTY {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}
	entries, err := browseEntries(a)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return browse(entries)
}

// browseEntries renders one browser entry per contact in book order.
func browseEntries(a *app) ([]tui.Entry, error) {
	records := a.book.All()
	entries := make([]tui.Entry, 0, len(records))
	for _, r := range records {
		text, err := a.renderer.Card(r)
		if err != nil {
			return nil, err
		}
		e := tui.Entry{Name: r.Name().Display(), Card: text}
		if phones := r.Phones(); len(phones) > 0 {
			e.Summary = phones[0].String()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

const (
	exitSuccess = 0
	exitCommand = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *contact.Error
	if errors.As(err, &ce) {
		return exitCommand
	}
	return exitSetup
}

// errorText is the message printed for a failed invocation.
func errorText(err error) string {
	var ce *contact.Error
	if errors.As(err, &ce) {
		return command.Describe(err)
	}
	return "error: " + err.Error()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("rolodex"),
		kong.Description("A contact book for the terminal."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		os.Exit(exitCode(err))
	}
}
