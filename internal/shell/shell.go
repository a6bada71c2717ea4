// Package shell runs the interactive read-eval-print loop.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/smileynet/rolodex/internal/command"
	"github.com/smileynet/rolodex/internal/tui"
)

// Prompt is printed before every input line.
const Prompt = "Enter a command: "

// Options configures Run.
type Options struct {
	In      io.Reader
	Printer *tui.Printer
	Session *command.Session
	// Save persists the book. It runs once when the loop ends, whether by
	// exit/close, end of input, or cancellation.
	Save   func() error
	Logger *zap.Logger
}

// Run reads commands line by line until exit/close, end of input, or ctx
// cancellation, then saves. Command errors are printed and never end the
// loop.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p := opts.Printer

	// Cancelling on return releases the reader goroutine once input is ignored.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(opts.In)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- sc.Err()
	}()

	p.Notice("Welcome to the assistant bot!")
	for {
		p.Prompt(Prompt)
		select {
		case <-ctx.Done():
			p.Notice("")
			logger.Info("interrupted, saving book")
			return save(opts.Save, logger)

		case line, ok := <-lines:
			if !ok {
				// End of input behaves like exit.
				p.Notice("")
				if err := <-readErr; err != nil {
					logger.Error("reading input", zap.Error(err))
				}
				if err := save(opts.Save, logger); err != nil {
					return err
				}
				p.Notice("Goodbye!")
				return nil
			}

			res, err := opts.Session.Execute(line)
			if err != nil {
				p.Error(command.Describe(err))
				continue
			}
			if res.Exit {
				if err := save(opts.Save, logger); err != nil {
					return err
				}
				p.Notice(res.Output)
				return nil
			}
			p.Result(res.Output)
		}
	}
}

func save(fn func() error, logger *zap.Logger) error {
	if fn == nil {
		return nil
	}
	if err := fn(); err != nil {
		logger.Error("saving book", zap.Error(err))
		return fmt.Errorf("shell: saving book: %w", err)
	}
	return nil
}
