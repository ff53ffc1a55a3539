package host

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/chzyer/readline"
	"golang.org/x/sync/errgroup"
)

// REPL drives the interactive loop described in spec §6: prompt "> ",
// each line processed independently through the full pipeline, with
// both error flags reset between lines (§4.5) so one bad line never
// disables the session. Line editing is delegated to
// github.com/chzyer/readline rather than hand-rolled, matching the
// spec's own framing of "REPL line editing" as an external collaborator
// concern.
func (h *Host) REPL(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: replHistoryFile(),
		Stdout:      h.Stdout,
		Stderr:      h.Stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return h.replLoop(gctx, rl) })
	return g.Wait()
}

func (h *Host) replLoop(ctx context.Context, rl *readline.Instance) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// io.EOF (Ctrl+D) and readline.ErrInterrupt (Ctrl+C at the
			// prompt, whether or not the line is empty) both close the
			// session cleanly, per §6 ("End of input closes the
			// session.").
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}

		state := h.Run(line)
		_ = state // diagnostics already reported to Stderr by Run
	}
}

func replHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return dir + "/lox_history"
}
