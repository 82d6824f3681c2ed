package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// levelRouter sends records below ERROR to one handler and the rest to
// another.
type levelRouter struct {
	minLevel slog.Level
	info     slog.Handler
	errs     slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= lr.minLevel
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.errs.Handle(ctx, r)
	}
	return lr.info.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{minLevel: lr.minLevel, info: lr.info.WithAttrs(attrs), errs: lr.errs.WithAttrs(attrs)}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{minLevel: lr.minLevel, info: lr.info.WithGroup(name), errs: lr.errs.WithGroup(name)}
}

func newLevelRouter(infoW, errW io.Writer, minLevel slog.Level) *levelRouter {
	opts := &slog.HandlerOptions{Level: minLevel}
	return &levelRouter{
		minLevel: minLevel,
		info:     slog.NewTextHandler(infoW, opts),
		errs:     slog.NewTextHandler(errW, opts),
	}
}

// setupLogger installs the default logger: INFO/WARN to stdout, ERROR to
// stderr, and everything to logPath as well when it is set. The returned
// cleanup closes the log file and is never nil.
func setupLogger(logPath string) (func(), error) {
	cleanup := func() {}
	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	slog.SetDefault(slog.New(newLevelRouter(stdoutW, stderrW, slog.LevelInfo)))
	return cleanup, nil
}
