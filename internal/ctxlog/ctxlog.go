// Package ctxlog provides context-aware structured logging utilities.
package ctxlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var setupOnce sync.Once

// Setup installs the default logger and stores it in ctx. Logs go to
// stderr and, when dir is not empty, to a new timestamped file in dir.
// Every record carries the app name. Only the first call configures
// anything; later calls reuse the default logger.
func Setup(ctx context.Context, app, dir string) context.Context {
	setupOnce.Do(func() {
		w := io.Writer(os.Stderr)

		if dir != "" {
			err := os.MkdirAll(dir, 0755)
			if err != nil {
				panic(fmt.Errorf("create log dir: %w", err))
			}

			logFile, err := os.Create(filepath.Join(dir, app+"-"+time.Now().Format("2006-01-02-15-04-05.log")))
			if err != nil {
				panic(fmt.Errorf("create log file: %w", err))
			}

			w = io.MultiWriter(os.Stderr, logFile)
		}

		logger := slog.New(slog.NewJSONHandler(w, nil)).With("app", app)
		slog.SetDefault(logger)
	})

	return Store(ctx, slog.Default())
}

type ctxKey struct{}

var key ctxKey

func Store(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, key, log)
}

func Get(ctx context.Context) *slog.Logger {
	log, ok := ctx.Value(key).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return log
}

func Close(ctx context.Context, name string, closer io.Closer) error {
	logger := Get(ctx)
	err := closer.Close()
	if err != nil {
		logger.Error("failed to close", "closer", name, "error", err)
		return err
	}
	return nil
}

func With(ctx context.Context, kv ...any) context.Context {
	return Store(ctx, Get(ctx).With(kv...))
}

// Discard returns ctx with a logger that drops everything.
func Discard(ctx context.Context) context.Context {
	return Store(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
