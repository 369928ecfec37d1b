package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"caesar/internal/config"
	"caesar/internal/ctxlog"
	"caesar/internal/rec"
	"caesar/internal/rot"
	"caesar/internal/store"
)

func run(ctx context.Context, configFile string, shift int) (err error) {
	defer rec.Error(&err)

	logger := ctxlog.Get(ctx)

	c, err := config.Load(ctx, configFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var cipher *rot.Cipher
	if shift >= 0 {
		ci, err := rot.New(shift)
		if err != nil {
			return err
		}
		cipher = &ci
	}

	logger.Info("opening db", "file", c.DB.File)
	store.Open(c.DB)
	defer ctxlog.Close(ctx, "db", store.Closer())

	for _, m := range store.List() {
		if cipher == nil {
			logger.Info("message", "id", m.ID, "kind", m.Kind, "created", m.Created, "text", m.Text)
			continue
		}

		t := m.Translate(*cipher)
		logger.Info("message", "id", m.ID, "kind", m.Kind, "created", m.Created, "text", m.Text, string(t.Kind), t.Text)
	}

	return nil
}

func main() {
	shift := flag.Int("shift", -1, "also show every message translated with this shift")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ctx = ctxlog.Setup(ctx, "messages", "")

	logger := ctxlog.Get(ctx)

	configFile := "config.yaml"
	if flag.NArg() > 0 {
		configFile = flag.Arg(0)
	}

	err := run(ctx, configFile, *shift)
	if err != nil {
		logger.Error("stopped unexpectedly", "error", err)
	}
}
