package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failCloser struct{}

func (failCloser) Close() error { return errors.New("boom") }

func TestStoreGet(t *testing.T) {
	assert.Same(t, slog.Default(), Get(context.Background()))

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := Store(context.Background(), l)
	assert.Same(t, l, Get(ctx))

	ctx = With(ctx, "shift", 3)
	Get(ctx).Info("hello")
	assert.Contains(t, buf.String(), "shift=3")

	err := Close(ctx, "thing", failCloser{})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "closer=thing")
}

// TestSetup is the only caller of Setup in this package: setupOnce makes
// every later call a no-op.
func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := filepath.Join(t.TempDir(), "log")
	ctx := Setup(context.Background(), "caesar-test", dir)
	assert.Same(t, slog.Default(), Get(ctx))

	Get(ctx).Info("set up", "shift", 3)

	files, err := filepath.Glob(filepath.Join(dir, "caesar-test-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "caesar-test", rec["app"])
	assert.Equal(t, "set up", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])
	assert.EqualValues(t, 3, rec["shift"])
}
