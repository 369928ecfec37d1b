package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"caesar/internal/rot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, io.Discard)
	return stdout.String(), err
}

func TestEncryptArgs(t *testing.T) {
	out, err := runCLI(t, "", "-shift", "2", "Hello", "world!")
	require.NoError(t, err)
	assert.Equal(t, "Jgnnq yqtnf!\n", out)
}

func TestDecryptStdin(t *testing.T) {
	out, err := runCLI(t, "Drsc sc k coxdoxmo 😀\n", "-shift", "10", "-d")
	require.NoError(t, err)
	assert.Equal(t, "This is a sentence 😀\n", out)
}

func TestInvalidShift(t *testing.T) {
	for _, shift := range []string{"26", "255", "-5"} {
		_, err := runCLI(t, "", "-shift", shift, "abc")
		assert.ErrorIs(t, err, rot.ErrInvalidShift, shift)
		assert.Equal(t, 2, exitCode(err))
	}

	// No shift at all.
	_, err := runCLI(t, "", "abc")
	assert.ErrorIs(t, err, rot.ErrInvalidShift)
}

func TestRecover(t *testing.T) {
	out, err := runCLI(t, "", "-recover", "Tests are important", "Nymnm uly cgjilnuhn")
	require.NoError(t, err)
	assert.Equal(t, "20\n", out)

	_, err = runCLI(t, "", "-recover", "only one")
	assert.ErrorIs(t, err, errUsage)
	assert.Equal(t, 2, exitCode(err))

	_, err = runCLI(t, "", "-recover", "abc", "xyzw")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestBrute(t *testing.T) {
	out, err := runCLI(t, "", "-brute", "Drsc sc k coxdoxmo")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, rot.Letters)
	assert.Equal(t, " 0 Drsc sc k coxdoxmo", lines[0])
	assert.Equal(t, "10 This is a sentence", lines[10])
}

func TestDirFlag(t *testing.T) {
	for _, dir := range []string{"decrypt", "dec", "cipher", "D"} {
		out, err := runCLI(t, "", "-shift", "10", "-dir", dir, "Drsc sc k coxdoxmo")
		require.NoError(t, err, dir)
		assert.Equal(t, "This is a sentence\n", out, dir)
	}

	out, err := runCLI(t, "", "-shift", "20", "-dir", "plain", "Tests are important")
	require.NoError(t, err)
	assert.Equal(t, "Nymnm uly cgjilnuhn\n", out)

	// -d wins over -dir.
	out, err = runCLI(t, "", "-shift", "1", "-dir", "encrypt", "-d", "b")
	require.NoError(t, err)
	assert.Equal(t, "a\n", out)

	_, err = runCLI(t, "", "-shift", "1", "-dir", "sideways", "b")
	assert.ErrorIs(t, err, errUsage)
	assert.Equal(t, 2, exitCode(err))
}

// runMain runs the CLI the way main does and returns what reached stderr.
func runMain(args ...string) (string, int) {
	var stderr bytes.Buffer
	err := run(args, strings.NewReader(""), io.Discard, &stderr)
	report(err, &stderr)
	return stderr.String(), exitCode(err)
}

func TestBadFlag(t *testing.T) {
	_, err := runCLI(t, "", "-nope")
	assert.ErrorIs(t, err, errUsage)
	assert.Equal(t, 0, exitCode(nil))

	stderr, code := runMain("-nope")
	assert.Equal(t, 2, code)
	assert.Equal(t, 1, strings.Count(stderr, "Usage:"), stderr)
	assert.Contains(t, stderr, "-nope")
}

func TestHelp(t *testing.T) {
	for _, arg := range []string{"-h", "-help"} {
		stderr, code := runMain(arg)
		assert.Equal(t, 0, code, arg)
		assert.Equal(t, usage, stderr, arg)
	}
}

func TestUsageAfterParse(t *testing.T) {
	stderr, code := runMain("-recover", "only one")
	assert.Equal(t, 2, code)
	assert.Equal(t, usage, stderr)

	stderr, code = runMain("-shift", "99", "abc")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "caesar:")
	assert.NotContains(t, stderr, "Usage:")
}
