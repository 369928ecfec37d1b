package store

import (
	"path/filepath"
	"testing"
	"time"

	"caesar/internal/rot"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) {
	t.Helper()
	Open(Config{File: filepath.Join(t.TempDir(), "db", "caesar.db")})
	t.Cleanup(func() {
		require.NoError(t, Close())
	})
}

func TestPutGetDelete(t *testing.T) {
	openTemp(t)

	m, err := Put(Message{Kind: Plain, Text: "Hello world!"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.False(t, m.Created.IsZero())

	got, err := Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, Plain, got.Kind)
	assert.Equal(t, "Hello world!", got.Text)
	assert.True(t, m.Created.Equal(got.Created))

	require.NoError(t, Delete(m.ID))

	_, err = Get(m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, Delete(m.ID), ErrNotFound)
}

func TestPutRejectsUnknownKind(t *testing.T) {
	openTemp(t)

	_, err := Put(Message{Kind: "rot13", Text: "x"})
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	openTemp(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for text, hours := range map[string]int{"third": 2, "first": 0, "second": 1} {
		_, err := Put(Message{Kind: Cipher, Text: text, Created: base.Add(time.Duration(hours) * time.Hour)})
		require.NoError(t, err)
	}

	var texts []string
	for _, m := range List() {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{"first", "second", "third"}, texts)

	n := 0
	for range All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestOpenTwicePanics(t *testing.T) {
	openTemp(t)
	assert.Panics(t, func() { Open(Config{File: filepath.Join(t.TempDir(), "other.db")}) })
}

func TestMessageTranslate(t *testing.T) {
	c := rot.MustNew(10)

	enc := Message{Kind: Plain, Text: "This is a sentence"}.Translate(c)
	assert.Equal(t, Cipher, enc.Kind)
	assert.Equal(t, "Drsc sc k coxdoxmo", enc.Text)

	dec := enc.Translate(c)
	assert.Equal(t, Plain, dec.Kind)
	assert.Equal(t, "This is a sentence", dec.Text)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Cipher ")
	require.NoError(t, err)
	assert.Equal(t, Cipher, k)
	assert.Equal(t, rot.Decrypt, k.Direction())
	assert.Equal(t, rot.Encrypt, Plain.Direction())

	_, err = ParseKind("")
	assert.Error(t, err)
}
