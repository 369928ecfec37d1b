package store

import (
	"fmt"
	"strings"
	"time"

	"caesar/internal/rot"

	"github.com/google/uuid"
)

// Kind tags whether a message's text is plain or cipher text.
type Kind string

const (
	Plain  Kind = "plain"
	Cipher Kind = "cipher"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Plain, Cipher:
		return k, nil
	}
	return "", fmt.Errorf("store: unknown message kind %q", s)
}

// Direction is the transform that translates a message of this kind.
func (k Kind) Direction() rot.Direction {
	if k == Cipher {
		return rot.Decrypt
	}
	return rot.Encrypt
}

// kindOf is the kind of message that dir translates.
func kindOf(dir rot.Direction) Kind {
	if dir == rot.Decrypt {
		return Cipher
	}
	return Plain
}

func (k Kind) opposite() Kind {
	return kindOf(k.Direction().Inverse())
}

type Message struct {
	ID      uuid.UUID `json:"id"`
	Kind    Kind      `json:"kind"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

// Translate encrypts plain messages and decrypts cipher messages. The result
// has the opposite kind and no ID.
func (m Message) Translate(c rot.Cipher) Message {
	return Message{
		Kind: m.Kind.opposite(),
		Text: c.Translate(m.Text, m.Kind.Direction()),
	}
}
