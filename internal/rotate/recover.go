// Package rotate applies rotation ciphers to streams and recovers shifts
// from known plain text.
package rotate

import (
	"errors"
	"fmt"
	"strings"

	"caesar/internal/rot"
)

var (
	ErrLengthMismatch = errors.New("plain and cipher text must have the same number of letters")
	ErrNoLetters      = errors.New("no letters to compare")
	ErrInconsistent   = errors.New("letters do not agree on a single shift")
)

func norm(r rune) rune {
	// Return lowercase as is
	if 'a' <= r && r <= 'z' {
		return r
	}
	// Return uppercase as lowercase
	if 'A' <= r && r <= 'Z' {
		return r - 'A' + 'a'
	}
	// Drop everything else
	return -1
}

// Recover finds the cipher that encrypts plain into cipher.
func Recover(plain, cipher string) (rot.Cipher, error) {
	pr := []rune(strings.Map(norm, plain))
	cr := []rune(strings.Map(norm, cipher))
	if len(pr) != len(cr) {
		return rot.Cipher{}, fmt.Errorf("rotate: %w (%d != %d)", ErrLengthMismatch, len(pr), len(cr))
	}
	if len(pr) == 0 {
		return rot.Cipher{}, fmt.Errorf("rotate: %w", ErrNoLetters)
	}

	shift := -1
	for i := range pr {
		n := int(cr[i] - pr[i])
		for n < 0 {
			n += rot.Letters
		}

		if shift == -1 {
			shift = n
		} else if n != shift {
			return rot.Cipher{}, fmt.Errorf("rotate: %w: letter %d needs shift %d, not %d", ErrInconsistent, i, n, shift)
		}
	}

	return rot.New(shift)
}

// Candidates returns every possible decryption of cipher, indexed by shift.
func Candidates(cipher string) []string {
	out := make([]string, rot.Letters)
	for shift := range out {
		out[shift] = rot.MustNew(shift).Decrypt(cipher)
	}
	return out
}
