// Package rot implements the rotation (Caesar) cipher over ASCII letters.
//
// Only bytes in 'A'..'Z' and 'a'..'z' are substituted. Every other byte,
// including all bytes of multi-byte UTF-8 sequences (always >= 0x80), is
// copied unchanged, so valid UTF-8 input always yields valid UTF-8 output
// of the same length and is never re-validated.
package rot

import (
	"errors"
	"fmt"
)

// Letters is the size of each case's alphabet. Valid shifts are [0, Letters).
const Letters = 26

// ErrInvalidShift is matched by every error returned for a shift outside [0, 26).
var ErrInvalidShift = errors.New("invalid shift")

// ShiftError reports the rejected shift value.
type ShiftError struct {
	Shift int
}

func (e *ShiftError) Error() string {
	return fmt.Sprintf("rot: invalid shift %d: must be in the range [0, %d)", e.Shift, Letters)
}

func (e *ShiftError) Is(target error) bool {
	return target == ErrInvalidShift
}

// Cipher rotates letters by a fixed shift. The zero value is the identity
// cipher. A Cipher is immutable and safe for concurrent use.
type Cipher struct {
	shift uint8
}

// New returns a Cipher for shift. Shifts outside [0, 26) are rejected,
// never reduced modulo 26.
func New(shift int) (Cipher, error) {
	if shift < 0 || shift >= Letters {
		return Cipher{}, &ShiftError{Shift: shift}
	}
	return Cipher{shift: uint8(shift)}, nil
}

// MustNew is like New but panics on an invalid shift.
func MustNew(shift int) Cipher {
	c, err := New(shift)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Cipher) Shift() int {
	return int(c.shift)
}

func (c Cipher) String() string {
	return fmt.Sprintf("rot%d", c.shift)
}

func rot(b byte, n uint8) byte {
	switch {
	case 'A' <= b && b <= 'Z':
		return 'A' + (b-'A'+n)%Letters
	case 'a' <= b && b <= 'z':
		return 'a' + (b-'a'+n)%Letters
	}
	return b
}

// unrot mirrors rot from the end of the alphabet: 'Z' - ((25 - pos) + n) mod 26.
func unrot(b byte, n uint8) byte {
	switch {
	case 'A' <= b && b <= 'Z':
		return 'Z' - (('Z'-b)+n)%Letters
	case 'a' <= b && b <= 'z':
		return 'z' - (('z'-b)+n)%Letters
	}
	return b
}

// byteFunc panics on directions other than Encrypt and Decrypt: those can only
// come from a conversion in the caller, never from ParseDirection.
func byteFunc(dir Direction) func(byte, uint8) byte {
	switch dir {
	case Encrypt:
		return rot
	case Decrypt:
		return unrot
	}
	panic(fmt.Sprintf("rot: unknown direction %d", uint8(dir)))
}

// Encrypt returns s with every ASCII letter rotated forward by the shift.
func (c Cipher) Encrypt(s string) string {
	return c.Translate(s, Encrypt)
}

// Decrypt is the inverse of Encrypt.
func (c Cipher) Decrypt(s string) string {
	return c.Translate(s, Decrypt)
}

// Translate encrypts or decrypts s depending on dir.
func (c Cipher) Translate(s string, dir Direction) string {
	f := byteFunc(dir)
	buf := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		buf[i] = f(s[i], c.shift)
	}
	return string(buf)
}

// EncryptBytes encrypts b in place.
func (c Cipher) EncryptBytes(b []byte) {
	c.TranslateBytes(b, Encrypt)
}

// DecryptBytes decrypts b in place.
func (c Cipher) DecryptBytes(b []byte) {
	c.TranslateBytes(b, Decrypt)
}

// TranslateBytes transforms b in place. Length and UTF-8 validity of b are
// preserved, since only single-byte ASCII letters are ever rewritten.
func (c Cipher) TranslateBytes(b []byte, dir Direction) {
	f := byteFunc(dir)
	for i, v := range b {
		b[i] = f(v, c.shift)
	}
}

// AppendTranslate appends the transformed src to dst and returns the
// extended slice. src is not modified.
func (c Cipher) AppendTranslate(dst, src []byte, dir Direction) []byte {
	f := byteFunc(dir)
	for _, v := range src {
		dst = append(dst, f(v, c.shift))
	}
	return dst
}
