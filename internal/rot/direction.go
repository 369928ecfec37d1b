package rot

import (
	"fmt"
	"strings"
)

// Direction selects which of the two inverse transforms to apply.
type Direction uint8

const (
	// Encrypt turns plain text into cipher text.
	Encrypt Direction = iota
	// Decrypt turns cipher text back into plain text.
	Decrypt
)

func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

func (d Direction) Inverse() Direction {
	if d == Decrypt {
		return Encrypt
	}
	return Decrypt
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encrypt", "enc", "e", "plain":
		return Encrypt, nil
	case "decrypt", "dec", "d", "cipher":
		return Decrypt, nil
	}
	return 0, fmt.Errorf("rot: unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if d != Encrypt && d != Decrypt {
		return nil, fmt.Errorf("rot: unknown direction %d", uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
