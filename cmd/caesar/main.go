package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"caesar/internal/rec"
	"caesar/internal/rot"
	"caesar/internal/rotate"
)

const usage = `Usage:
  caesar -shift N [-d] [text ...]   encrypt (or decrypt) text, or stdin without text
  caesar -shift N -dir DIR [text ...]
                                    translate in DIR: encrypt or decrypt (also plain,
                                    cipher, enc, dec, e, d)
  caesar -recover PLAIN CIPHER      print the shift that turns PLAIN into CIPHER
  caesar -brute CIPHER              print CIPHER decrypted with every shift
`

var (
	errUsage = errors.New("usage")
	// errReported is a usage error the flag set has already printed.
	errReported = fmt.Errorf("%w: reported", errUsage)
)

type options struct {
	shift   int
	dir     rot.Direction
	decrypt bool
	recover bool
	brute   bool
}

func parse(args []string, stderr io.Writer) (options, []string, error) {
	var o options

	fs := flag.NewFlagSet("caesar", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	fs.IntVar(&o.shift, "shift", -1, "rotation in [0, 26)")
	fs.TextVar(&o.dir, "dir", rot.Encrypt, "encrypt or decrypt")
	fs.BoolVar(&o.decrypt, "d", false, "decrypt instead of encrypt, overrides -dir")
	fs.BoolVar(&o.recover, "recover", false, "recover the shift from known plain text")
	fs.BoolVar(&o.brute, "brute", false, "list every possible decryption")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return o, nil, err
		}
		return o, nil, errReported
	}
	if o.decrypt {
		o.dir = rot.Decrypt
	}
	return o, fs.Args(), nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	defer rec.Wrap(&err, "caesar: %w")

	o, rest, err := parse(args, stderr)
	if err != nil {
		return err
	}

	switch {
	case o.recover:
		if len(rest) != 2 {
			return errUsage
		}
		c, err := rotate.Recover(rest[0], rest[1])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, c.Shift())
		return err

	case o.brute:
		if len(rest) == 0 {
			return errUsage
		}
		for shift, cand := range rotate.Candidates(strings.Join(rest, " ")) {
			if _, err := fmt.Fprintf(stdout, "%2d %s\n", shift, cand); err != nil {
				return err
			}
		}
		return nil
	}

	c, err := rot.New(o.shift)
	if err != nil {
		return err
	}

	if len(rest) > 0 {
		_, err = fmt.Fprintln(stdout, c.Translate(strings.Join(rest, " "), o.dir))
		return err
	}

	_, err = io.Copy(stdout, rotate.NewReader(stdin, c, o.dir))
	return err
}

func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage), errors.Is(err, rot.ErrInvalidShift):
		return 2
	}
	return 1
}

// report prints err unless the flag set already did.
func report(err error, stderr io.Writer) {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp), errors.Is(err, errReported):
	case errors.Is(err, errUsage):
		fmt.Fprint(stderr, usage)
	default:
		fmt.Fprintln(stderr, err)
	}
}

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	report(err, os.Stderr)
	os.Exit(exitCode(err))
}
