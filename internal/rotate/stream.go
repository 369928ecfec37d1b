package rotate

import (
	"io"

	"caesar/internal/rot"
)

// The transform is per byte, so chunk boundaries never matter, not even
// in the middle of a multi-byte UTF-8 sequence.

type reader struct {
	r   io.Reader
	c   rot.Cipher
	dir rot.Direction
}

// NewReader returns a reader that translates everything read from r.
func NewReader(r io.Reader, c rot.Cipher, dir rot.Direction) io.Reader {
	return &reader{r: r, c: c, dir: dir}
}

func (r *reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.c.TranslateBytes(p[:n], r.dir)
	return n, err
}

const writeChunk = 32 * 1024

type writer struct {
	w   io.Writer
	c   rot.Cipher
	dir rot.Direction
	buf []byte
}

// NewWriter returns a writer that translates p before writing it to w.
// The slices passed to Write are never modified.
func NewWriter(w io.Writer, c rot.Cipher, dir rot.Direction) io.Writer {
	return &writer{w: w, c: c, dir: dir}
}

func (w *writer) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		chunk := p
		if len(chunk) > writeChunk {
			chunk = chunk[:writeChunk]
		}

		w.buf = w.c.AppendTranslate(w.buf[:0], chunk, w.dir)
		n, err := w.w.Write(w.buf)
		written += n
		if err != nil {
			return written, err
		}
		if n < len(chunk) {
			return written, io.ErrShortWrite
		}

		p = p[len(chunk):]
	}
	return written, nil
}
