package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"unicode/utf8"

	"caesar/internal/ctxlog"
	"caesar/internal/rot"
	"caesar/internal/store"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

var (
	errInvalidUTF8 = errors.New("body is not valid UTF-8")
	errMissingText = errors.New("text is required")
)

type api struct {
	maxBody int64
}

func shiftParam(r *http.Request) (rot.Cipher, error) {
	v := r.URL.Query().Get("shift")
	if v == "" {
		return rot.Cipher{}, fmt.Errorf("shift: %w: missing", rot.ErrInvalidShift)
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return rot.Cipher{}, fmt.Errorf("shift: %w: %q is not a number", rot.ErrInvalidShift, v)
	}

	return rot.New(n)
}

func idParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("id: %w", err)
	}
	return id, nil
}

// readBody reads at most maxBody bytes and reports the status to answer
// with when that fails.
func (a *api) readBody(w http.ResponseWriter, r *http.Request) ([]byte, int, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, a.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("body larger than %d bytes", tooLarge.Limit)
		}
		return nil, http.StatusBadRequest, fmt.Errorf("read body: %w", err)
	}
	return data, http.StatusOK, nil
}

func directionParam(r *http.Request) (rot.Direction, error) {
	v := r.URL.Query().Get("direction")
	if v == "" {
		return 0, errors.New("direction: missing")
	}

	dir, err := rot.ParseDirection(v)
	if err != nil {
		return 0, fmt.Errorf("direction: %w", err)
	}
	return dir, nil
}

// translate answers with the request body encrypted or decrypted. The body
// is translated in place: the transform never changes its length or
// UTF-8 validity.
func (a *api) translate(dir rot.Direction) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.translateBody(w, r, dir)
	})
}

// translateAny is translate with the direction taken from the query.
func (a *api) translateAny(w http.ResponseWriter, r *http.Request) {
	dir, err := directionParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	a.translateBody(w, r, dir)
}

func (a *api) translateBody(w http.ResponseWriter, r *http.Request, dir rot.Direction) {
	c, err := shiftParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	data, status, err := a.readBody(w, r)
	if err != nil {
		writeError(w, r, status, err)
		return
	}
	if !utf8.Valid(data) {
		writeError(w, r, http.StatusBadRequest, errInvalidUTF8)
		return
	}

	c.TranslateBytes(data, dir)

	ctxlog.Get(r.Context()).Debug("translated", "direction", dir, "shift", c.Shift(), "len", len(data))
	write(w, r, http.StatusOK, contentTypeText, data)
}

type newMessage struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func (a *api) createMessage(w http.ResponseWriter, r *http.Request) {
	data, status, err := a.readBody(w, r)
	if err != nil {
		writeError(w, r, status, err)
		return
	}

	var req newMessage
	if err := json.Unmarshal(data, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode message: %w", err))
		return
	}

	kind, err := store.ParseKind(req.Kind)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if req.Text == "" {
		writeError(w, r, http.StatusBadRequest, errMissingText)
		return
	}

	m, err := store.Put(store.Message{Kind: kind, Text: req.Text})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	ctxlog.Get(r.Context()).Info("message stored", "id", m.ID, "kind", m.Kind)
	writeJSON(w, r, http.StatusCreated, m)
}

func (a *api) listMessages(w http.ResponseWriter, r *http.Request) {
	list := store.List()
	if list == nil {
		list = []store.Message{}
	}
	writeJSON(w, r, http.StatusOK, list)
}

func (a *api) message(w http.ResponseWriter, r *http.Request) (store.Message, bool) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return store.Message{}, false
	}

	m, err := store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, err)
		return store.Message{}, false
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return store.Message{}, false
	}
	return m, true
}

func (a *api) getMessage(w http.ResponseWriter, r *http.Request) {
	if m, ok := a.message(w, r); ok {
		writeJSON(w, r, http.StatusOK, m)
	}
}

// translation is an unsaved translated message: it has no ID or creation time.
type translation struct {
	Kind store.Kind `json:"kind"`
	Text string     `json:"text"`
}

// translateMessage flips a stored message to the other kind. With save=true
// the result is stored as a new message.
func (a *api) translateMessage(w http.ResponseWriter, r *http.Request) {
	c, err := shiftParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	save := false
	if v := r.URL.Query().Get("save"); v != "" {
		save, err = strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Errorf("save: %w", err))
			return
		}
	}

	m, ok := a.message(w, r)
	if !ok {
		return
	}

	out := m.Translate(c)
	if !save {
		writeJSON(w, r, http.StatusOK, translation{Kind: out.Kind, Text: out.Text})
		return
	}

	out, err = store.Put(out)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	ctxlog.Get(r.Context()).Info("message translated", "from", m.ID, "to", out.ID, "kind", out.Kind)
	writeJSON(w, r, http.StatusCreated, out)
}

func (a *api) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	err = store.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	ctxlog.Get(r.Context()).Info("message deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
