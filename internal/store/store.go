// Package store keeps plain and cipher text messages in a BoltDB file.
package store

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var (
	bucketMessages = []byte("messages")
)

var ErrNotFound = errors.New("message not found")

var db *bbolt.DB

func Open(config Config) {
	if db != nil {
		panic("store: already opened")
	}
	if config.File == "" {
		panic("store: file is required")
	}

	err := os.MkdirAll(filepath.Dir(config.File), 0755)
	if err != nil {
		panic(fmt.Errorf("store: create db dir: %w", err))
	}

	db, err = bbolt.Open(config.File, 0600, &bbolt.Options{
		Timeout: 30 * time.Second,
	})
	if err != nil {
		panic(fmt.Errorf("store: open bbolt db: %w", err))
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketMessages)
		if err != nil {
			return fmt.Errorf("create bucket %q: %w", bucketMessages, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		db = nil
		panic(fmt.Errorf("store: initialize buckets: %w", err))
	}
}

func Close() error {
	if db == nil {
		panic("store: not opened")
	}

	err := db.Close()
	db = nil
	if err != nil {
		return fmt.Errorf("store: close bbolt db: %w", err)
	}
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

func Closer() io.Closer {
	return closerFunc(Close)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Errorf("store: must: %w", err))
	}
	return v
}

func messages(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	b := tx.Bucket(bucketMessages)
	if b == nil {
		return nil, fmt.Errorf("store: messages bucket not found")
	}
	return b, nil
}

// Put stores m, assigning an ID and creation time when they are missing.
func Put(m Message) (Message, error) {
	if db == nil {
		panic("store: not opened")
	}
	if _, err := ParseKind(string(m.Kind)); err != nil {
		return Message{}, err
	}

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Created.IsZero() {
		m.Created = time.Now().UTC()
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		b, err := messages(tx)
		if err != nil {
			return err
		}
		return b.Put(m.ID[:], must(json.Marshal(m)))
	})
	if err != nil {
		return Message{}, fmt.Errorf("store: put message %s: %w", m.ID, err)
	}
	return m, nil
}

func Get(id uuid.UUID) (Message, error) {
	if db == nil {
		panic("store: not opened")
	}

	var m Message
	err := db.View(func(tx *bbolt.Tx) error {
		b, err := messages(tx)
		if err != nil {
			return err
		}

		data := b.Get(id[:])
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &m)
	})
	if err != nil {
		return Message{}, fmt.Errorf("store: get message %s: %w", id, err)
	}
	return m, nil
}

func Delete(id uuid.UUID) error {
	if db == nil {
		panic("store: not opened")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		b, err := messages(tx)
		if err != nil {
			return err
		}

		if b.Get(id[:]) == nil {
			return ErrNotFound
		}
		return b.Delete(id[:])
	})
	if err != nil {
		return fmt.Errorf("store: delete message %s: %w", id, err)
	}
	return nil
}

var errStop = fmt.Errorf("stop iteration")

// All iterates over the stored messages in key order.
func All() iter.Seq2[uuid.UUID, Message] {
	if db == nil {
		panic("store: not opened")
	}

	return func(yield func(uuid.UUID, Message) bool) {
		err := db.View(func(tx *bbolt.Tx) error {
			b, err := messages(tx)
			if err != nil {
				return err
			}

			return b.ForEach(func(k, v []byte) error {
				var m Message
				err := json.Unmarshal(v, &m)
				if err != nil {
					return fmt.Errorf("store: unmarshal message %x: %w", k, err)
				}

				if !yield(m.ID, m) {
					return errStop
				}
				return nil
			})
		})

		if err != nil {
			if errors.Is(err, errStop) {
				return
			}
			panic(fmt.Errorf("store: get all messages: %w", err))
		}
	}
}

// List returns all messages, oldest first.
func List() []Message {
	var list []Message
	for _, m := range All() {
		list = append(list, m)
	}

	slices.SortStableFunc(list, func(a, b Message) int {
		return a.Created.Compare(b.Created)
	})
	return list
}
