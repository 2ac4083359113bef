// Package badger is an embedded document store on top of BadgerDB.
// Documents are BSON encoded under "<collection>:<id>" keys.
package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/kudosboards/kudos/shared/logger"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	boardPrefix   = "board:"
	messagePrefix = "message:"
	userPrefix    = "user:"
)

// conditional updates are retried this many times on transaction conflicts
const maxConflictRetries = 50

type Storage struct {
	db *badger.DB
}

// New opens the database at path, or an in-memory one if path is empty.
func New(path string) (*Storage, error) {
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{})
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	logger.Log.Info("opening badger", "path", path, "in_memory", path == "")
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger is closed")
	}
	return nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// update runs fn in a read-write transaction, retrying on conflicts with
// concurrent writers to the same keys.
func (s *Storage) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		logger.Log.Debug("badger transaction conflict, retrying", "attempt", attempt+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Millisecond):
		}
	}
	return err
}

func getDoc(txn *badger.Txn, key string, out any) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return bson.Unmarshal(val, out)
	})
}

func setDoc(txn *badger.Txn, key string, doc any) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

// scan decodes every document under prefix, in key order.
func scan[T any](txn *badger.Txn, prefix string, fn func(doc T)) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		var doc T
		err := it.Item().Value(func(val []byte) error {
			return bson.Unmarshal(val, &doc)
		})
		if err != nil {
			return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
		}
		fn(doc)
	}
	return nil
}

// badgerLogger routes badger's internal logging to the service logger.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	logger.Log.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (badgerLogger) Warningf(format string, args ...any) {
	logger.Log.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (badgerLogger) Infof(format string, args ...any) {
	logger.Log.Debug(fmt.Sprintf(format, args...), "component", "badger")
}

func (badgerLogger) Debugf(format string, args ...any) {
	logger.Log.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
