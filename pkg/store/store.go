// Package store caches finished analysis payloads in an embedded
// BadgerDB so repeated reads of the same group do not re-run the whole
// pipeline.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/growthmesh/refgraph/pkg/types"
)

// ErrNotFound is returned when no payload exists for a group.
var ErrNotFound = errors.New("payload not found")

// Config holds store configuration.
type Config struct {
	// Path is the directory for database files. Ignored in memory mode.
	Path string
	// InMemory keeps everything in RAM, for tests.
	InMemory bool
	// TTL expires cached payloads. Zero keeps them until overwritten.
	TTL time.Duration
}

// Store is a payload cache keyed by group id. Safe for concurrent use.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// New opens the store. A nil logger disables Badger's internal logging.
func New(cfg Config, logger *slog.Logger) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("store path is required for persistent mode")
		}
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &Store{db: db, ttl: cfg.TTL}, nil
}

func payloadKey(groupID string) []byte {
	return []byte("payload:" + groupID)
}

// Put caches the payload for a group, replacing any previous one.
func (s *Store) Put(ctx context.Context, groupID string, payload *types.AnalysisPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(payloadKey(groupID), raw)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Get returns the cached payload for a group, or ErrNotFound.
func (s *Store) Get(ctx context.Context, groupID string) (*types.AnalysisPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(payloadKey(groupID))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: group %s", ErrNotFound, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	payload := &types.AnalysisPayload{}
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return payload, nil
}

// Delete removes the cached payload for a group. Deleting a missing
// group is not an error.
func (s *Store) Delete(ctx context.Context, groupID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(payloadKey(groupID))
	})
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
