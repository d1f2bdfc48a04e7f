// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

/*
Package kv provides a managed embedded key-value store for device-scoped state.

It is used for the small, volatile-ish values that must survive a reload but
do not belong in the library database: the session pointer (last viewed
comic/chapter) and the active profile.

Core Responsibilities:

  - Locality: Runs fully in-process (Badger); no server to configure.
  - Durability: Values survive restarts under the configured directory.
  - Safety: Corrupt or missing values are surfaced as absence, never as
    fatal startup errors.
*/
package kv

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Open opens (creating if needed) the embedded store under dir.
//
// # Parameters
//   - dir: Filesystem directory for the Badger value log and LSM tree.
//   - logger: Structured logger; Badger's own chatter is bridged to Debug.
func Open(dir string, logger *slog.Logger) (*badger.DB, error) {
	options := badger.DefaultOptions(dir).
		WithLogger(&badgerLogger{logger: logger})

	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("kv: failed to open store at %s: %w", dir, err)
	}

	logger.Info("kv store opened", slog.String("dir", dir))
	return db, nil
}

// OpenInMemory opens a throwaway in-memory store. Used by tests.
func OpenInMemory(logger *slog.Logger) (*badger.DB, error) {
	options := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(&badgerLogger{logger: logger})

	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("kv: failed to open in-memory store: %w", err)
	}

	return db, nil
}

// # Typed Accessors

// Set stores the value under key, replacing any previous value.
func Set(db *badger.DB, key string, value []byte) error {
	err := db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("kv: set %s: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key, or ok=false when absent.
func Get(db *badger.DB, key string) ([]byte, bool, error) {
	var value []byte

	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv: get %s: %w", key, err)
	}

	return value, true, nil
}

// Delete removes the value stored under key. Deleting an absent key is a no-op.
func Delete(db *badger.DB, key string) error {
	err := db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("kv: delete %s: %w", key, err)
	}
	return nil
}

// badgerLogger adapts Badger's logger interface to slog.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf("badger: "+format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf("badger: "+format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf("badger: "+format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf("badger: "+format, args...))
}
