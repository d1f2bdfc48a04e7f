// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package auth

import (
	"encoding/json"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/ledong198910/blogtruyentranhai/internal/platform/kv"
)

// profileKey holds the last-active profile in the device KV store.
const profileKey = "profile:active"

// KVProfileStore persists the active profile in the embedded Badger store.
type KVProfileStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// NewKVProfileStore wires a [ProfileStore] over the device KV store.
func NewKVProfileStore(db *badger.DB, logger *slog.Logger) *KVProfileStore {
	return &KVProfileStore{db: db, logger: logger}
}

// Save implements [ProfileStore].
func (store *KVProfileStore) Save(user *User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return kv.Set(store.db, profileKey, raw)
}

// Load implements [ProfileStore]. Parse failures degrade to "signed out".
func (store *KVProfileStore) Load() (*User, bool) {
	raw, ok, err := kv.Get(store.db, profileKey)
	if err != nil {
		store.logger.Warn("profile read failed, treating as signed out", slog.Any("error", err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	user := &User{}
	if err := json.Unmarshal(raw, user); err != nil {
		store.logger.Warn("profile value corrupt, treating as signed out", slog.Any("error", err))
		return nil, false
	}

	return user, true
}

// Clear implements [ProfileStore].
func (store *KVProfileStore) Clear() error {
	return kv.Delete(store.db, profileKey)
}
