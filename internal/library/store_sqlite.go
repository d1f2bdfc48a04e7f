// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ledong198910/blogtruyentranhai/internal/comic"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/database/schema"
	"github.com/ledong198910/blogtruyentranhai/internal/users/auth"
)

// SQLiteStore is the document-table implementation of [Store].
//
// Each comic and user is stored as a single JSON document row; Upsert
// replaces the whole row, which is exactly the last-write-wins contract the
// engines rely on.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wires a [Store] over the local library database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// LoadAll implements [Store]. Rows come back in insertion order (rowid), so
// snapshot order is stable across reloads.
func (store *SQLiteStore) LoadAll(ctx context.Context) ([]comic.Comic, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY rowid ASC`,
		schema.LibraryComic.Doc, schema.LibraryComic.Table)

	rows, err := store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("library: load_all: %w", err)
	}
	defer rows.Close()

	comics := make([]comic.Comic, 0)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("library: scan_comic: %w", err)
		}

		var c comic.Comic
		if err := json.Unmarshal([]byte(doc), &c); err != nil {
			return nil, fmt.Errorf("library: decode_comic: %w", err)
		}
		comics = append(comics, c)
	}

	return comics, rows.Err()
}

// Upsert implements [Store].
func (store *SQLiteStore) Upsert(ctx context.Context, c comic.Comic) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("library: encode_comic: %w", err)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?)
		 ON CONFLICT(%s) DO UPDATE SET %s = excluded.%s, %s = excluded.%s`,
		schema.LibraryComic.Table,
		schema.LibraryComic.ID, schema.LibraryComic.Doc, schema.LibraryComic.UpdatedAt,
		schema.LibraryComic.ID,
		schema.LibraryComic.Doc, schema.LibraryComic.Doc,
		schema.LibraryComic.UpdatedAt, schema.LibraryComic.UpdatedAt,
	)

	if _, err := store.db.ExecContext(ctx, query, c.ID, string(doc), time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("library: upsert_comic: %w", err)
	}
	return nil
}

// Remove implements [Store].
func (store *SQLiteStore) Remove(ctx context.Context, comicID string) ([]comic.Comic, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`,
		schema.LibraryComic.Table, schema.LibraryComic.ID)

	if _, err := store.db.ExecContext(ctx, query, comicID); err != nil {
		return nil, fmt.Errorf("library: remove_comic: %w", err)
	}

	return store.LoadAll(ctx)
}

// UpsertUser implements [Store].
func (store *SQLiteStore) UpsertUser(ctx context.Context, user auth.User) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("library: encode_user: %w", err)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?)
		 ON CONFLICT(%s) DO UPDATE SET %s = excluded.%s, %s = excluded.%s`,
		schema.LibraryAccount.Table,
		schema.LibraryAccount.ID, schema.LibraryAccount.Doc, schema.LibraryAccount.UpdatedAt,
		schema.LibraryAccount.ID,
		schema.LibraryAccount.Doc, schema.LibraryAccount.Doc,
		schema.LibraryAccount.UpdatedAt, schema.LibraryAccount.UpdatedAt,
	)

	if _, err := store.db.ExecContext(ctx, query, user.ID, string(doc), time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("library: upsert_user: %w", err)
	}
	return nil
}

// FindUserByUsername implements [Store]. The account table is a document
// table, so the lookup scans decoded records; local libraries hold a handful
// of profiles at most.
func (store *SQLiteStore) FindUserByUsername(ctx context.Context, username string) (*auth.User, bool, error) {
	users, err := store.loadUsers(ctx)
	if err != nil {
		return nil, false, err
	}

	for i := range users {
		if users[i].Username == username {
			return &users[i], true, nil
		}
	}
	return nil, false, nil
}

// loadUsers returns the full user collection in insertion order.
func (store *SQLiteStore) loadUsers(ctx context.Context) ([]auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY rowid ASC`,
		schema.LibraryAccount.Doc, schema.LibraryAccount.Table)

	rows, err := store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("library: load_users: %w", err)
	}
	defer rows.Close()

	users := make([]auth.User, 0)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("library: scan_user: %w", err)
		}

		var u auth.User
		if err := json.Unmarshal([]byte(doc), &u); err != nil {
			return nil, fmt.Errorf("library: decode_user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
