// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package library

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ledong198910/blogtruyentranhai/internal/comic"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/apperr"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/database/schema"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/ugc"
	"github.com/ledong198910/blogtruyentranhai/internal/users/auth"
)

// exportVersion guards the payload shape; bumps only on breaking changes.
const exportVersion = 1

// exportPayload is the portable serialization of the whole library.
type exportPayload struct {
	Version    int           `json:"version"`
	ExportedAt int64         `json:"exported_at"`
	Comics     []comic.Comic `json:"comics"`
	Users      []auth.User   `json:"users,omitempty"`
}

// ExportAll implements [Store]. The payload reproduces the library
// comic-for-comic and comment-tree-for-comment-tree on re-import.
func (store *SQLiteStore) ExportAll(ctx context.Context) (string, error) {
	comics, err := store.LoadAll(ctx)
	if err != nil {
		return "", err
	}
	users, err := store.loadUsers(ctx)
	if err != nil {
		return "", err
	}

	payload := exportPayload{
		Version:    exportVersion,
		ExportedAt: time.Now().UnixMilli(),
		Comics:     comics,
		Users:      users,
	}

	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("library: encode_export: %w", err)
	}

	return string(raw), nil
}

// ImportAll implements [Store].
//
// # All-or-nothing
//
// The payload is fully decoded and validated before any row is touched, and
// the replacement happens inside a single transaction. A malformed payload
// or a failed write leaves the existing library exactly as it was.
func (store *SQLiteStore) ImportAll(ctx context.Context, payload string) error {
	decoded := exportPayload{}
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return apperr.MalformedImport(err)
	}
	if decoded.Version <= 0 || decoded.Version > exportVersion {
		return apperr.MalformedImport(fmt.Errorf("unsupported export version %d", decoded.Version))
	}
	for _, c := range decoded.Comics {
		if c.ID == "" {
			return apperr.MalformedImport(fmt.Errorf("comic without id"))
		}
	}

	// The payload is untrusted: snapshotted comment HTML is re-sanitized
	// before it can reach a rendered view.
	for i := range decoded.Comics {
		decoded.Comics[i].Comments = sanitizeForest(decoded.Comics[i].Comments)
		for j := range decoded.Comics[i].Chapters {
			decoded.Comics[i].Chapters[j].Comments = sanitizeForest(decoded.Comics[i].Chapters[j].Comments)
		}
	}

	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Persistence(err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UnixMilli()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, schema.LibraryComic.Table)); err != nil {
		return apperr.Persistence(err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, schema.LibraryAccount.Table)); err != nil {
		return apperr.Persistence(err)
	}

	insertComic := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?)`,
		schema.LibraryComic.Table,
		schema.LibraryComic.ID, schema.LibraryComic.Doc, schema.LibraryComic.UpdatedAt)

	for _, c := range decoded.Comics {
		doc, err := json.Marshal(c)
		if err != nil {
			return apperr.MalformedImport(err)
		}
		if _, err := tx.ExecContext(ctx, insertComic, c.ID, string(doc), now); err != nil {
			return apperr.Persistence(err)
		}
	}

	insertUser := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?)`,
		schema.LibraryAccount.Table,
		schema.LibraryAccount.ID, schema.LibraryAccount.Doc, schema.LibraryAccount.UpdatedAt)

	for _, u := range decoded.Users {
		doc, err := json.Marshal(u)
		if err != nil {
			return apperr.MalformedImport(err)
		}
		if _, err := tx.ExecContext(ctx, insertUser, u.ID, string(doc), now); err != nil {
			return apperr.Persistence(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Persistence(err)
	}

	return nil
}

// sanitizeForest strips unsafe markup from every ContentHTML in the forest,
// recursively. Raw Content is kept verbatim; only the rendered form is policed.
func sanitizeForest(forest []comic.Comment) []comic.Comment {
	for i := range forest {
		if forest[i].ContentHTML != "" {
			forest[i].ContentHTML = ugc.Sanitize(forest[i].ContentHTML)
		}
		forest[i].Replies = sanitizeForest(forest[i].Replies)
	}
	return forest
}
