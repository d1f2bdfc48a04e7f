// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

/*
Package session captures "what the reader was last viewing" across reloads
and safely resumes it against the current library snapshot.

Core Responsibility:

  - Capture: A single session pointer {comicID, chapterID?}, overwritten on
    every selection change. No history stack.
  - Resolution: Stale pointers are never errors — a deleted comic resolves to
    nothing, a deleted chapter degrades to a comic-only candidate.
  - Consumption: A resume candidate is offered at most once; the application
    layer clears it as soon as the reader reaches the content by any path.
*/
package session

import (
	"encoding/json"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/ledong198910/blogtruyentranhai/internal/comic"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/kv"
	"github.com/ledong198910/blogtruyentranhai/pkg/pointer"
)

// pointerKey holds the session pointer in the device KV store.
const pointerKey = "session:pointer"

// # Session Pointer

// Pointer identifies the last content the reader was viewing.
type Pointer struct {
	ComicID   string `json:"comic_id"`
	ChapterID string `json:"chapter_id,omitempty"`
}

// ResumeCandidate is a resolved pointer: the comic still exists; Chapter is
// nil when the pointed chapter was deleted since the last visit.
type ResumeCandidate struct {
	Comic   comic.Comic
	Chapter *comic.Chapter
}

// # Tracker

// Tracker persists and resolves the session pointer over the device KV store.
type Tracker struct {
	db     *badger.DB
	logger *slog.Logger
}

// NewTracker wires a tracker over the device KV store.
func NewTracker(db *badger.DB, logger *slog.Logger) *Tracker {
	return &Tracker{db: db, logger: logger}
}

// Record overwrites the session pointer with the current selection.
// Called whenever the active comic/chapter changes.
func (t *Tracker) Record(comicID, chapterID string) error {
	raw, err := json.Marshal(Pointer{ComicID: comicID, ChapterID: chapterID})
	if err != nil {
		return err
	}
	return kv.Set(t.db, pointerKey, raw)
}

// Load returns the persisted pointer, or ok=false when absent.
// A corrupt stored value reads as absent.
func (t *Tracker) Load() (*Pointer, bool) {
	raw, ok, err := kv.Get(t.db, pointerKey)
	if err != nil {
		t.logger.Warn("session pointer read failed, treating as unset", slog.Any("error", err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	p := &Pointer{}
	if err := json.Unmarshal(raw, p); err != nil {
		t.logger.Warn("session pointer corrupt, treating as unset", slog.Any("error", err))
		return nil, false
	}
	if p.ComicID == "" {
		return nil, false
	}

	return p, true
}

// Clear removes the persisted pointer. Called on dismiss, on deletion of the
// pointed comic, and once the resumed content becomes the active selection.
func (t *Tracker) Clear() error {
	return kv.Delete(t.db, pointerKey)
}

// Resolve looks up the persisted pointer against the snapshot.
//
// # Degradation
//
//   - No pointer, or the comic no longer exists → (nil, false), silently.
//   - Comic exists but the chapter is gone → candidate without chapter.
func (t *Tracker) Resolve(comics []comic.Comic) (*ResumeCandidate, bool) {
	p, ok := t.Load()
	if !ok {
		return nil, false
	}

	for i := range comics {
		if comics[i].ID != p.ComicID {
			continue
		}

		candidate := &ResumeCandidate{Comic: comics[i]}
		if p.ChapterID != "" {
			if idx := comics[i].FindChapter(p.ChapterID); idx >= 0 {
				// Copy the chapter so the candidate stays valid even if the
				// snapshot entry is superseded before the offer is answered.
				candidate.Chapter = pointer.To(comics[i].Chapters[idx])
			}
		}
		return candidate, true
	}

	// Stale pointer: the comic was deleted since the last visit.
	return nil, false
}
