// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

/*
Package comic defines the core domain entities for the local library.

It manages serialised publications (truyện tranh) including metadata, chapter
organization, reading metrics, and the nested discussion threads attached to
comics and chapters.

Core Responsibility:

  - Catalogue: Defines statuses (Ongoing, Completed), tags, and chapter order.
  - Engagement: View counters, ratings, and the last-read progress marker.
  - Discussion: The recursive comment forest and its rewrite operations.

Every entity here is a plain value. Engines never mutate a snapshot in place;
they return a new value that fully supersedes the old one.
*/
package comic

import (
	"github.com/ledong198910/blogtruyentranhai/pkg/slice"
)

// # Domain Enums

// Status represents the publication status of a comic.
type Status string

const (
	// StatusOngoing indicates the publication is actively updating.
	StatusOngoing Status = "ongoing"

	// StatusCompleted indicates no further chapters are expected.
	StatusCompleted Status = "completed"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

// # Core Entities

// Comic is the central aggregate of the library domain.
//
// Timestamps are logical values in milliseconds since epoch so they survive
// the JSON export/import round-trip unchanged. Invariant: UpdatedAt >= CreatedAt.
type Comic struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"` // Order-insignificant for matching; display order = collection order

	// Chapters in reading order. Collection position is the only ordinal.
	Chapters []Chapter `json:"chapters,omitempty"`

	// Comments is the comic-level comment forest.
	Comments []Comment `json:"comments,omitempty"`

	// Ratings holds at most one entry per user (re-rating replaces).
	Ratings []Rating `json:"ratings,omitempty"`

	Status    Status `json:"status"`
	ViewCount int64  `json:"view_count,omitempty"` // Missing is treated as 0

	// LastRead is the resumable progress marker; nil when the comic has
	// never been opened into a chapter. It may carry a stale ChapterID
	// after a chapter deletion; consumers degrade gracefully.
	LastRead *ReadingProgress `json:"last_read,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Chapter is an ordered sequence of page images with its own comment thread.
type Chapter struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Pages     []string  `json:"pages,omitempty"` // Page image references, in reading order
	Comments  []Comment `json:"comments,omitempty"`
	ViewCount int64     `json:"view_count,omitempty"`
	CreatedAt int64     `json:"created_at"`
}

// ReadingProgress marks the last chapter a reader entered in a comic.
//
// ChapterTitle is denormalized at stamp time so history views render without
// resolving the chapter, even after the chapter itself is gone.
type ReadingProgress struct {
	ChapterID    string `json:"chapter_id"`
	ChapterTitle string `json:"chapter_title"`
	PageIndex    int    `json:"page_index"`
	Timestamp    int64  `json:"timestamp"`
}

// # Lookups

// FindChapter returns the index of the chapter with the given id, or -1.
func (c Comic) FindChapter(chapterID string) int {
	for i := range c.Chapters {
		if c.Chapters[i].ID == chapterID {
			return i
		}
	}
	return -1
}

// HasTag reports whether the comic carries the exact tag.
func (c Comic) HasTag(tag string) bool {
	return slice.Contains(c.Tags, tag)
}

// # Field Identifiers

// Global field names for validation and display mapping.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldStatus      = "status"
	FieldContent     = "content"
	FieldScore       = "score"
	FieldChapterID   = "chapter_id"
	FieldParentID    = "parent_id"
)
