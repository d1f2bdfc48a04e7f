// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

/*
Package engage produces the next value of a comic or user after an
engagement event (open, read, follow), then hands it to the Library Store
for persistence.

The [Recorder] holds the pure state transitions; the [Service] wraps them
with the fire-and-forget persistence described in the concurrency model:
failure to persist is logged, never rolled back, never retried.
*/
package engage

import (
	"time"

	"github.com/ledong198910/blogtruyentranhai/internal/comic"
	"github.com/ledong198910/blogtruyentranhai/internal/users/auth"
	"github.com/ledong198910/blogtruyentranhai/pkg/pointer"
)

// ReadExpReward is the fixed experience granted per chapter-read event
// (per chapter entry, not per page). Resuming into a chapter counts.
const ReadExpReward = 10

// Recorder computes engagement state transitions. Every method is a pure
// function from (current value, event) to next value; inputs are never
// mutated.
type Recorder struct {
	now func() int64
}

// NewRecorder returns a recorder stamping events with wall-clock
// milliseconds.
func NewRecorder() *Recorder {
	return &Recorder{now: func() int64 { return time.Now().UnixMilli() }}
}

// NewRecorderAt returns a recorder with an injected clock. Used by tests.
func NewRecorderAt(now func() int64) *Recorder {
	return &Recorder{now: now}
}

// OpenComic increments the comic-level view counter.
func (r *Recorder) OpenComic(c comic.Comic) comic.Comic {
	out := c
	out.ViewCount = c.ViewCount + 1
	return out
}

// ReadChapter increments the chapter's view counter and stamps the comic's
// last-read marker at page 0.
//
// Entering a chapter always resets PageIndex to the start; in-page scroll
// position is not tracked. An unknown chapterID returns the comic unchanged
// with found=false.
func (r *Recorder) ReadChapter(c comic.Comic, chapterID string) (comic.Comic, bool) {
	idx := c.FindChapter(chapterID)
	if idx < 0 {
		return c, false
	}

	out := c
	out.Chapters = make([]comic.Chapter, len(c.Chapters))
	copy(out.Chapters, c.Chapters)

	chapter := out.Chapters[idx]
	chapter.ViewCount++
	out.Chapters[idx] = chapter

	out.LastRead = pointer.To(comic.ReadingProgress{
		ChapterID:    chapter.ID,
		ChapterTitle: chapter.Title,
		PageIndex:    0,
		Timestamp:    r.now(),
	})

	return out, true
}

// GrantReadExp adds the fixed per-chapter reward to the user's experience.
func (r *Recorder) GrantReadExp(u auth.User) auth.User {
	out := u
	out.Exp = u.Exp + ReadExpReward
	return out
}

// ToggleFollow flips membership of comicID in the followed set, symmetric
// with the comment-like toggle.
func (r *Recorder) ToggleFollow(u auth.User, comicID string) auth.User {
	out := u

	for i, id := range u.FollowedComics {
		if id == comicID {
			if len(u.FollowedComics) == 1 {
				out.FollowedComics = nil
				return out
			}
			followed := make([]string, 0, len(u.FollowedComics)-1)
			followed = append(followed, u.FollowedComics[:i]...)
			out.FollowedComics = append(followed, u.FollowedComics[i+1:]...)
			return out
		}
	}

	followed := make([]string, len(u.FollowedComics), len(u.FollowedComics)+1)
	copy(followed, u.FollowedComics)
	out.FollowedComics = append(followed, comicID)
	return out
}
