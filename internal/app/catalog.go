// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package app

import (
	"context"
	"log/slog"

	"github.com/ledong198910/blogtruyentranhai/internal/comic"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/apperr"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/validate"
	"github.com/ledong198910/blogtruyentranhai/pkg/uuidv7"
)

// Catalogue management is the one place writes are synchronous: an explicit
// save by the catalogue owner must report its failure instead of logging it
// away like the optimistic engagement writes do.

const (
	maxTitleLen       = 255
	maxAuthorLen      = 255
	maxDescriptionLen = 4000
)

// SaveComic creates or updates a comic's metadata. A draft without an id is
// created; otherwise the record with that id is replaced wholesale.
func (a *App) SaveComic(ctx context.Context, draft comic.Comic) (comic.Comic, error) {
	if err := a.requireAdmin(); err != nil {
		return comic.Comic{}, err
	}

	if draft.Status == "" {
		draft.Status = comic.StatusOngoing
	}

	v := &validate.Validator{}
	err := v.
		Required(comic.FieldTitle, draft.Title).
		MaxLen(comic.FieldTitle, draft.Title, maxTitleLen).
		Required(comic.FieldAuthor, draft.Author).
		MaxLen(comic.FieldAuthor, draft.Author, maxAuthorLen).
		MaxLen(comic.FieldDescription, draft.Description, maxDescriptionLen).
		Custom(comic.FieldStatus, !draft.Status.IsValid(), "Unknown status").
		Err()
	if err != nil {
		return comic.Comic{}, err
	}

	now := a.now()
	if draft.ID == "" {
		draft.ID = uuidv7.New()
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now

	if err := a.store.Upsert(ctx, draft); err != nil {
		return comic.Comic{}, apperr.Persistence(err)
	}

	if idx := a.findComic(draft.ID); idx >= 0 {
		a.state.Comics[idx] = draft
	} else {
		a.state.Comics = append(a.state.Comics, draft)
	}

	a.logger.Info("comic saved", slog.String("comic_id", draft.ID))
	return draft, nil
}

// PublishChapter appends a chapter to the comic and bumps UpdatedAt so the
// comic surfaces under the latest-first sort.
func (a *App) PublishChapter(ctx context.Context, comicID, title string, pages []string) (comic.Comic, error) {
	if err := a.requireAdmin(); err != nil {
		return comic.Comic{}, err
	}

	v := &validate.Validator{}
	err := v.
		Required(comic.FieldTitle, title).
		MaxLen(comic.FieldTitle, title, maxTitleLen).
		Err()
	if err != nil {
		return comic.Comic{}, err
	}

	idx := a.findComic(comicID)
	if idx < 0 {
		return comic.Comic{}, apperr.NotFound("Comic")
	}
	current := a.state.Comics[idx]

	now := a.now()
	chapter := comic.Chapter{
		ID:        uuidv7.New(),
		Title:     title,
		Pages:     pages,
		CreatedAt: now,
	}

	next := current
	next.Chapters = make([]comic.Chapter, len(current.Chapters), len(current.Chapters)+1)
	copy(next.Chapters, current.Chapters)
	next.Chapters = append(next.Chapters, chapter)
	next.UpdatedAt = now

	if err := a.store.Upsert(ctx, next); err != nil {
		return comic.Comic{}, apperr.Persistence(err)
	}

	a.state.Comics[idx] = next
	a.logger.Info("chapter published",
		slog.String("comic_id", comicID),
		slog.String("chapter_id", chapter.ID),
	)
	return next, nil
}

// DeleteComic removes the comic from the library. A session pointer or resume
// candidate aimed at it is cleared so the reader is never offered a resume
// into deleted content.
func (a *App) DeleteComic(ctx context.Context, comicID string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	comics, err := a.store.Remove(ctx, comicID)
	if err != nil {
		return apperr.Persistence(err)
	}
	a.state.Comics = comics

	if a.state.Resume != nil && a.state.Resume.Comic.ID == comicID {
		a.state.Resume = nil
	}
	if a.state.OpenComicID == comicID {
		a.CloseComic()
	}
	if pointer, ok := a.tracker.Load(); ok && pointer.ComicID == comicID {
		if err := a.tracker.Clear(); err != nil {
			a.logger.Warn("session pointer clear failed", slog.Any("error", err))
		}
	}

	a.logger.Info("comic deleted", slog.String("comic_id", comicID))
	return nil
}

// # Portability

// ExportLibrary serializes the whole library to a portable payload.
func (a *App) ExportLibrary(ctx context.Context) (string, error) {
	return a.store.ExportAll(ctx)
}

// ImportLibrary replaces the library from an exported payload, then reloads
// the snapshot. A malformed payload leaves both the store and the in-memory
// state untouched.
func (a *App) ImportLibrary(ctx context.Context, payload string) error {
	if err := a.store.ImportAll(ctx, payload); err != nil {
		return err
	}

	comics, err := a.store.LoadAll(ctx)
	if err != nil {
		return apperr.Persistence(err)
	}
	a.state.Comics = comics
	a.state.Resume = nil

	// The previous selection may not exist in the imported library.
	if a.state.OpenComicID != "" && a.findComic(a.state.OpenComicID) < 0 {
		a.CloseComic()
	}

	a.logger.Info("library imported", slog.Int("comics", len(comics)))
	return nil
}

// requireAdmin gates catalogue management behind the admin role.
func (a *App) requireAdmin() error {
	user := a.state.CurrentUser
	if user == nil {
		return apperr.Unauthorized("Sign in to manage the catalogue")
	}
	if !user.IsAdmin() {
		return apperr.Unauthorized("Catalogue management requires the admin role")
	}
	return nil
}
