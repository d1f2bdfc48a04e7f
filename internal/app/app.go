// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

/*
Package app holds the application state container and the orchestrator that
routes reader events through the engines.

# State Model

All mutable state lives in one explicit [State] value owned by the [App].
Event handlers never mutate a comic or user in place: an engine computes the
whole next value, the handler swaps it into the state, and persistence runs
behind the swap. The in-memory value is authoritative the moment it is
swapped in.

# Concurrency

The App is driven by a single event loop (the UI shell); its methods are not
safe for concurrent use. The only background work is the fire-and-forget
persistence owned by the engagement service.
*/
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/ledong198910/blogtruyentranhai/internal/comic"
	"github.com/ledong198910/blogtruyentranhai/internal/engage"
	"github.com/ledong198910/blogtruyentranhai/internal/library"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/apperr"
	"github.com/ledong198910/blogtruyentranhai/internal/session"
	"github.com/ledong198910/blogtruyentranhai/internal/users/auth"
	"github.com/ledong198910/blogtruyentranhai/internal/view"
)

// # State Container

// State is the single container for everything the shell renders from.
type State struct {
	// Comics is the library snapshot. Engines return whole replacement
	// values; an updated comic fully supersedes its previous entry.
	Comics []comic.Comic

	// CurrentUser is the active profile, or nil when signed out.
	CurrentUser *auth.User

	// OpenComicID / OpenChapterID identify the active selection. An empty
	// OpenComicID means the reader is browsing the library view.
	OpenComicID   string
	OpenChapterID string

	// Browse selection: free-text query, its scope, the active category,
	// and the sort option.
	Query    string
	Scope    view.Scope
	Category string
	Sort     view.Sort

	// Resume is the pending resume candidate, offered at most once after
	// bootstrap. Reaching the pointed comic by any path consumes it.
	Resume *session.ResumeCandidate
}

// # Orchestrator

// App wires the engines to the state container and exposes one method per
// reader event.
type App struct {
	store    library.Store
	tracker  *session.Tracker
	identity *auth.Service
	engage   *engage.Service
	composer *view.Composer
	logger   *slog.Logger
	now      func() int64

	state State
}

// New wires the application orchestrator with a wall-clock millisecond stamp.
func New(
	store library.Store,
	tracker *session.Tracker,
	identity *auth.Service,
	engageService *engage.Service,
	composer *view.Composer,
	logger *slog.Logger,
) *App {
	return NewAt(store, tracker, identity, engageService, composer, logger,
		func() int64 { return time.Now().UnixMilli() })
}

// NewAt is [New] with an injected clock. Used by tests.
func NewAt(
	store library.Store,
	tracker *session.Tracker,
	identity *auth.Service,
	engageService *engage.Service,
	composer *view.Composer,
	logger *slog.Logger,
	now func() int64,
) *App {
	return &App{
		store:    store,
		tracker:  tracker,
		identity: identity,
		engage:   engageService,
		composer: composer,
		logger:   logger,
		now:      now,
		state: State{
			Scope:    view.ScopeAll,
			Category: view.CategoryAll,
			Sort:     view.SortLatest,
		},
	}
}

// Bootstrap loads the library snapshot, restores the device profile, and
// resolves the session pointer into a resume candidate.
//
// The candidate is only offered against a non-empty snapshot and while no
// comic is open yet; a stale pointer resolves to nothing without an error.
func (a *App) Bootstrap(ctx context.Context) error {
	comics, err := a.store.LoadAll(ctx)
	if err != nil {
		return apperr.Persistence(err)
	}
	a.state.Comics = comics

	if user, ok := a.identity.Active(); ok {
		a.state.CurrentUser = user
	}

	if len(comics) > 0 && a.state.OpenComicID == "" {
		if candidate, ok := a.tracker.Resolve(comics); ok {
			a.state.Resume = candidate
		}
	}

	a.logger.Info("application bootstrapped",
		slog.Int("comics", len(comics)),
		slog.Bool("signed_in", a.state.CurrentUser != nil),
		slog.Bool("resume_offered", a.state.Resume != nil),
	)
	return nil
}

// State returns the current state container. The comics slice is shared with
// the App; treat it as read-only.
func (a *App) State() State {
	return a.state
}

// # Derived Views

// VisibleComics returns the filtered, sorted list for the current browse
// selection.
func (a *App) VisibleComics() []comic.Comic {
	return a.composer.Compose(
		a.state.Comics,
		a.state.Query,
		a.state.Scope,
		a.state.Category,
		a.state.Sort,
		a.state.CurrentUser,
	)
}

// Categories returns the ordered selectable category list for the current
// snapshot and profile.
func (a *App) Categories() []string {
	return a.composer.Categories(a.state.Comics, a.state.CurrentUser)
}

// # Browse Selection

// SetQuery replaces the free-text search query.
func (a *App) SetQuery(query string) { a.state.Query = query }

// SetScope replaces the search scope.
func (a *App) SetScope(scope view.Scope) { a.state.Scope = scope }

// SetCategory replaces the active category.
func (a *App) SetCategory(category string) { a.state.Category = category }

// SetSort replaces the sort option.
func (a *App) SetSort(sortOption view.Sort) { a.state.Sort = sortOption }

// # Navigation

// OpenComic makes the comic the active selection and records the view.
func (a *App) OpenComic(comicID string) error {
	idx := a.findComic(comicID)
	if idx < 0 {
		return apperr.NotFound("Comic")
	}

	next := a.engage.OpenComic(a.state.Comics[idx])
	a.state.Comics[idx] = next

	a.state.OpenComicID = comicID
	a.state.OpenChapterID = ""
	a.consumeResume(comicID)
	a.recordPointer(comicID, "")
	return nil
}

// OpenChapter enters a chapter of the comic: the chapter view is counted, the
// last-read marker is stamped at page 0, and a signed-in reader earns the
// read reward. Resuming lands here through the same path as manual
// navigation, so a resumed read counts like a fresh one.
func (a *App) OpenChapter(comicID, chapterID string) error {
	idx := a.findComic(comicID)
	if idx < 0 {
		return apperr.NotFound("Comic")
	}

	next, rewarded, err := a.engage.ReadChapter(a.state.Comics[idx], chapterID, a.state.CurrentUser)
	if err != nil {
		return err
	}
	a.state.Comics[idx] = next

	if rewarded != nil {
		a.state.CurrentUser = rewarded
		a.mirrorProfile(rewarded)
	}

	a.state.OpenComicID = comicID
	a.state.OpenChapterID = chapterID
	a.consumeResume(comicID)
	a.recordPointer(comicID, chapterID)
	return nil
}

// CloseComic returns to the library view. The session pointer keeps the last
// selection so the next launch can offer to resume it.
func (a *App) CloseComic() {
	a.state.OpenComicID = ""
	a.state.OpenChapterID = ""
}

// # Resume

// AcceptResume navigates to the pending resume candidate through the normal
// open paths, then discards it. Without a pending candidate it is a no-op.
func (a *App) AcceptResume() error {
	candidate := a.state.Resume
	if candidate == nil {
		return nil
	}
	a.state.Resume = nil

	if err := a.OpenComic(candidate.Comic.ID); err != nil {
		return err
	}
	if candidate.Chapter != nil {
		return a.OpenChapter(candidate.Comic.ID, candidate.Chapter.ID)
	}
	return nil
}

// DismissResume discards the pending candidate and clears the persisted
// pointer so it is not offered again on the next launch.
func (a *App) DismissResume() {
	if a.state.Resume == nil {
		return
	}
	a.state.Resume = nil

	if err := a.tracker.Clear(); err != nil {
		a.logger.Warn("session pointer clear failed", slog.Any("error", err))
	}
}

// consumeResume discards the pending candidate once the reader reaches the
// pointed comic by any path, even into a different chapter.
func (a *App) consumeResume(comicID string) {
	if a.state.Resume != nil && a.state.Resume.Comic.ID == comicID {
		a.state.Resume = nil
	}
}

// recordPointer overwrites the persisted session pointer. Session writes are
// best-effort: a failure costs the next resume offer, nothing else.
func (a *App) recordPointer(comicID, chapterID string) {
	if err := a.tracker.Record(comicID, chapterID); err != nil {
		a.logger.Warn("session pointer write failed",
			slog.String("comic_id", comicID),
			slog.Any("error", err),
		)
	}
}

// mirrorProfile refreshes the device profile copy after an engine update.
func (a *App) mirrorProfile(user *auth.User) {
	if err := a.identity.Mirror(user); err != nil {
		a.logger.Warn("profile mirror failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}

// findComic returns the snapshot index of the comic, or -1.
func (a *App) findComic(comicID string) int {
	for i := range a.state.Comics {
		if a.state.Comics[i].ID == comicID {
			return i
		}
	}
	return -1
}
