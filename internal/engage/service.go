// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package engage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ledong198910/blogtruyentranhai/internal/comic"
	"github.com/ledong198910/blogtruyentranhai/internal/library"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/apperr"
	"github.com/ledong198910/blogtruyentranhai/internal/users/auth"
)

// persistTimeout bounds each fire-and-forget store write.
const persistTimeout = 5 * time.Second

// Service applies engagement transitions and persists the results.
//
// Writes are optimistic: the new in-memory value is authoritative the moment
// it is computed, and a failed store write only produces a log entry.
type Service struct {
	recorder *Recorder
	store    library.Store
	logger   *slog.Logger

	// wg tracks in-flight persistence calls so a shutdown can drain them.
	wg sync.WaitGroup
}

// NewService wires the engagement service.
func NewService(recorder *Recorder, store library.Store, logger *slog.Logger) *Service {
	return &Service{recorder: recorder, store: store, logger: logger}
}

// OpenComic applies the comic view-count increment and persists it.
func (service *Service) OpenComic(c comic.Comic) comic.Comic {
	next := service.recorder.OpenComic(c)
	service.persistComic(next)
	return next
}

// ReadChapter applies the chapter entry transition (chapter view count,
// last-read marker) and, when a user is signed in, the experience reward.
// Both resulting values are persisted fire-and-forget.
//
// Resuming into a chapter goes through this same path, so a resumed read
// earns the same reward as a manual one.
func (service *Service) ReadChapter(c comic.Comic, chapterID string, user *auth.User) (comic.Comic, *auth.User, error) {
	next, found := service.recorder.ReadChapter(c, chapterID)
	if !found {
		return c, user, apperr.NotFound("Chapter")
	}
	service.persistComic(next)

	if user == nil {
		return next, nil, nil
	}

	rewarded := service.recorder.GrantReadExp(*user)
	service.persistUser(rewarded)
	return next, &rewarded, nil
}

// ToggleFollow flips the followed-set membership for a signed-in user.
// Without a user the event is rejected before any state changes, so the
// shell can surface a sign-in prompt.
func (service *Service) ToggleFollow(user *auth.User, comicID string) (*auth.User, error) {
	if user == nil {
		return nil, apperr.Unauthorized("Sign in to follow comics")
	}

	next := service.recorder.ToggleFollow(*user, comicID)
	service.persistUser(next)
	return &next, nil
}

// PersistComic schedules a fire-and-forget write of an already-applied comic
// value. Used by the application layer for comment and rating rewrites that
// follow the same optimistic policy.
func (service *Service) PersistComic(c comic.Comic) {
	service.persistComic(c)
}

// PersistUser schedules a fire-and-forget write of an already-applied user
// value.
func (service *Service) PersistUser(u auth.User) {
	service.persistUser(u)
}

// Wait drains in-flight persistence calls. Called on shutdown.
func (service *Service) Wait() {
	service.wg.Wait()
}

// persistComic hands the new value to the Library Store without blocking the
// caller. Each write is a full-record upsert, so out-of-order completion is
// harmless: the last computed value wins.
func (service *Service) persistComic(c comic.Comic) {
	service.wg.Add(1)
	go func() {
		defer service.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := service.store.Upsert(ctx, c); err != nil {
			service.logger.Error("comic persistence failed",
				slog.String("comic_id", c.ID),
				slog.Any("error", err),
			)
		}
	}()
}

func (service *Service) persistUser(u auth.User) {
	service.wg.Add(1)
	go func() {
		defer service.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := service.store.UpsertUser(ctx, u); err != nil {
			service.logger.Error("user persistence failed",
				slog.String("user_id", u.ID),
				slog.Any("error", err),
			)
		}
	}()
}
