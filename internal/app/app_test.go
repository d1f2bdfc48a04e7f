// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package app_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledong198910/blogtruyentranhai/internal/app"
	"github.com/ledong198910/blogtruyentranhai/internal/comic"
	"github.com/ledong198910/blogtruyentranhai/internal/engage"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/apperr"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/kv"
	"github.com/ledong198910/blogtruyentranhai/internal/rank"
	"github.com/ledong198910/blogtruyentranhai/internal/session"
	"github.com/ledong198910/blogtruyentranhai/internal/users/auth"
	"github.com/ledong198910/blogtruyentranhai/internal/view"
)

// clockStamp is the fixed logical time used by every harness.
const clockStamp = int64(5000)

// memoryStore is a slice-backed library.Store preserving insertion order.
type memoryStore struct {
	mu     sync.Mutex
	comics []comic.Comic
	users  map[string]auth.User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: map[string]auth.User{}}
}

func (s *memoryStore) LoadAll(context.Context) ([]comic.Comic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]comic.Comic, len(s.comics))
	copy(out, s.comics)
	return out, nil
}

func (s *memoryStore) Upsert(_ context.Context, c comic.Comic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comics {
		if s.comics[i].ID == c.ID {
			s.comics[i] = c
			return nil
		}
	}
	s.comics = append(s.comics, c)
	return nil
}

func (s *memoryStore) Remove(ctx context.Context, comicID string) ([]comic.Comic, error) {
	s.mu.Lock()
	kept := s.comics[:0]
	for _, c := range s.comics {
		if c.ID != comicID {
			kept = append(kept, c)
		}
	}
	s.comics = kept
	s.mu.Unlock()
	return s.LoadAll(ctx)
}

func (s *memoryStore) UpsertUser(_ context.Context, u auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *memoryStore) FindUserByUsername(_ context.Context, username string) (*auth.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			matched := u
			return &matched, true, nil
		}
	}
	return nil, false, nil
}

func (s *memoryStore) ExportAll(context.Context) (string, error) { return "", nil }
func (s *memoryStore) ImportAll(context.Context, string) error   { return nil }

func (s *memoryStore) comic(id string) (comic.Comic, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.comics {
		if c.ID == id {
			return c, true
		}
	}
	return comic.Comic{}, false
}

func (s *memoryStore) user(id string) (auth.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// harness wires a full application over in-memory stores.
type harness struct {
	app     *app.App
	store   *memoryStore
	tracker *session.Tracker
	engage  *engage.Service
}

func newHarness(t *testing.T, comics ...comic.Comic) *harness {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	db, err := kv.OpenInMemory(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := newMemoryStore()
	for _, c := range comics {
		require.NoError(t, store.Upsert(context.Background(), c))
	}

	tracker := session.NewTracker(db, logger)
	identity := auth.NewService(auth.NewKVProfileStore(db, logger), store, logger)
	engageService := engage.NewService(engage.NewRecorderAt(func() int64 { return clockStamp }), store, logger)

	return &harness{
		app: app.NewAt(store, tracker, identity, engageService, view.NewComposer("vi"), logger,
			func() int64 { return clockStamp }),
		store:   store,
		tracker: tracker,
		engage:  engageService,
	}
}

func (h *harness) bootstrap(t *testing.T) {
	t.Helper()
	require.NoError(t, h.app.Bootstrap(context.Background()))
}

func (h *harness) signIn(t *testing.T) *auth.User {
	t.Helper()
	user, err := h.app.Register(context.Background(), "taibui", "taibui@example.com", "matkhau123")
	require.NoError(t, err)
	return user
}

func (h *harness) signInAdmin(t *testing.T) *auth.User {
	t.Helper()
	user := h.signIn(t)
	user.Role = auth.RoleAdmin
	return user
}

func twoChapterComic() comic.Comic {
	return comic.Comic{
		ID:     "c1",
		Title:  "Đấu Phá",
		Author: "Thiên Tàm",
		Chapters: []comic.Chapter{
			{ID: "ch1", Title: "Chương 1"},
			{ID: "ch2", Title: "Chương 2"},
		},
		Status:    comic.StatusOngoing,
		CreatedAt: 100,
		UpdatedAt: 100,
	}
}

/*
TestBootstrap_OffersResume asserts a recorded pointer resolves into a resume
candidate and accepting it navigates through the normal open paths.
*/
func TestBootstrap_OffersResume(t *testing.T) {
	h := newHarness(t, twoChapterComic())
	require.NoError(t, h.tracker.Record("c1", "ch2"))
	h.bootstrap(t)

	state := h.app.State()
	require.NotNil(t, state.Resume)
	require.NotNil(t, state.Resume.Chapter)
	assert.Equal(t, "ch2", state.Resume.Chapter.ID)

	require.NoError(t, h.app.AcceptResume())
	h.engage.Wait()

	state = h.app.State()
	assert.Nil(t, state.Resume)
	assert.Equal(t, "c1", state.OpenComicID)
	assert.Equal(t, "ch2", state.OpenChapterID)

	// Resuming counts as a fresh read on both levels.
	assert.Equal(t, int64(1), state.Comics[0].ViewCount)
	assert.Equal(t, int64(1), state.Comics[0].Chapters[1].ViewCount)
}

/*
TestBootstrap_EmptyLibrary asserts no candidate is offered against an empty
snapshot even when a pointer is recorded.
*/
func TestBootstrap_EmptyLibrary(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.tracker.Record("c1", "ch1"))
	h.bootstrap(t)

	assert.Nil(t, h.app.State().Resume)
}

/*
TestResume_ConsumedByManualNavigation asserts manually opening the pointed
comic discards the candidate, even when the pointer named a chapter.
*/
func TestResume_ConsumedByManualNavigation(t *testing.T) {
	h := newHarness(t, twoChapterComic())
	require.NoError(t, h.tracker.Record("c1", "ch2"))
	h.bootstrap(t)
	require.NotNil(t, h.app.State().Resume)

	require.NoError(t, h.app.OpenComic("c1"))
	h.engage.Wait()

	assert.Nil(t, h.app.State().Resume)
	assert.Empty(t, h.app.State().OpenChapterID)
}

/*
TestResume_Dismiss asserts dismissal discards the candidate and the persisted
pointer, so a reload offers nothing.
*/
func TestResume_Dismiss(t *testing.T) {
	h := newHarness(t, twoChapterComic())
	require.NoError(t, h.tracker.Record("c1", ""))
	h.bootstrap(t)
	require.NotNil(t, h.app.State().Resume)

	h.app.DismissResume()

	assert.Nil(t, h.app.State().Resume)
	_, ok := h.tracker.Load()
	assert.False(t, ok)
}

/*
TestCapabilities asserts social affordances track the signed-in state.
*/
func TestCapabilities(t *testing.T) {
	h := newHarness(t, twoChapterComic())
	h.bootstrap(t)

	assert.Equal(t, app.Capabilities{}, h.app.Capabilities())

	h.signIn(t)
	assert.Equal(t, app.Capabilities{AddComment: true, ToggleLike: true, Follow: true, Rate: true}, h.app.Capabilities())

	require.NoError(t, h.app.Logout())
	assert.Equal(t, app.Capabilities{}, h.app.Capabilities())
}

/*
TestOpenChapter_RewardsReader asserts a signed-in reader earns the fixed
reward and both the comic and the user reach the store.
*/
func TestOpenChapter_RewardsReader(t *testing.T) {
	h := newHarness(t, twoChapterComic())
	h.bootstrap(t)
	user := h.signIn(t)

	require.NoError(t, h.app.OpenChapter("c1", "ch1"))
	h.engage.Wait()

	state := h.app.State()
	assert.Equal(t, int64(10), state.CurrentUser.Exp)
	require.NotNil(t, state.Comics[0].LastRead)
	assert.Equal(t, clockStamp, state.Comics[0].LastRead.Timestamp)

	stored, ok := h.store.user(user.ID)
	require.True(t, ok)
	assert.Equal(t, int64(10), stored.Exp)

	storedComic, ok := h.store.comic("c1")
	require.True(t, ok)
	assert.Equal(t, int64(1), storedComic.Chapters[0].ViewCount)
}

/*
TestPostComment_RequiresUser asserts commenting is gated on a profile.
*/
func TestPostComment_RequiresUser(t *testing.T) {
	h := newHarness(t, twoChapterComic())
	h.bootstrap(t)

	_, err := h.app.PostComment(app.CommentTarget{ComicID: "c1"}, "", "hay quá")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))
}

/*
TestPostComment_SnapshotsAuthorTitle asserts display fields are frozen at
post time: a later rank-system change leaves old comments untouched while new
comments pick it up.
*/
func TestPostComment_SnapshotsAuthorTitle(t *testing.T) {
	h := newHarness(t, twoChapterComic())
	h.bootstrap(t)
	user := h.signIn(t)
	user.Exp = 150

	_, err := h.app.UpdateProfile(context.Background(), "", rank.SystemTuTien)
	require.NoError(t, err)

	target := app.CommentTarget{ComicID: "c1"}
	first, err := h.app.PostComment(target, "", "chương này hay")
	require.NoError(t, err)
	assert.Equal(t, rank.Title(150, rank.SystemTuTien), first.UserTitle)

	_, err = h.app.UpdateProfile(context.Background(), "", rank.SystemVoHiep)
	require.NoError(t, err)

	second, err := h.app.PostComment(target, "", "hóng chương sau")
	require.NoError(t, err)
	assert.Equal(t, rank.Title(150, rank.SystemVoHiep), second.UserTitle)

	h.engage.Wait()
	forest := h.app.State().Comics[0].Comments
	require.Len(t, forest, 2)
	assert.Equal(t, rank.Title(150, rank.SystemTuTien), forest[0].UserTitle)
	assert.Equal(t, rank.Title(150, rank.SystemVoHiep), forest[1].UserTitle)
}

/*
TestPostComment_DanglingParent asserts a reply to a missing parent is rejected
and the forest is unchanged.
*/
func TestPostComment_DanglingParent(t *testing.T) {
	h := newHarness(t, twoChapterComic())
	h.bootstrap(t)
	h.signIn(t)

	_, err := h.app.PostComment(app.CommentTarget{ComicID: "c1"}, "ghost", "trả lời ai đây")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
	assert.Empty(t, h.app.State().Comics[0].Comments)
}

/*
TestPostComment_ChapterForest asserts a chapter target lands the node in that
chapter's forest, not the comic-level one.
*/
func TestPostComment_ChapterForest(t *testing.T) {
	h := newHarness(t, twoChapterComic())
	h.bootstrap(t)
	h.signIn(t)

	node, err := h.app.PostComment(app.CommentTarget{ComicID: "c1", ChapterID: "ch2"}, "", "trang cuối đẹp")
	require.NoError(t, err)
	h.engage.Wait()

	c := h.app.State().Comics[0]
	assert.Empty(t, c.Comments)
	assert.Empty(t, c.Chapters[0].Comments)
	require.Len(t, c.Chapters[1].Comments, 1)
	assert.Equal(t, node.ID, c.Chapters[1].Comments[0].ID)
	assert.NotEmpty(t, c.Chapters[1].Comments[0].ContentHTML)
}

/*
TestToggleCommentLike_RoundTrip asserts toggling twice restores the forest.
*/
func TestToggleCommentLike_RoundTrip(t *testing.T) {
	h := newHarness(t, twoChapterComic())
	h.bootstrap(t)
	h.signIn(t)

	target := app.CommentTarget{ComicID: "c1"}
	node, err := h.app.PostComment(target, "", "like thử")
	require.NoError(t, err)

	before := h.app.State().Comics[0].Comments

	require.NoError(t, h.app.ToggleCommentLike(target, node.ID))
	liked := comic.FindComment(h.app.State().Comics[0].Comments, node.ID)
	require.NotNil(t, liked)
	assert.Len(t, liked.Likes, 1)

	require.NoError(t, h.app.ToggleCommentLike(target, node.ID))
	h.engage.Wait()
	assert.Equal(t, before, h.app.State().Comics[0].Comments)
}

/*
TestRateComic asserts score bounds and the upsert-per-user semantics.
*/
func TestRateComic(t *testing.T) {
	h := newHarness(t, twoChapterComic())
	h.bootstrap(t)
	user := h.signIn(t)

	err := h.app.RateComic("c1", 0)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

	require.NoError(t, h.app.RateComic("c1", 5))
	require.NoError(t, h.app.RateComic("c1", 3))
	h.engage.Wait()

	ratings := h.app.State().Comics[0].Ratings
	require.Len(t, ratings, 1)
	assert.Equal(t, user.ID, ratings[0].UserID)
	assert.Equal(t, 3, ratings[0].Score)
}

/*
TestPublishChapter asserts the admin gate, the append, and the synchronous
persistence with the bumped UpdatedAt.
*/
func TestPublishChapter(t *testing.T) {
	h := newHarness(t, twoChapterComic())
	h.bootstrap(t)

	h.signIn(t)
	_, err := h.app.PublishChapter(context.Background(), "c1", "Chương 3", []string{"p1.jpg"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))

	h.app.State().CurrentUser.Role = auth.RoleAdmin
	next, err := h.app.PublishChapter(context.Background(), "c1", "Chương 3", []string{"p1.jpg"})
	require.NoError(t, err)

	require.Len(t, next.Chapters, 3)
	assert.Equal(t, "Chương 3", next.Chapters[2].Title)
	assert.Equal(t, clockStamp, next.UpdatedAt)

	stored, ok := h.store.comic("c1")
	require.True(t, ok)
	assert.Len(t, stored.Chapters, 3)
}

/*
TestDeleteComic_ClearsSession asserts deleting the pointed comic clears the
pending candidate, the persisted pointer, and the active selection.
*/
func TestDeleteComic_ClearsSession(t *testing.T) {
	h := newHarness(t, twoChapterComic())
	require.NoError(t, h.tracker.Record("c1", "ch1"))
	h.bootstrap(t)
	require.NotNil(t, h.app.State().Resume)

	h.signInAdmin(t)

	require.NoError(t, h.app.DeleteComic(context.Background(), "c1"))

	state := h.app.State()
	assert.Empty(t, state.Comics)
	assert.Nil(t, state.Resume)
	assert.Empty(t, state.OpenComicID)
	_, ok := h.tracker.Load()
	assert.False(t, ok)
}

/*
TestVisibleComics_FollowingCategory asserts the derived view reacts to a
follow toggle without a manual refresh.
*/
func TestVisibleComics_FollowingCategory(t *testing.T) {
	other := twoChapterComic()
	other.ID = "c2"
	other.Title = "Kiếm Lai"

	h := newHarness(t, twoChapterComic(), other)
	h.bootstrap(t)
	h.signIn(t)

	h.app.SetCategory(view.CategoryFollowing)
	assert.Empty(t, h.app.VisibleComics())

	require.NoError(t, h.app.ToggleFollow("c2"))
	h.engage.Wait()

	visible := h.app.VisibleComics()
	require.Len(t, visible, 1)
	assert.Equal(t, "c2", visible[0].ID)
}
