// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package session_test

import (
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledong198910/blogtruyentranhai/internal/comic"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/kv"
	"github.com/ledong198910/blogtruyentranhai/internal/session"
)

func newTracker(t *testing.T) (*session.Tracker, *badger.DB) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	db, err := kv.OpenInMemory(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return session.NewTracker(db, logger), db
}

func snapshot() []comic.Comic {
	return []comic.Comic{
		{
			ID: "c1", Title: "Đảo Hải Tặc",
			Chapters: []comic.Chapter{
				{ID: "ch1", Title: "Chapter 1"},
				{ID: "ch2", Title: "Chapter 2"},
			},
		},
		{ID: "c2", Title: "Doraemon"},
	}
}

/*
TestTracker_RecordAndResolve covers the happy path: a recorded pointer
resolves to the comic and chapter it names.
*/
func TestTracker_RecordAndResolve(t *testing.T) {
	tracker, _ := newTracker(t)
	require.NoError(t, tracker.Record("c1", "ch2"))

	candidate, ok := tracker.Resolve(snapshot())

	require.True(t, ok)
	assert.Equal(t, "c1", candidate.Comic.ID)
	require.NotNil(t, candidate.Chapter)
	assert.Equal(t, "ch2", candidate.Chapter.ID)
}

/*
TestTracker_Overwrite asserts a second Record fully supersedes the first —
single active session, no history stack.
*/
func TestTracker_Overwrite(t *testing.T) {
	tracker, _ := newTracker(t)
	require.NoError(t, tracker.Record("c1", "ch1"))
	require.NoError(t, tracker.Record("c2", ""))

	candidate, ok := tracker.Resolve(snapshot())

	require.True(t, ok)
	assert.Equal(t, "c2", candidate.Comic.ID)
	assert.Nil(t, candidate.Chapter)
}

/*
TestTracker_DeletedComic asserts a pointer to a removed comic resolves to
nothing, silently.
*/
func TestTracker_DeletedComic(t *testing.T) {
	tracker, _ := newTracker(t)
	require.NoError(t, tracker.Record("gone", "ch1"))

	candidate, ok := tracker.Resolve(snapshot())

	assert.False(t, ok)
	assert.Nil(t, candidate)
}

/*
TestTracker_DeletedChapter asserts the pointer degrades to a comic-only
candidate when the chapter was removed since the last visit.
*/
func TestTracker_DeletedChapter(t *testing.T) {
	tracker, _ := newTracker(t)
	require.NoError(t, tracker.Record("c1", "ch9"))

	candidate, ok := tracker.Resolve(snapshot())

	require.True(t, ok)
	assert.Equal(t, "c1", candidate.Comic.ID)
	assert.Nil(t, candidate.Chapter)
}

/*
TestTracker_Clear asserts a cleared pointer no longer resolves.
*/
func TestTracker_Clear(t *testing.T) {
	tracker, _ := newTracker(t)
	require.NoError(t, tracker.Record("c1", "ch1"))
	require.NoError(t, tracker.Clear())

	_, ok := tracker.Resolve(snapshot())
	assert.False(t, ok)

	// Clearing an absent pointer stays a no-op.
	require.NoError(t, tracker.Clear())
}

/*
TestTracker_CorruptPointer asserts an unparseable stored value is treated as
absence, never a failure.
*/
func TestTracker_CorruptPointer(t *testing.T) {
	tracker, db := newTracker(t)
	require.NoError(t, kv.Set(db, "session:pointer", []byte("{not json")))

	pointer, ok := tracker.Load()

	assert.False(t, ok)
	assert.Nil(t, pointer)
}
