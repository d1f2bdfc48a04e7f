// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package engage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledong198910/blogtruyentranhai/internal/comic"
	"github.com/ledong198910/blogtruyentranhai/internal/engage"
	"github.com/ledong198910/blogtruyentranhai/internal/users/auth"
)

func fixedRecorder(at int64) *engage.Recorder {
	return engage.NewRecorderAt(func() int64 { return at })
}

/*
TestOpenComic asserts the comic-level view counter is incremented on a new
value and the input is untouched.
*/
func TestOpenComic(t *testing.T) {
	recorder := fixedRecorder(1000)
	original := comic.Comic{ID: "c1", ViewCount: 4}

	next := recorder.OpenComic(original)

	assert.Equal(t, int64(5), next.ViewCount)
	assert.Equal(t, int64(4), original.ViewCount)
}

/*
TestReadChapter_FirstRead covers a first read with missing counters on both
levels: the comic count stays untouched, the chapter count becomes 1, and
the marker starts at page 0.
*/
func TestReadChapter_FirstRead(t *testing.T) {
	recorder := fixedRecorder(7777)
	original := comic.Comic{
		ID: "c1",
		Chapters: []comic.Chapter{
			{ID: "ch1", Title: "Khởi Đầu"},
			{ID: "ch2", Title: "Tiếp Theo"},
		},
	}

	next, found := recorder.ReadChapter(original, "ch1")

	require.True(t, found)
	assert.Zero(t, next.ViewCount)
	assert.Equal(t, int64(1), next.Chapters[0].ViewCount)
	assert.Zero(t, next.Chapters[1].ViewCount)

	require.NotNil(t, next.LastRead)
	assert.Equal(t, "ch1", next.LastRead.ChapterID)
	assert.Equal(t, "Khởi Đầu", next.LastRead.ChapterTitle)
	assert.Zero(t, next.LastRead.PageIndex)
	assert.Equal(t, int64(7777), next.LastRead.Timestamp)

	// The input snapshot is untouched.
	assert.Zero(t, original.Chapters[0].ViewCount)
	assert.Nil(t, original.LastRead)
}

/*
TestReadChapter_OverwritesMarker asserts re-entering a chapter resets the
page index and refreshes the timestamp.
*/
func TestReadChapter_OverwritesMarker(t *testing.T) {
	original := comic.Comic{
		ID:       "c1",
		Chapters: []comic.Chapter{{ID: "ch1", Title: "Một"}, {ID: "ch2", Title: "Hai"}},
		LastRead: &comic.ReadingProgress{ChapterID: "ch1", ChapterTitle: "Một", PageIndex: 9, Timestamp: 50},
	}

	next, found := fixedRecorder(9000).ReadChapter(original, "ch2")

	require.True(t, found)
	assert.Equal(t, "ch2", next.LastRead.ChapterID)
	assert.Zero(t, next.LastRead.PageIndex)
	assert.Equal(t, int64(9000), next.LastRead.Timestamp)
}

/*
TestReadChapter_UnknownChapter asserts an unknown id is a found=false no-op.
*/
func TestReadChapter_UnknownChapter(t *testing.T) {
	original := comic.Comic{ID: "c1", Chapters: []comic.Chapter{{ID: "ch1"}}}

	next, found := fixedRecorder(1).ReadChapter(original, "ghost")

	assert.False(t, found)
	assert.Equal(t, original, next)
}

/*
TestGrantReadExp asserts the fixed +10 reward per chapter-read event.
*/
func TestGrantReadExp(t *testing.T) {
	recorder := fixedRecorder(1)
	user := auth.User{ID: "u1", Exp: 95}

	once := recorder.GrantReadExp(user)
	assert.Equal(t, int64(105), once.Exp)

	twice := recorder.GrantReadExp(once)
	assert.Equal(t, int64(115), twice.Exp)
	assert.Equal(t, int64(95), user.Exp)
}

/*
TestToggleFollow_Involution asserts following then unfollowing returns the
original followed set.
*/
func TestToggleFollow_Involution(t *testing.T) {
	recorder := fixedRecorder(1)
	user := auth.User{ID: "u1", FollowedComics: []string{"c9"}}

	followed := recorder.ToggleFollow(user, "c1")
	assert.Equal(t, []string{"c9", "c1"}, followed.FollowedComics)

	unfollowed := recorder.ToggleFollow(followed, "c1")
	assert.Equal(t, user.FollowedComics, unfollowed.FollowedComics)
}

/*
TestToggleFollow_NoDuplicates asserts toggling an already-followed comic
removes it rather than doubling it.
*/
func TestToggleFollow_NoDuplicates(t *testing.T) {
	recorder := fixedRecorder(1)
	user := auth.User{ID: "u1", FollowedComics: []string{"c1"}}

	next := recorder.ToggleFollow(user, "c1")

	assert.Empty(t, next.FollowedComics)
	assert.False(t, next.IsFollowing("c1"))
}
