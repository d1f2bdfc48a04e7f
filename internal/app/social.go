// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package app

import (
	"github.com/ledong198910/blogtruyentranhai/internal/comic"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/apperr"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/ugc"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/validate"
	"github.com/ledong198910/blogtruyentranhai/pkg/uuidv7"
)

// maxCommentLen bounds a comment body in Unicode characters.
const maxCommentLen = 2000

// CommentTarget addresses one of a comic's two comment forests. An empty
// ChapterID targets the comic-level forest.
type CommentTarget struct {
	ComicID   string
	ChapterID string
}

// Capabilities tells the shell which social affordances to render for the
// current profile. Browsing and reading are never gated.
type Capabilities struct {
	AddComment bool `json:"add_comment"`
	ToggleLike bool `json:"toggle_like"`
	Follow     bool `json:"follow"`
	Rate       bool `json:"rate"`
}

// Capabilities derives the affordance set from the signed-in state.
func (a *App) Capabilities() Capabilities {
	signedIn := a.state.CurrentUser != nil
	return Capabilities{
		AddComment: signedIn,
		ToggleLike: signedIn,
		Follow:     signedIn,
		Rate:       signedIn,
	}
}

// PostComment creates a comment under the target forest.
//
// The author display fields and the sanitized HTML rendering are snapshotted
// onto the node at post time; later profile or rank changes never rewrite
// them. An empty parentID posts at the top level; a parentID matching no node
// is rejected so a reply cannot silently lose its thread.
func (a *App) PostComment(target CommentTarget, parentID, content string) (comic.Comment, error) {
	user := a.state.CurrentUser
	if user == nil {
		return comic.Comment{}, apperr.Unauthorized("Sign in to comment")
	}

	v := &validate.Validator{}
	err := v.
		Required(comic.FieldContent, content).
		MaxLen(comic.FieldContent, content, maxCommentLen).
		Err()
	if err != nil {
		return comic.Comment{}, err
	}

	idx := a.findComic(target.ComicID)
	if idx < 0 {
		return comic.Comment{}, apperr.NotFound("Comic")
	}
	current := a.state.Comics[idx]

	node := comic.Comment{
		ID:             uuidv7.New(),
		UserID:         user.ID,
		Username:       user.Username,
		UserAvatar:     user.Avatar,
		UserTitle:      user.DisplayTitle(),
		UserRankSystem: string(user.RankSystem),
		Content:        content,
		ContentHTML:    ugc.Render(content),
		CreatedAt:      a.now(),
	}

	next, err := attachComment(current, target.ChapterID, parentID, node)
	if err != nil {
		return comic.Comment{}, err
	}

	a.state.Comics[idx] = next
	a.engage.PersistComic(next)
	return node, nil
}

// ToggleCommentLike flips the current user's like on the target comment. The
// rewrite is idempotent over round-trips: toggling twice restores the forest.
func (a *App) ToggleCommentLike(target CommentTarget, commentID string) error {
	user := a.state.CurrentUser
	if user == nil {
		return apperr.Unauthorized("Sign in to like comments")
	}

	idx := a.findComic(target.ComicID)
	if idx < 0 {
		return apperr.NotFound("Comic")
	}
	current := a.state.Comics[idx]

	next := current
	if target.ChapterID == "" {
		next.Comments = comic.ToggleLike(current.Comments, commentID, user.ID)
	} else {
		chapterIdx := current.FindChapter(target.ChapterID)
		if chapterIdx < 0 {
			return apperr.NotFound("Chapter")
		}
		next.Chapters = make([]comic.Chapter, len(current.Chapters))
		copy(next.Chapters, current.Chapters)

		chapter := next.Chapters[chapterIdx]
		chapter.Comments = comic.ToggleLike(chapter.Comments, commentID, user.ID)
		next.Chapters[chapterIdx] = chapter
	}

	a.state.Comics[idx] = next
	a.engage.PersistComic(next)
	return nil
}

// ToggleFollow flips the followed state of the comic for the current user.
func (a *App) ToggleFollow(comicID string) error {
	next, err := a.engage.ToggleFollow(a.state.CurrentUser, comicID)
	if err != nil {
		return err
	}

	a.state.CurrentUser = next
	a.mirrorProfile(next)
	return nil
}

// RateComic upserts the current user's score for the comic. Re-rating
// replaces the previous score rather than adding a second entry.
func (a *App) RateComic(comicID string, score int) error {
	user := a.state.CurrentUser
	if user == nil {
		return apperr.Unauthorized("Sign in to rate comics")
	}

	v := &validate.Validator{}
	if err := v.Range(comic.FieldScore, score, 1, 5).Err(); err != nil {
		return err
	}

	idx := a.findComic(comicID)
	if idx < 0 {
		return apperr.NotFound("Comic")
	}

	next := comic.Rate(a.state.Comics[idx], user.ID, score, a.now())
	a.state.Comics[idx] = next
	a.engage.PersistComic(next)
	return nil
}

// attachComment rewrites the addressed forest with the new node appended
// under parentID.
func attachComment(current comic.Comic, chapterID, parentID string, node comic.Comment) (comic.Comic, error) {
	next := current

	if chapterID == "" {
		forest, found := comic.AddReply(current.Comments, parentID, node)
		if !found {
			return current, apperr.NotFound("Parent comment")
		}
		next.Comments = forest
		return next, nil
	}

	chapterIdx := current.FindChapter(chapterID)
	if chapterIdx < 0 {
		return current, apperr.NotFound("Chapter")
	}

	forest, found := comic.AddReply(current.Chapters[chapterIdx].Comments, parentID, node)
	if !found {
		return current, apperr.NotFound("Parent comment")
	}

	next.Chapters = make([]comic.Chapter, len(current.Chapters))
	copy(next.Chapters, current.Chapters)

	chapter := next.Chapters[chapterIdx]
	chapter.Comments = forest
	next.Chapters[chapterIdx] = chapter
	return next, nil
}
