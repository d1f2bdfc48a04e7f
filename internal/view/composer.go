// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

/*
Package view derives the browsable comic list and the selectable category
list from the library snapshot plus the reader's selection state.

Everything here is a pure function of its inputs: the composer never mutates
the snapshot, and the same inputs always produce the same ordering.
*/
package view

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ledong198910/blogtruyentranhai/internal/comic"
	"github.com/ledong198910/blogtruyentranhai/internal/users/auth"
	"github.com/ledong198910/blogtruyentranhai/pkg/pointer"
	"github.com/ledong198910/blogtruyentranhai/pkg/slice"
	"github.com/ledong198910/blogtruyentranhai/pkg/textnorm"
)

// # Selection Enums

// Scope limits which fields the search query is matched against.
type Scope string

const (
	// ScopeAll matches title, author, or any tag (default).
	ScopeAll Scope = "all"

	// ScopeTitle matches the title only.
	ScopeTitle Scope = "title"

	// ScopeAuthor matches the author only.
	ScopeAuthor Scope = "author"
)

// Sort selects the ordering applied after filtering.
type Sort string

const (
	// SortLatest orders by UpdatedAt descending (default).
	SortLatest Sort = "latest"

	// SortViews orders by ViewCount descending.
	SortViews Sort = "views"

	// SortAZ orders by title ascending, locale-aware.
	SortAZ Sort = "az"
)

// Synthetic categories prepended before the tag-derived ones.
const (
	CategoryAll       = "All"
	CategoryFollowing = "Following"
	CategoryHistory   = "History"
)

// # Composer

// Composer derives filtered, sorted library views. The locale drives the
// collation used by the AZ sort.
type Composer struct {
	locale language.Tag
}

// NewComposer parses a BCP-47 locale tag, falling back to Vietnamese when
// the tag is empty or malformed.
func NewComposer(locale string) *Composer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Vietnamese
	}
	return &Composer{locale: tag}
}

// Categories builds the ordered list of selectable categories.
//
// # Order
//
// History (only when some comic has a read marker and a user is present),
// Following (only when a user is present), All, then the union of all tags
// ascending. Tag display strings are kept verbatim; only the order is derived.
func (composer *Composer) Categories(comics []comic.Comic, user *auth.User) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, c := range comics {
		for _, tag := range c.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)

	categories := make([]string, 0, len(tags)+3)
	if user != nil {
		if anyHasHistory(comics) {
			categories = append(categories, CategoryHistory)
		}
		categories = append(categories, CategoryFollowing)
	}
	categories = append(categories, CategoryAll)

	return append(categories, tags...)
}

// Compose returns the filtered and sorted comic list for the current
// selection state. The snapshot is never mutated; ties keep snapshot order.
func (composer *Composer) Compose(
	comics []comic.Comic,
	query string,
	scope Scope,
	category string,
	sortOption Sort,
	user *auth.User,
) []comic.Comic {
	folded := textnorm.Fold(query)

	filtered := slice.Filter(comics, func(c comic.Comic) bool {
		return matchesQuery(c, folded, scope) && matchesCategory(c, category, user)
	})

	// Filter already copies the backing array, so sorting in place is safe.
	composer.sortComics(filtered, category, sortOption)
	return filtered
}

// # Predicates

// matchesQuery applies the search predicate. The query is already folded;
// an empty query always matches.
func matchesQuery(c comic.Comic, folded string, scope Scope) bool {
	if folded == "" {
		return true
	}

	switch scope {
	case ScopeAuthor:
		return textnorm.Contains(c.Author, folded)
	case ScopeTitle:
		return textnorm.Contains(c.Title, folded)
	default:
		if textnorm.Contains(c.Title, folded) || textnorm.Contains(c.Author, folded) {
			return true
		}
		for _, tag := range c.Tags {
			if textnorm.Contains(tag, folded) {
				return true
			}
		}
		return false
	}
}

// matchesCategory applies the category predicate. "Following" without a
// signed-in user is false, not an error.
func matchesCategory(c comic.Comic, category string, user *auth.User) bool {
	switch category {
	case "", CategoryAll:
		return true
	case CategoryFollowing:
		return user != nil && user.IsFollowing(c.ID)
	case CategoryHistory:
		return c.LastRead != nil
	default:
		return c.HasTag(category)
	}
}

// # Ordering

func (composer *Composer) sortComics(comics []comic.Comic, category string, sortOption Sort) {
	// The History category always orders by recency of reading, regardless
	// of the active sort option. Comics without a marker sort last.
	if category == CategoryHistory {
		sort.SliceStable(comics, func(i, j int) bool {
			return lastReadStamp(comics[i]) > lastReadStamp(comics[j])
		})
		return
	}

	switch sortOption {
	case SortViews:
		sort.SliceStable(comics, func(i, j int) bool {
			return comics[i].ViewCount > comics[j].ViewCount
		})
	case SortAZ:
		collator := collate.New(composer.locale)
		sort.SliceStable(comics, func(i, j int) bool {
			return collator.CompareString(comics[i].Title, comics[j].Title) < 0
		})
	default: // SortLatest
		sort.SliceStable(comics, func(i, j int) bool {
			return comics[i].UpdatedAt > comics[j].UpdatedAt
		})
	}
}

// lastReadStamp reads the marker timestamp; an unread comic stamps as 0.
func lastReadStamp(c comic.Comic) int64 {
	return pointer.Val(c.LastRead).Timestamp
}

func anyHasHistory(comics []comic.Comic) bool {
	for i := range comics {
		if comics[i].LastRead != nil {
			return true
		}
	}
	return false
}
