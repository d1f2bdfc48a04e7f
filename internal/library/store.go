// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

/*
Package library implements the Library Store: the sole durable owner of the
comic and user collections.

The engines operate on immutable snapshots and hand back whole replacement
values; the store therefore performs full-record upserts keyed by id (last
write wins), never deltas. Persistence calls may arrive out of order relative
to the events that produced them — the newest value always supersedes.
*/
package library

import (
	"context"

	"github.com/ledong198910/blogtruyentranhai/internal/comic"
	"github.com/ledong198910/blogtruyentranhai/internal/users/auth"
)

// # Data Access Contract

// Store defines the persistence contract consumed by the application layer.
type Store interface {

	/*
		LoadAll returns the full comic collection in insertion order.

		Parameters:
		  - ctx: context.Context

		Returns:
		  - []comic.Comic: The library snapshot
		  - error: Database retrieval failures
	*/
	LoadAll(ctx context.Context) ([]comic.Comic, error)

	/*
		Upsert persists a whole comic aggregate, replacing any previous
		record with the same id.

		Parameters:
		  - ctx: context.Context
		  - c: comic.Comic

		Returns:
		  - error: Persistence failures
	*/
	Upsert(ctx context.Context, c comic.Comic) error

	/*
		Remove deletes the comic with the given id and returns the
		resulting collection.

		Parameters:
		  - ctx: context.Context
		  - comicID: string

		Returns:
		  - []comic.Comic: The collection after removal
		  - error: Persistence failures
	*/
	Remove(ctx context.Context, comicID string) ([]comic.Comic, error)

	/*
		UpsertUser persists a whole user record, replacing any previous
		record with the same id.

		Parameters:
		  - ctx: context.Context
		  - user: auth.User

		Returns:
		  - error: Persistence failures
	*/
	UpsertUser(ctx context.Context, user auth.User) error

	/*
		FindUserByUsername returns the user record with the given username.

		Parameters:
		  - ctx: context.Context
		  - username: string

		Returns:
		  - *auth.User: The matching record, or nil
		  - bool: Whether a record matched
		  - error: Database retrieval failures
	*/
	FindUserByUsername(ctx context.Context, username string) (*auth.User, bool, error)

	/*
		ExportAll serializes the entire library (comics and users) to a
		portable text payload.

		Parameters:
		  - ctx: context.Context

		Returns:
		  - string: The serialized payload
		  - error: Retrieval or encoding failures
	*/
	ExportAll(ctx context.Context) (string, error)

	/*
		ImportAll replaces the entire library from a payload produced by
		ExportAll. All-or-nothing: a malformed payload leaves the current
		library untouched.

		Parameters:
		  - ctx: context.Context
		  - payload: string

		Returns:
		  - error: apperr.MalformedImport or persistence failures
	*/
	ImportAll(ctx context.Context, payload string) error
}
