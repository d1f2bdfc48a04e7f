// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package app

import (
	"context"

	"github.com/ledong198910/blogtruyentranhai/internal/platform/apperr"
	"github.com/ledong198910/blogtruyentranhai/internal/rank"
	"github.com/ledong198910/blogtruyentranhai/internal/users/auth"
)

// Register creates a profile and signs it in.
func (a *App) Register(ctx context.Context, username, email, password string) (*auth.User, error) {
	user, err := a.identity.Register(ctx, username, email, password)
	if err != nil {
		return nil, err
	}

	a.state.CurrentUser = user
	return user, nil
}

// Login resolves the username against the library's user records and
// activates the profile. An unknown username and a wrong password produce the
// same rejection.
func (a *App) Login(ctx context.Context, username, password string) (*auth.User, error) {
	record, _, err := a.store.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	user, err := a.identity.Login(record, password)
	if err != nil {
		return nil, err
	}

	a.state.CurrentUser = user
	return user, nil
}

// Logout clears the active profile. Social capabilities drop immediately;
// the library snapshot and selection are untouched.
func (a *App) Logout() error {
	if err := a.identity.Logout(); err != nil {
		return err
	}

	a.state.CurrentUser = nil
	return nil
}

// UpdateProfile applies avatar and rank-system changes to the current
// profile. Historical comments keep their snapshotted display fields; only
// comments posted after the change pick it up.
func (a *App) UpdateProfile(ctx context.Context, avatar string, system rank.System) (*auth.User, error) {
	user := a.state.CurrentUser
	if user == nil {
		return nil, apperr.Unauthorized("Sign in to update the profile")
	}

	updated, err := a.identity.UpdateProfile(ctx, *user, avatar, system)
	if err != nil {
		return nil, err
	}

	a.state.CurrentUser = updated
	return updated, nil
}
