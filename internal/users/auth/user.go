// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

/*
Package auth implements the local profile and identity layer.

There is no remote authority: the single active profile is persisted in the
device key-value store, and the durable user record lives in the Library
Store. Authentication gates engagement (follow, comment, like) rather than
network access.

# Architecture

Entities defined here have no external dependencies and encapsulate all
business rules related to reader identity and progression.
*/
package auth

import (
	"github.com/ledong198910/blogtruyentranhai/internal/rank"
	"github.com/ledong198910/blogtruyentranhai/pkg/slice"
)

// # Domain Enums

// Role classifies a profile's capabilities in the shell.
type Role string

const (
	// RoleAdmin can publish chapters and manage the catalogue.
	RoleAdmin Role = "admin"

	// RoleUser is a regular reader.
	RoleUser Role = "user"
)

// IsValid reports whether r is a recognised [Role] value.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// # Domain Entities

// User represents a reader profile.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	// PasswordHash is opaque: persisted, verified at login, never displayed.
	PasswordHash string `json:"password_hash,omitempty"`

	Avatar string `json:"avatar,omitempty"`
	Role   Role   `json:"role"`

	// Exp is monotonic non-negative accumulated reading experience.
	Exp int64 `json:"exp,omitempty"`

	// RankSystem selects the progression table used for the display title.
	RankSystem rank.System `json:"rank_system,omitempty"`

	// FollowedComics holds comic ids with set semantics (no duplicates).
	FollowedComics []string `json:"followed_comics,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// DisplayTitle resolves the rank title for the user's current experience.
// It returns "" when the user disabled rank display.
func (u User) DisplayTitle() string {
	system := u.RankSystem
	if system == "" {
		system = rank.SystemNone
	}
	return rank.Title(u.Exp, system)
}

// IsFollowing reports whether the comic id is in the followed set.
func (u User) IsFollowing(comicID string) bool {
	return slice.Contains(u.FollowedComics, comicID)
}

// IsAdmin reports whether the profile may manage the catalogue.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// # Field Identifiers

// Global field names for validation in the identity domain.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldAvatar   = "avatar"
	FieldRole     = "role"
)
