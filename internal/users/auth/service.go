// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/ledong198910/blogtruyentranhai/internal/platform/apperr"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/sec"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/validate"
	"github.com/ledong198910/blogtruyentranhai/internal/rank"
	"github.com/ledong198910/blogtruyentranhai/pkg/uuidv7"
)

// UserWriter is the slice of the Library Store the identity layer needs:
// durable, full-record upserts of user records keyed by id.
type UserWriter interface {
	UpsertUser(ctx context.Context, user User) error
}

// Service manages the local profile lifecycle: registration, login, logout,
// and profile updates. The active profile is mirrored to the device KV store
// so it survives reloads.
type Service struct {
	profiles ProfileStore
	users    UserWriter
	logger   *slog.Logger
	now      func() int64
}

// NewService wires the identity service.
func NewService(profiles ProfileStore, users UserWriter, logger *slog.Logger) *Service {
	return &Service{
		profiles: profiles,
		users:    users,
		logger:   logger,
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// Register creates a new profile, hashes the password, persists the durable
// record, and activates the profile on this device.
func (service *Service) Register(ctx context.Context, username, email, password string) (*User, error) {
	v := &validate.Validator{}
	err := v.
		Required(FieldUsername, username).
		MinLen(FieldUsername, username, 3).
		MaxLen(FieldUsername, username, 32).
		Email(FieldEmail, email).
		MinLen(FieldPassword, password, 6).
		Err()
	if err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := service.now()
	user := &User{
		ID:           uuidv7.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleUser,
		RankSystem:   rank.SystemNone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.users.UpsertUser(ctx, *user); err != nil {
		return nil, apperr.Persistence(err)
	}
	if err := service.profiles.Save(user); err != nil {
		return nil, apperr.Persistence(err)
	}

	service.logger.Info("profile registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login verifies the password against the stored record and activates the
// profile on this device.
func (service *Service) Login(user *User, password string) (*User, error) {
	if user == nil || !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	if err := service.profiles.Save(user); err != nil {
		return nil, apperr.Persistence(err)
	}

	service.logger.Info("profile signed in", slog.String("user_id", user.ID))
	return user, nil
}

// Logout clears the active profile from this device. The durable record is
// untouched.
func (service *Service) Logout() error {
	if err := service.profiles.Clear(); err != nil {
		return apperr.Persistence(err)
	}
	service.logger.Info("profile signed out")
	return nil
}

// Mirror refreshes the device copy of the active profile after an
// engine-produced update (e.g. an experience grant or follow toggle). The
// durable record is persisted separately by the engagement layer.
func (service *Service) Mirror(user *User) error {
	return service.profiles.Save(user)
}

// Active returns the profile persisted on this device, if any. A corrupt
// value reads as signed out.
func (service *Service) Active() (*User, bool) {
	return service.profiles.Load()
}

// UpdateProfile applies mutable profile fields (avatar, rank system), bumps
// UpdatedAt, and persists both the durable record and the device mirror.
//
// Display fields already snapshotted onto historical comments are not
// rewritten; only new comments pick up the change.
func (service *Service) UpdateProfile(ctx context.Context, user User, avatar string, system rank.System) (*User, error) {
	if !system.IsValid() {
		return nil, validate.RequiredError("rank_system", "Unknown rank system")
	}

	user.Avatar = avatar
	user.RankSystem = system
	user.UpdatedAt = service.now()

	if err := service.users.UpsertUser(ctx, user); err != nil {
		return nil, apperr.Persistence(err)
	}
	if err := service.profiles.Save(&user); err != nil {
		return nil, apperr.Persistence(err)
	}

	return &user, nil
}
