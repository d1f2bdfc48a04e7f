// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package auth_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledong198910/blogtruyentranhai/internal/platform/apperr"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/kv"
	"github.com/ledong198910/blogtruyentranhai/internal/platform/sec"
	"github.com/ledong198910/blogtruyentranhai/internal/rank"
	"github.com/ledong198910/blogtruyentranhai/internal/users/auth"
)

// recordingWriter captures durable upserts for assertions.
type recordingWriter struct {
	upserts []auth.User
	failing bool
}

func (w *recordingWriter) UpsertUser(_ context.Context, user auth.User) error {
	if w.failing {
		return assert.AnError
	}
	w.upserts = append(w.upserts, user)
	return nil
}

func newService(t *testing.T) (*auth.Service, *recordingWriter, *auth.KVProfileStore) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	db, err := kv.OpenInMemory(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	profiles := auth.NewKVProfileStore(db, logger)
	writer := &recordingWriter{}
	return auth.NewService(profiles, writer, logger), writer, profiles
}

/*
TestRegister asserts the durable record is written, the password is stored
hashed, and the profile is activated on the device.
*/
func TestRegister(t *testing.T) {
	service, writer, profiles := newService(t)

	user, err := service.Register(context.Background(), "taibui", "taibui@example.com", "matkhau123")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, auth.RoleUser, user.Role)
	assert.Equal(t, rank.SystemNone, user.RankSystem)
	assert.NotEqual(t, "matkhau123", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("matkhau123", user.PasswordHash))

	require.Len(t, writer.upserts, 1)
	assert.Equal(t, user.ID, writer.upserts[0].ID)

	active, ok := profiles.Load()
	require.True(t, ok)
	assert.Equal(t, user.ID, active.ID)
}

/*
TestRegister_Validation asserts field errors are collected before any write.
*/
func TestRegister_Validation(t *testing.T) {
	service, writer, _ := newService(t)

	_, err := service.Register(context.Background(), "ab", "not-an-email", "123")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	assert.Empty(t, writer.upserts)
}

/*
TestLogin asserts the password check and the device activation, and that a
wrong password and a missing record produce the same rejection.
*/
func TestLogin(t *testing.T) {
	service, _, profiles := newService(t)

	hash, err := sec.HashPassword("matkhau123")
	require.NoError(t, err)
	record := &auth.User{ID: "u1", Username: "taibui", PasswordHash: hash}

	_, err = service.Login(record, "sai-mat-khau")
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))

	_, err = service.Login(nil, "matkhau123")
	assert.True(t, apperr.IsCode(err, "UNAUTHORIZED"))

	user, err := service.Login(record, "matkhau123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	active, ok := profiles.Load()
	require.True(t, ok)
	assert.Equal(t, "u1", active.ID)
}

/*
TestLogout asserts the device profile is cleared while the durable record is
left alone.
*/
func TestLogout(t *testing.T) {
	service, writer, profiles := newService(t)

	_, err := service.Register(context.Background(), "taibui", "taibui@example.com", "matkhau123")
	require.NoError(t, err)

	require.NoError(t, service.Logout())

	_, ok := profiles.Load()
	assert.False(t, ok)
	assert.Len(t, writer.upserts, 1)
}

/*
TestUpdateProfile asserts rank-system validation and that both the durable
record and the device mirror receive the change.
*/
func TestUpdateProfile(t *testing.T) {
	service, writer, profiles := newService(t)

	user, err := service.Register(context.Background(), "taibui", "taibui@example.com", "matkhau123")
	require.NoError(t, err)

	_, err = service.UpdateProfile(context.Background(), *user, "", rank.System("huyen-huyen"))
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

	updated, err := service.UpdateProfile(context.Background(), *user, "avatar.png", rank.SystemVoHiep)
	require.NoError(t, err)
	assert.Equal(t, rank.SystemVoHiep, updated.RankSystem)
	assert.Equal(t, "avatar.png", updated.Avatar)

	require.Len(t, writer.upserts, 2)
	assert.Equal(t, rank.SystemVoHiep, writer.upserts[1].RankSystem)

	active, ok := profiles.Load()
	require.True(t, ok)
	assert.Equal(t, rank.SystemVoHiep, active.RankSystem)
}

/*
TestActive_Corrupt asserts a corrupt device value reads as signed out rather
than failing the launch.
*/
func TestActive_Corrupt(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	db, err := kv.OpenInMemory(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, kv.Set(db, "profile:active", []byte("{not json")))

	service := auth.NewService(auth.NewKVProfileStore(db, logger), &recordingWriter{}, logger)
	_, ok := service.Active()
	assert.False(t, ok)
}
