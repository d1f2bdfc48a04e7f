// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package auth

// # Profile Persistence

// ProfileStore defines the device-scoped persistence contract for the single
// active profile.
//
// A corrupt stored value is reported as absence, never as an error: startup
// must proceed as if the reader were signed out.
type ProfileStore interface {

	/*
		Save persists the active profile, replacing any previous one.

		Parameters:
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Save(user *User) error

	/*
		Load returns the persisted active profile.

		Returns:
		  - *User: The profile, or nil when absent or unreadable
		  - bool: Whether a usable profile was found
	*/
	Load() (*User, bool)

	/*
		Clear removes the persisted profile. Called on logout.

		Returns:
		  - error: Persistence failures
	*/
	Clear() error
}
