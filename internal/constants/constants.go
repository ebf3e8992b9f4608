package constants

import "time"

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "user"
)

// Authentication
const (
	SessionCookieName = "productivity_session"
	SessionDuration   = 7 * 24 * time.Hour
	MinPasswordLength = 8

	// PBKDF2 parameters, stored alongside each hash so they can be
	// raised without invalidating existing credentials.
	PBKDF2Iterations = 120000
	PBKDF2KeyLength  = 64
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Contact search
const MaxUserSearchResults = 10
