// Package common defines shared constants and sentinel errors used across
// the server layers. Callers should use errors.Is to match these values, or
// KindOf to get a stable classification.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrStorage            = errors.New("storage failure")

	// Boundary errors.
	ErrValidation   = errors.New("validation error")
	ErrTokenMissing = errors.New("token missing")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Kind is a stable classification of a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUserNotFound
	KindInvalidCredentials
	KindDuplicateEmail
	KindTokenMissing
	KindTokenInvalidOrExpired
	KindStorage
)

var kindNames = map[Kind]string{
	KindUnknown:               "unknown",
	KindValidation:            "validation",
	KindUserNotFound:          "user_not_found",
	KindInvalidCredentials:    "invalid_credentials",
	KindDuplicateEmail:        "duplicate_email",
	KindTokenMissing:          "token_missing",
	KindTokenInvalidOrExpired: "token_invalid_or_expired",
	KindStorage:               "storage",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindUnknown]
}

// KindOf classifies err by the first sentinel it wraps.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrorNotFound):
		return KindUserNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrorAlreadyExists):
		return KindDuplicateEmail
	case errors.Is(err, ErrTokenMissing):
		return KindTokenMissing
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
		return KindTokenInvalidOrExpired
	case errors.Is(err, ErrStorage):
		return KindStorage
	}
	return KindUnknown
}
