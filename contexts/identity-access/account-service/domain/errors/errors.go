package errors

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailTaken             = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	ErrSelfDeletion           = errors.New("cannot delete your own account")
	ErrTokenMalformed         = errors.New("token is malformed")
	ErrTokenExpired           = errors.New("token has expired")
	ErrUnknownSubject         = errors.New("token subject no longer exists")
	ErrServiceUnavailable     = errors.New("account storage unavailable")
)
