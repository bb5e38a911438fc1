package errors

import "errors"

var (
	ErrStoreNotFound      = errors.New("store not found")
	ErrRatingNotFound     = errors.New("rating not found")
	ErrRaterNotFound      = errors.New("rating author not found")
	ErrInvalidValue       = errors.New("rating must be an integer between 1 and 5")
	ErrServiceUnavailable = errors.New("rating storage unavailable")
)
