package errors

import (
	"errors"
	"fmt"
)

var (
	ErrStoreNotFound        = errors.New("store not found")
	ErrConflict             = errors.New("store conflict")
	ErrStoreEmailTaken      = fmt.Errorf("%w: email already used by another store", ErrConflict)
	ErrOwnerAlreadyHasStore = fmt.Errorf("%w: owner already has a store", ErrConflict)
	ErrOwnerNotFound        = errors.New("store owner not found")
	ErrInvalidOwnerRole     = errors.New("user is not a store owner")
	ErrServiceUnavailable   = errors.New("store storage unavailable")
)
