package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrForbiddenRole   = fmt.Errorf("%w: role not permitted", ErrForbidden)
	ErrNotOwner        = fmt.Errorf("%w: caller does not own the resource", ErrForbidden)
)
