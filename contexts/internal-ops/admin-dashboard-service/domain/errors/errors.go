package errors

import "errors"

var ErrSourceMissing = errors.New("dashboard source not configured")
