package db

import "errors"

// ErrConnectionFailure is returned when no pooled connection can be obtained.
var ErrConnectionFailure = errors.New("failed to connect to database")
