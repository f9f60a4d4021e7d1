package core

import "errors"

// Common errors.
var (
	ErrNotFound   = errors.New("key not found")
	ErrReadOnly   = errors.New("backend is in read-only mode")
	ErrInvalidKey = errors.New("invalid key")
	ErrClosed     = errors.New("store is closed")
)
