package repositories

import "errors"

// ErrNotFound is returned when a document or submission does not exist.
var ErrNotFound = errors.New("record not found")
