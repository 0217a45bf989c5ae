package repositories

import "errors"

// ErrNotFound is returned when a point lookup does not match any record
var ErrNotFound = errors.New("not found")
