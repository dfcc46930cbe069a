package repository

import "errors"

// ErrNotFound is returned by finders when no row matches.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned by writes that would break a uniqueness rule.
var ErrConflict = errors.New("already exists")
