package jsonstore

import "errors"

// ErrCorrupt marks a store file that exists but cannot be decoded. It is
// never returned for a missing file; that is an empty store.
var ErrCorrupt = errors.New("store file is corrupt")

// ErrDuplicateID is returned when a collection handed to Save holds the same
// id more than once.
var ErrDuplicateID = errors.New("duplicate record id")
