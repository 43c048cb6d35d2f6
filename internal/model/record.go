package model

import (
	"errors"
	"time"
)

// ErrInvalidEnum is returned when a symbolic name does not match any
// declared value of an enumeration.
var ErrInvalidEnum = errors.New("invalid enum value")

// Record is the contract every persisted entity satisfies. Methods return
// modified copies so records can stay plain values.
type Record[T any] interface {
	RecordID() int
	WithID(id int) T
	CreatedTime() time.Time
	WithTimestamps(created, updated time.Time) T
}
