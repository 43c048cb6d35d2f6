package query

import (
	"cmp"
	"slices"
	"time"
)

// Compare orders two values; negative when a sorts first.
type Compare[T any] func(a, b T) int

// Sorted returns a stably sorted copy of items, ordered by the first
// comparator that tells two items apart.
func Sorted[T any](items []T, by ...Compare[T]) []T {
	out := clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		for _, c := range by {
			if n := c(a, b); n != 0 {
				return n
			}
		}
		return 0
	})
	return out
}

// Asc orders by key, smallest first.
func Asc[T any, K cmp.Ordered](key func(T) K) Compare[T] {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

// Desc orders by key, largest first.
func Desc[T any, K cmp.Ordered](key func(T) K) Compare[T] {
	return func(a, b T) int { return cmp.Compare(key(b), key(a)) }
}

// NilsLastTime orders by an optional time, earliest first, with absent
// values after every present one.
func NilsLastTime[T any](key func(T) *time.Time) Compare[T] {
	return func(a, b T) int {
		ta, tb := key(a), key(b)
		switch {
		case ta == nil && tb == nil:
			return 0
		case ta == nil:
			return 1
		case tb == nil:
			return -1
		}
		return ta.Compare(*tb)
	}
}
