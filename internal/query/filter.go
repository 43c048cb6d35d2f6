package query

import (
	"cmp"
	"strings"
	"time"
)

// Where returns the items for which keep reports true.
func Where[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// MatchFold keeps items whose field equals want, ignoring case. An empty
// want disables the filter.
func MatchFold[T any](items []T, field func(T) string, want string) []T {
	want = strings.TrimSpace(want)
	if want == "" {
		return clone(items)
	}
	return Where(items, func(it T) bool {
		return strings.EqualFold(strings.TrimSpace(field(it)), want)
	})
}

// Equal keeps items whose field is exactly want. A nil want disables the
// filter.
func Equal[T any, V comparable](items []T, field func(T) V, want *V) []T {
	if want == nil {
		return clone(items)
	}
	return Where(items, func(it T) bool { return field(it) == *want })
}

// Range is an inclusive interval. A nil bound is open.
type Range[N cmp.Ordered] struct {
	Min, Max *N
}

func (r Range[N]) Open() bool { return r.Min == nil && r.Max == nil }

func (r Range[N]) Contains(v N) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Between keeps items whose field falls inside r.
func Between[T any, N cmp.Ordered](items []T, field func(T) N, r Range[N]) []T {
	if r.Open() {
		return clone(items)
	}
	return Where(items, func(it T) bool { return r.Contains(field(it)) })
}

// DateBetween keeps items whose date falls between from and to, inclusive,
// comparing whole UTC calendar days. Items without a date only pass when
// both bounds are open.
func DateBetween[T any](items []T, field func(T) *time.Time, from, to *time.Time) []T {
	if from == nil && to == nil {
		return clone(items)
	}
	r := Range[int64]{}
	if from != nil {
		d := dayNumber(*from)
		r.Min = &d
	}
	if to != nil {
		d := dayNumber(*to)
		r.Max = &d
	}
	return Where(items, func(it T) bool {
		d := field(it)
		return d != nil && r.Contains(dayNumber(*d))
	})
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayNumber(t time.Time) int64 {
	return Day(t).Unix() / int64(24*time.Hour/time.Second)
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
