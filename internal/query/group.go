package query

import (
	"cmp"
	"slices"
)

// Count is one (value, occurrences) pair of a grouping.
type Count[K comparable] struct {
	Value K
	N     int
}

// CountBy groups items by key and returns one pair per distinct value,
// ordered by value descending.
func CountBy[T any, K cmp.Ordered](items []T, key func(T) K) []Count[K] {
	idx := make(map[K]int)
	var out []Count[K]
	for _, it := range items {
		k := key(it)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Count[K]{Value: k})
		}
		out[i].N++
	}
	slices.SortFunc(out, func(a, b Count[K]) int { return cmp.Compare(b.Value, a.Value) })
	return out
}

// MostCommon returns the most frequent key among items and how often it
// occurs. Ties go to the value seen first. It reports false for no items.
func MostCommon[T any, K comparable](items []T, key func(T) K) (K, int, bool) {
	counts := make(map[K]int)
	var order []K
	for _, it := range items {
		k := key(it)
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	var (
		best  K
		bestN int
	)
	for _, k := range order {
		if counts[k] > bestN {
			best, bestN = k, counts[k]
		}
	}
	return best, bestN, bestN > 0
}
