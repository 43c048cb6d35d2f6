package query

import "github.com/idilsaglam/shelf/internal/model"

// LibraryFilter narrows a catalog. Empty strings and nil pointers do not
// filter; text fields match case-insensitively.
type LibraryFilter struct {
	Genre    string
	Author   string
	Status   *model.ReadStatus
	FromYear *int
	ToYear   *int
}

// FilterLibrary applies f and returns the result in the default catalog
// order.
func FilterLibrary(items []model.LibraryItem, f LibraryFilter) []model.LibraryItem {
	out := MatchFold(items, func(b model.LibraryItem) string { return b.Genre }, f.Genre)
	out = MatchFold(out, func(b model.LibraryItem) string { return b.Author }, f.Author)
	out = Equal(out, func(b model.LibraryItem) model.ReadStatus { return b.IsRead }, f.Status)
	out = Between(out, func(b model.LibraryItem) int { return b.PublicationYear }, Range[int]{Min: f.FromYear, Max: f.ToYear})
	return SortLibrary(out)
}

// SortLibrary orders by id, then publication year newest first.
func SortLibrary(items []model.LibraryItem) []model.LibraryItem {
	return Sorted(items,
		Asc(func(b model.LibraryItem) int { return b.ID }),
		Desc(func(b model.LibraryItem) int { return b.PublicationYear }),
	)
}

// LibrarySummary aggregates a catalog.
type LibrarySummary struct {
	Total     int
	ByStatus  []Count[model.ReadStatus]
	TopGenre  string
	TopGenreN int
	HasGenre  bool
}

func SummarizeLibrary(items []model.LibraryItem) LibrarySummary {
	genre, n, ok := MostCommon(items, func(b model.LibraryItem) string { return b.Genre })
	return LibrarySummary{
		Total:     len(items),
		ByStatus:  CountBy(items, func(b model.LibraryItem) model.ReadStatus { return b.IsRead }),
		TopGenre:  genre,
		TopGenreN: n,
		HasGenre:  ok,
	}
}
