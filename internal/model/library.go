package model

import "time"

// LibraryItem is one book (or other work) in the catalog. Genre is free
// text; the catalog does not constrain it.
type LibraryItem struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	Genre           string     `json:"genre"`
	PublicationYear int        `json:"publicationYear"`
	IsRead          ReadStatus `json:"isRead"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (b LibraryItem) RecordID() int             { return b.ID }
func (b LibraryItem) WithID(id int) LibraryItem { b.ID = id; return b }
func (b LibraryItem) CreatedTime() time.Time    { return b.CreatedAt }

func (b LibraryItem) WithTimestamps(created, updated time.Time) LibraryItem {
	b.CreatedAt, b.UpdatedAt = created, updated
	return b
}
