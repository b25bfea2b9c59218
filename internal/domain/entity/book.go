package entity

import (
	"time"
)

// Book is a catalog item. AddedDate is the calendar day the book entered the
// catalog and is what the daily digest scan matches on; it is assigned at
// creation time when the caller does not supply one.
type Book struct {
	ID        string
	Title     string
	Author    string
	Category  string
	PageCount int
	AddedDate time.Time
	CreatedAt time.Time
}
