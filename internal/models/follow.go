package models

import "time"

// Follow is a directed subscription edge from a reader to an author.
// The composite unique index closes the double-submit race: concurrent
// follow calls for the same pair can produce at most one row.
type Follow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_author"`
	AuthorID  uint      `json:"author_id" gorm:"index;uniqueIndex:idx_user_author"`
	CreatedAt time.Time `json:"created_at"`
}
