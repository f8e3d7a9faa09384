package models

import "time"

// Comment belongs to exactly one post and dies with it.
// Comments are immutable once created.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}
