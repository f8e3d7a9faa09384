package models

import "time"

// Group is a topic posts can optionally be filed under.
// Deleting a group detaches its posts instead of deleting them.
type Group struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Slug        string    `json:"slug" gorm:"uniqueIndex"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateGroupRequest defines the request body for creating a new group
type CreateGroupRequest struct {
	Slug        string `json:"slug" validate:"required,min=1,max=200"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}
