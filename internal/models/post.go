package models

import "time"

// Post is the central entity: a text publication by one author,
// optionally filed under a group and carrying an attached image.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID"`
	GroupID   *uint     `json:"group_id,omitempty" gorm:"index"` // Nullable: group deletion detaches posts
	Group     *Group    `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	ImageRef  string    `json:"image_ref,omitempty"` // Reference handed back by the image store
	CreatedAt time.Time `json:"created_at"`          // Set once at creation, never updated
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Text     string `json:"text" validate:"required,min=1"`
	GroupID  *uint  `json:"group_id,omitempty"`
	ImageRef string `json:"image_ref,omitempty"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// Only supplied fields are applied. A group_id of 0 detaches the post from
// its current group.
type UpdatePostRequest struct {
	Text     *string `json:"text,omitempty" validate:"omitempty,min=1"`
	GroupID  *uint   `json:"group_id,omitempty"`
	ImageRef *string `json:"image_ref,omitempty"`
}
