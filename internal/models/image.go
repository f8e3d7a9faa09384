package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is a stored binary attachment. Blobs live in MongoDB; relational
// entities only carry the hex reference.
type Image struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Filename    string             `json:"filename" bson:"filename"`
	ContentType string             `json:"content_type" bson:"content_type"`
	Data        []byte             `json:"-" bson:"data"`
	UploadedBy  uint               `json:"uploaded_by" bson:"uploaded_by"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// Ref returns the stable reference callers store on a Post.
func (i *Image) Ref() string {
	return i.ID.Hex()
}
