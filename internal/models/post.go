package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post holds two fixed, independently nullable image slots. A nil reference
// means no image has ever been attached to that slot.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Title  string  `bson:"title" json:"title"`
	Body   string  `bson:"body" json:"body"`
	Image  *string `bson:"image,omitempty" json:"image,omitempty"`
	Image2 *string `bson:"image2,omitempty" json:"image2,omitempty"`
}
