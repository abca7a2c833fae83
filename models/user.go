package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username,omitempty" json:"username,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Password  string             `bson:"password,omitempty" json:"-"` // Password is not returned in JSON
	GoogleID  string             `bson:"google_id,omitempty" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
