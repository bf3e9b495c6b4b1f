package model

import "time"

// User is an authenticated principal. PasswordHash is bcrypt and is never
// serialized to clients.
type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"createdAt,omitempty" bson:"created_at"`
}

// Principal is the resolved identity attached to authenticated requests.
type Principal struct {
	UserID string
	Email  string
}
