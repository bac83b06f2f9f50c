package model

import "time"

type Patient struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Password  string    `json:"-" bson:"password" validate:"required"`
	Age       int       `json:"age" bson:"age" validate:"omitempty,min=0,max=150"`
	Gender    string    `json:"gender" bson:"gender" validate:"omitempty,oneof=male female other"`
	Phone     string    `json:"phone" bson:"phone" validate:"omitempty,e164"`
	Address   string    `json:"address" bson:"address" validate:"omitempty,max=300"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// RegisterRequest carries the plaintext password; it is hashed before
// a Patient is persisted.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Age      int    `json:"age" validate:"omitempty,min=0,max=150"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female other"`
	Phone    string `json:"phone" validate:"omitempty"`
	Address  string `json:"address" validate:"omitempty,max=300"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
