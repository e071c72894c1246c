package model

import "time"

// Role controls what a principal may do. Admins decide booking requests;
// regular users only submit and list their own.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email        string    `json:"email" bson:"email" validate:"required,email,max=200"`
	PasswordHash string    `json:"-" bson:"password_hash" validate:"required"`
	Role         Role      `json:"role" bson:"role" validate:"required,oneof=user admin"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Principal is the authenticated identity carried through request context.
// It is the session payload, not the stored user record.
type Principal struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
