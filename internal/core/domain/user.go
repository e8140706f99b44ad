package domain

import (
	"errors"
	"time"
)

// RoleUser is assigned to every account created through registration.
// Roles are stored but do not take part in access decisions.
const RoleUser = "USER"

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned by a repository when a unique index on
	// username or email rejects an insert.
	ErrUserExists = errors.New("user already exists")
)

// User models a registered account.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
