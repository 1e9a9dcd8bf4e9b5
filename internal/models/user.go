package models

import "time"

type UserRole string

const (
	UserRoleResident    UserRole = "resident"
	UserRoleBoardMember UserRole = "board_member"
	UserRoleAdmin       UserRole = "admin"
)

// User is an account holder. PasswordHash is empty for accounts created by
// federated login and is never serialized to JSON.
type User struct {
	UserID       string    `bson:"user_id" json:"user_id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Role         UserRole  `bson:"role" json:"role"`
	UnitNumber   *string   `bson:"unit_number,omitempty" json:"unit_number,omitempty"`
	Phone        *string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Picture      *string   `bson:"picture,omitempty" json:"picture,omitempty"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Session is a server-tracked login keyed by an opaque bearer handle.
// Timestamps are RFC 3339 strings; rows written by earlier deployments may
// lack a zone offset, so they go through timeutil.ParseStamp before any
// comparison.
type Session struct {
	SessionToken string `bson:"session_token" json:"session_token"`
	UserID       string `bson:"user_id" json:"user_id"`
	ExpiresAt    string `bson:"expires_at" json:"expires_at"`
	CreatedAt    string `bson:"created_at" json:"created_at"`
}
