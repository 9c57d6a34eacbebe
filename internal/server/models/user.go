// Package models holds the server-side domain types.
package models

import (
	"fmt"
	"time"
)

// UserType is the account category tag stored with every user.
type UserType string

const (
	UserTypeAdmin    UserType = "ADMIN"
	UserTypeEmployee UserType = "EMPLOYEE"
	UserTypePatron   UserType = "PATRON"
)

// ParseUserType accepts exactly one of the known tags.
func ParseUserType(s string) (UserType, error) {
	switch t := UserType(s); t {
	case UserTypeAdmin, UserTypeEmployee, UserTypePatron:
		return t, nil
	}
	return "", fmt.Errorf("unknown user type %q", s)
}

// User is the persisted account record. PasswordHash always holds a bcrypt
// hash, never the plaintext.
type User struct {
	ID           string
	UserType     UserType
	FirstName    string
	LastName     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// PublicUser is the part of a User that may leave the server.
type PublicUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Public projects u onto its client-safe view.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
