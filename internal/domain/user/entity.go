package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Imports rosters, sees every schedule
	RoleEmployee Role = "employee" // Sees own schedule
)

type User struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName is the "First Last" form used as the roster row label.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
