package domain

import (
	"time"
)

// Role constants for the users table. The store defaults new rows to RoleUser;
// the service propagates whatever role the store returns without interpreting it.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. The password hash is never serialized.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Nickname     string     `json:"nickname,omitempty"`
	Role         string     `json:"role,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// PublicUser is the client-safe projection of a User. Which fields are
// populated depends on the operation that produced it; the password hash is
// excluded from every projection.
type PublicUser struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Nickname    string     `json:"nickname"`
	Role        string     `json:"role,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Registered returns the projection exposed by a successful registration:
// id, email and nickname only.
func (u *User) Registered() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Email:    u.Email,
		Nickname: u.Nickname,
	}
}

// Authenticated returns the projection exposed by a successful login,
// which additionally carries the role.
func (u *User) Authenticated() PublicUser {
	p := u.Registered()
	p.Role = u.Role
	return p
}

// Profile returns the full client-safe projection, including the
// store-maintained timestamps.
func (u *User) Profile() PublicUser {
	p := u.Authenticated()
	if !u.CreatedAt.IsZero() {
		created := u.CreatedAt
		p.CreatedAt = &created
	}
	p.LastLoginAt = u.LastLoginAt
	return p
}
