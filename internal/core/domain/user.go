package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the closed set of roles a user can hold. The zero value means the
// record carries no role and must never be authenticated.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// authorityPrefix is the scheme every role-derived authority is prefixed with.
const authorityPrefix = "ROLE_"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
)

// ParseRole maps user input onto the role enumeration. Matching ignores case
// and surrounding whitespace.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", ErrInvalidRole
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Authorities derives the authority set granted by r: exactly one authority
// per role. Unknown or empty roles grant nothing.
func (r Role) Authorities() []Authority {
	if !r.Valid() {
		return nil
	}
	return []Authority{Authority(authorityPrefix + string(r))}
}

// User models a registered principal. PasswordHash never leaves the process
// through JSON.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
