package domain

import (
	"errors"
	"slices"
)

// Authority is a coarse permission tag derived from a role, e.g. "ROLE_ADMIN".
type Authority string

const (
	AuthorityAdmin Authority = authorityPrefix + Authority(RoleAdmin)
	AuthorityUser  Authority = authorityPrefix + Authority(RoleUser)
)

// ErrInvalidToken is the single failure a token verification reports,
// whatever the underlying cause.
var ErrInvalidToken = errors.New("invalid token")

// Principal is the authenticated subject of one request. It is built fresh
// for every request and never shared.
type Principal struct {
	ID          string
	Email       string
	Role        Role
	Authorities []Authority
}

// NewPrincipal builds the principal for u. ok is false when u has no usable
// role, in which case the caller must treat the request as anonymous.
func NewPrincipal(u *User) (p Principal, ok bool) {
	if u == nil || !u.Role.Valid() {
		return Principal{}, false
	}
	return Principal{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		Authorities: u.Role.Authorities(),
	}, true
}

// HasAuthority reports whether the principal was granted a.
func (p Principal) HasAuthority(a Authority) bool {
	return slices.Contains(p.Authorities, a)
}
