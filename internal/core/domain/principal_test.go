package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "ADMIN", want: RoleAdmin},
		{in: "admin", want: RoleAdmin},
		{in: " user ", want: RoleUser},
		{in: "", wantErr: true},
		{in: "root", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_Authorities(t *testing.T) {
	assert.Equal(t, []Authority{AuthorityAdmin}, RoleAdmin.Authorities())
	assert.Equal(t, []Authority{AuthorityUser}, RoleUser.Authorities())
	assert.Empty(t, Role("").Authorities())
	assert.Empty(t, Role("SUPERUSER").Authorities())
	assert.Equal(t, Authority("ROLE_ADMIN"), AuthorityAdmin)
}

func TestNewPrincipal(t *testing.T) {
	p, ok := NewPrincipal(&User{ID: "u1", Email: "ana@example.com", Role: RoleAdmin})
	require.True(t, ok)
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, RoleAdmin, p.Role)
	assert.True(t, p.HasAuthority(AuthorityAdmin))
	assert.False(t, p.HasAuthority(AuthorityUser))

	_, ok = NewPrincipal(&User{ID: "u2", Email: "norole@example.com"})
	assert.False(t, ok, "role-less users must not produce a principal")

	_, ok = NewPrincipal(nil)
	assert.False(t, ok)
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 0, 2, 5)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.First)
	assert.False(t, p.Last)

	last := NewPage([]int{5}, 2, 2, 5)
	assert.True(t, last.Last)
	assert.False(t, last.First)

	empty := NewPage[int](nil, 0, 10, 0)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
	assert.True(t, empty.Last)
}
