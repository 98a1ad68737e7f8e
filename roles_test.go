package auth_test

import (
	"testing"

	auth "github.com/kultura-id/go-auth"
	"github.com/stretchr/testify/assert"
)

func TestUserRoleIsValid(t *testing.T) {
	tests := []struct {
		role  auth.UserRole
		valid bool
	}{
		{auth.RoleUser, true},
		{auth.RoleManager, true},
		{auth.RoleAdmin, true},
		{auth.UserRole("superuser"), false},
		{auth.UserRole(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.role.IsValid())
		})
	}
}

func TestUserRoleIsAtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     auth.UserRole
		minRole  auth.UserRole
		expected bool
	}{
		{"admin is at least user", auth.RoleAdmin, auth.RoleUser, true},
		{"admin is at least admin", auth.RoleAdmin, auth.RoleAdmin, true},
		{"user is not at least admin", auth.RoleUser, auth.RoleAdmin, false},
		{"user is at least user", auth.RoleUser, auth.RoleUser, true},
		{"manager is at least user", auth.RoleManager, auth.RoleUser, true},
		{"manager is not at least admin", auth.RoleManager, auth.RoleAdmin, false},
		{"unknown role is never enough", auth.UserRole("nope"), auth.RoleUser, false},
		{"unknown minimum is never met", auth.RoleAdmin, auth.UserRole("nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.IsAtLeast(tt.minRole))
		})
	}
}

func TestParseRole(t *testing.T) {
	role, ok := auth.ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, auth.RoleAdmin, role)

	_, ok = auth.ParseRole("root")
	assert.False(t, ok)
}

func TestGetAllRoles(t *testing.T) {
	roles := auth.GetAllRoles()
	assert.Equal(t, []auth.UserRole{auth.RoleUser, auth.RoleManager, auth.RoleAdmin}, roles)
}
