package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&AdminUser{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&AdminUser{Role: RoleEditor}).IsAdmin())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleEditor))
	assert.False(t, ValidRole("admin")) // roles are case-sensitive
	assert.False(t, ValidRole(""))
}

func TestPasswordHashNeverSerialized(t *testing.T) {
	u := AdminUser{ID: 1, Username: "admin", PasswordHash: "secret", Role: RoleAdmin}

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
}
