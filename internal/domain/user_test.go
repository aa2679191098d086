package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUser() *User {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	login := now.Add(time.Hour)
	return &User{
		ID:           "u1",
		Email:        "dongho@example.com",
		PasswordHash: "$2a$12$secret",
		Nickname:     "dongho",
		Role:         RoleUser,
		CreatedAt:    now,
		LastLoginAt:  &login,
	}
}

func TestUser_PasswordHashNeverSerialized(t *testing.T) {
	data, err := json.Marshal(sampleUser())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
}

func TestRegisteredProjection(t *testing.T) {
	p := sampleUser().Registered()

	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, "dongho@example.com", p.Email)
	assert.Equal(t, "dongho", p.Nickname)
	// Registration happens before the store assigns a meaningful role to the
	// response, so the projection omits it along with the timestamps.
	assert.Empty(t, p.Role)
	assert.Nil(t, p.CreatedAt)
	assert.Nil(t, p.LastLoginAt)
}

func TestAuthenticatedProjection(t *testing.T) {
	p := sampleUser().Authenticated()

	assert.Equal(t, RoleUser, p.Role)
	assert.Nil(t, p.CreatedAt)
	assert.Nil(t, p.LastLoginAt)
}

func TestProfileProjection(t *testing.T) {
	u := sampleUser()
	p := u.Profile()

	assert.Equal(t, RoleUser, p.Role)
	require.NotNil(t, p.CreatedAt)
	assert.Equal(t, u.CreatedAt, *p.CreatedAt)
	require.NotNil(t, p.LastLoginAt)
	assert.Equal(t, *u.LastLoginAt, *p.LastLoginAt)
}

func TestProfileProjection_NeverLoggedIn(t *testing.T) {
	u := sampleUser()
	u.LastLoginAt = nil

	data, err := json.Marshal(u.Profile())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "last_login_at")
}
