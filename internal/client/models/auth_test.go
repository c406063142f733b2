package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthResponse_Nested(t *testing.T) {
	var a AuthResponse
	err := json.Unmarshal([]byte(`{"token":"tkn","user":{"_id":"1","email":"e@x","name":"N","role":"user"}}`), &a)
	require.NoError(t, err)

	assert.Equal(t, "tkn", a.Token)
	assert.Equal(t, User{ID: "1", Email: "e@x", Name: "N", Role: RoleUser}, a.User)
}

func TestAuthResponse_Flat(t *testing.T) {
	var a AuthResponse
	err := json.Unmarshal([]byte(`{"token":"tkn","_id":"1","email":"e@x","name":"N","role":"admin"}`), &a)
	require.NoError(t, err)

	assert.Equal(t, "tkn", a.Token)
	assert.Equal(t, "e@x", a.User.Email)
	assert.Equal(t, RoleAdmin, a.User.Role)
}

func TestAuthResponse_TokenOnly(t *testing.T) {
	var a AuthResponse
	require.NoError(t, json.Unmarshal([]byte(`{"token":"t","user":null}`), &a))
	assert.Equal(t, "t", a.Token)
	assert.Equal(t, User{}, a.User)
}

func TestUserRole_Valid(t *testing.T) {
	for _, r := range Roles() {
		assert.True(t, r.Valid())
	}
	assert.False(t, UserRole("root").Valid())
}

func TestUser_DisplayName(t *testing.T) {
	var u *User
	assert.Equal(t, "User", u.DisplayName())
	assert.Equal(t, "User", (&User{}).DisplayName())
	assert.Equal(t, "Ann", (&User{Name: "Ann"}).DisplayName())
}
