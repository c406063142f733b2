package models

import "encoding/json"

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the signup request body.
type Registration struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

// AuthResponse pairs a bearer token with the authenticated user.
//
// Servers either nest the user under "user" or return its fields next to
// "token"; both decode into the same value.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (a *AuthResponse) UnmarshalJSON(data []byte) error {
	var nested struct {
		Token string          `json:"token"`
		User  json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &nested); err != nil {
		return err
	}

	a.Token = nested.Token
	a.User = User{}

	if len(nested.User) > 0 && string(nested.User) != "null" {
		return json.Unmarshal(nested.User, &a.User)
	}
	return json.Unmarshal(data, &a.User)
}
