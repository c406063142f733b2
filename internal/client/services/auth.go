// Package services contains application services for the task client.
// This file defines the authentication service: login, signup and logout on
// top of the API client and the session.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskdesk/internal/client/api"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/client/repositories/kv"
	"github.com/dmitrijs2005/taskdesk/internal/client/session"
)

// AuthService defines authentication operations for the client.
//
// Contract:
//   - Login: authenticate against the server and persist the returned token.
//   - Signup: create a new account; does not log in.
//   - Logout: discard the session token and wipe the local client state.
//
// Errors from the API are returned unchanged (see package api) so callers
// can tell server rejections from transport failures.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Signup(ctx context.Context, reg models.Registration) error
	Logout(ctx context.Context) error
}

type authService struct {
	client  api.Client
	session *session.Session
	state   kv.Repository
}

// NewAuthService constructs an AuthService bound to the given API client and
// session. state is the local client state wiped on logout; it may be nil
// when nothing is persisted.
func NewAuthService(client api.Client, s *session.Session, state kv.Repository) AuthService {
	return &authService{client: client, session: s, state: state}
}

// Login sends the credentials once. On success the token replaces any
// previous session token and the returned user is passed back.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	resp, err := a.client.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	if err != nil {
		return nil, err
	}

	if err := a.session.Begin(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &resp.User, nil
}

// Signup registers a new account. An empty role defaults to user.
func (a *authService) Signup(ctx context.Context, reg models.Registration) error {
	if reg.Role == "" {
		reg.Role = models.RoleUser
	}
	return a.client.Signup(ctx, reg)
}

// Logout removes the session token, then clears whatever else the client
// keeps locally. The session ends even if either step fails.
func (a *authService) Logout(ctx context.Context) error {
	endErr := a.session.End(ctx)

	if a.state != nil {
		if err := a.state.Clear(ctx); err != nil {
			return fmt.Errorf("clear local state: %w", err)
		}
	}
	return endErr
}
