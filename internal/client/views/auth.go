package views

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskdesk/internal/client/api"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/client/services"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

// Messages shown under the login and signup forms when the server gives no
// reason of its own, or cannot be reached.
const (
	MsgLoginFailed  = "Login failed"
	MsgSignupFailed = "Signup failed"
	MsgNetworkError = "Network error"
)

// authMessage maps a failed auth call to the text shown under the form.
func authMessage(err error, fallback string) string {
	if errors.Is(err, api.ErrUnavailable) {
		return MsgNetworkError
	}
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}

// LoginPage is the login form.
type LoginPage struct {
	Email    string
	Password []byte
	Message  string

	auth services.AuthService
	log  logging.Logger
}

func NewLoginPage(auth services.AuthService, log logging.Logger) *LoginPage {
	return &LoginPage{auth: auth, log: log}
}

// Submit sends the form once. On success the session holds the new token and
// the task list is next; on failure the form keeps its values and Message
// explains what went wrong.
func (p *LoginPage) Submit(ctx context.Context) Route {
	p.Message = ""

	if _, err := p.auth.Login(ctx, p.Email, p.Password); err != nil {
		p.log.Debug(ctx, "login failed", logging.Err(err))
		p.Message = authMessage(err, MsgLoginFailed)
		return RouteLogin
	}
	return RouteTasks
}

// SignupPage is the registration form.
type SignupPage struct {
	Name     string
	Email    string
	Password []byte
	Role     models.UserRole
	Message  string

	auth services.AuthService
	log  logging.Logger
}

func NewSignupPage(auth services.AuthService, log logging.Logger) *SignupPage {
	return &SignupPage{Role: models.RoleUser, auth: auth, log: log}
}

// Submit registers the account. A successful signup does not log in; the
// user is sent to the login form.
func (p *SignupPage) Submit(ctx context.Context) Route {
	p.Message = ""

	err := p.auth.Signup(ctx, models.Registration{
		Name:     p.Name,
		Email:    p.Email,
		Password: string(p.Password),
		Role:     p.Role,
	})
	if err != nil {
		p.log.Debug(ctx, "signup failed", logging.Err(err))
		p.Message = authMessage(err, MsgSignupFailed)
		return RouteSignup
	}
	return RouteLogin
}
