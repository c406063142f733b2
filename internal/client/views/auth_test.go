package views

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteString(t *testing.T) {
	assert.Equal(t, "login", RouteLogin.String())
	assert.Equal(t, "signup", RouteSignup.String())
	assert.Equal(t, "tasks", RouteTasks.String())
	assert.Equal(t, "unknown", Route(42).String())
}

func TestLoginPage_Success(t *testing.T) {
	e := newTestEnv(t)
	e.srv.AddUser(models.User{Email: "ann@example.org", Name: "Ann"}, "pw")

	p := NewLoginPage(e.auth, logging.Discard())
	p.Email = "ann@example.org"
	p.Password = []byte("pw")

	require.Equal(t, RouteTasks, p.Submit(context.Background()))
	require.Empty(t, p.Message)

	tok, ok := e.storedToken(t)
	require.True(t, ok)
	require.NotEmpty(t, tok)

	// the stored token is accepted by the server
	u, err := e.client.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Ann", u.Name)
}

func TestLoginPage_Failures(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(e *testEnv)
		want    string
	}{
		{
			name:    "server message",
			prepare: func(e *testEnv) {},
			want:    "Invalid credentials",
		},
		{
			name: "no message falls back",
			prepare: func(e *testEnv) {
				e.srv.Fail(http.MethodPost, "/api/auth/login", http.StatusInternalServerError, "")
			},
			want: MsgLoginFailed,
		},
		{
			name:    "network",
			prepare: func(e *testEnv) { e.srv.Close() },
			want:    MsgNetworkError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			tt.prepare(e)

			p := NewLoginPage(e.auth, logging.Discard())
			p.Email = "nobody@example.org"
			p.Password = []byte("x")
			p.Message = "stale"

			require.Equal(t, RouteLogin, p.Submit(context.Background()))
			assert.Equal(t, tt.want, p.Message)
			assert.Equal(t, "nobody@example.org", p.Email, "form keeps its values")

			_, ok := e.storedToken(t)
			assert.False(t, ok)
		})
	}
}

func TestSignupPage_DefaultsAndSuccess(t *testing.T) {
	e := newTestEnv(t)

	p := NewSignupPage(e.auth, logging.Discard())
	require.Equal(t, models.RoleUser, p.Role)

	p.Name = "Bob"
	p.Email = "bob@example.org"
	p.Password = []byte("secret")

	require.Equal(t, RouteLogin, p.Submit(context.Background()))
	require.Empty(t, p.Message)

	u, ok := e.srv.User("bob@example.org")
	require.True(t, ok)
	assert.Equal(t, "Bob", u.Name)
	assert.Equal(t, models.RoleUser, u.Role)

	_, stored := e.storedToken(t)
	assert.False(t, stored, "signup does not log in")
}

func TestSignupPage_Failures(t *testing.T) {
	e := newTestEnv(t)
	e.srv.AddUser(models.User{Email: "bob@example.org"}, "pw")

	p := NewSignupPage(e.auth, logging.Discard())
	p.Email = "bob@example.org"
	p.Role = models.RoleAdmin

	require.Equal(t, RouteSignup, p.Submit(context.Background()))
	assert.Equal(t, "User already exists", p.Message)

	e.srv.Fail(http.MethodPost, "/api/auth/signup", http.StatusBadGateway, "")
	require.Equal(t, RouteSignup, p.Submit(context.Background()))
	assert.Equal(t, MsgSignupFailed, p.Message)

	e.srv.Close()
	require.Equal(t, RouteSignup, p.Submit(context.Background()))
	assert.Equal(t, MsgNetworkError, p.Message)
}
