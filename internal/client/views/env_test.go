package views

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/apitest"
	"github.com/dmitrijs2005/taskdesk/internal/client/api"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/client/services"
	"github.com/dmitrijs2005/taskdesk/internal/client/session"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
	"github.com/stretchr/testify/require"
)

// testEnv wires views to a fake API the same way the CLI does.
type testEnv struct {
	srv     *apitest.Server
	store   *session.MemoryStore
	session *session.Session
	client  *api.HTTPClient
	auth    services.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	srv := apitest.NewServer(t)
	store := &session.MemoryStore{}
	s, err := session.Load(context.Background(), store)
	require.NoError(t, err)

	client := api.NewHTTPClient(srv.URL, 5*time.Second, s, logging.Discard())
	return &testEnv{
		srv:     srv,
		store:   store,
		session: s,
		client:  client,
		auth:    services.NewAuthService(client, s, nil),
	}
}

// loggedIn seeds Ann and starts a session for her.
func (e *testEnv) loggedIn(t *testing.T) string {
	t.Helper()
	id := e.srv.AddUser(models.User{Email: "ann@example.org", Name: "Ann"}, "pw")
	require.NoError(t, e.session.Begin(context.Background(), e.srv.IssueToken(id)))
	return id
}

func (e *testEnv) taskPage() *TaskListPage {
	return NewTaskListPage(e.client, e.session, e.auth, logging.Discard())
}

func (e *testEnv) storedToken(t *testing.T) (string, bool) {
	t.Helper()
	tok, ok, err := e.store.Get(context.Background())
	require.NoError(t, err)
	return tok, ok
}
