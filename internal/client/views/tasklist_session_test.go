package views

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/client/api"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/client/services"
	"github.com/dmitrijs2005/taskdesk/internal/client/session"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// removeSignalStore closes removed once the token is dropped.
type removeSignalStore struct {
	*session.MemoryStore
	removed chan struct{}
}

func (s *removeSignalStore) Remove(ctx context.Context) error {
	err := s.MemoryStore.Remove(ctx)
	close(s.removed)
	return err
}

// scriptedClient answers Me and ListTasks with the given funcs.
type scriptedClient struct {
	api.Client
	me    func(ctx context.Context) (*models.User, error)
	tasks func(ctx context.Context) ([]models.Task, error)
}

func (c *scriptedClient) Me(ctx context.Context) (*models.User, error) { return c.me(ctx) }

func (c *scriptedClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	return c.tasks(ctx)
}

func TestMount_UserArrivingAfterExpiryIsDropped(t *testing.T) {
	ctx := context.Background()
	store := &removeSignalStore{MemoryStore: &session.MemoryStore{}, removed: make(chan struct{})}
	s, err := session.Load(ctx, store)
	require.NoError(t, err)
	require.NoError(t, s.Begin(ctx, "tok"))

	client := &scriptedClient{
		tasks: func(context.Context) ([]models.Task, error) {
			return nil, &api.Error{Status: http.StatusUnauthorized}
		},
		me: func(context.Context) (*models.User, error) {
			select {
			case <-store.removed:
			case <-time.After(5 * time.Second):
				t.Error("session was never ended")
			}
			return &models.User{ID: "u1", Name: "Ann"}, nil
		},
	}

	p := NewTaskListPage(client, s, services.NewAuthService(client, s, nil), logging.Discard())

	assert.Equal(t, RouteLogin, p.Mount(ctx))
	assert.False(t, s.Active())
	assert.Nil(t, p.User())
}

func TestFetchUser_DropsUserOfReplacedSession(t *testing.T) {
	ctx := context.Background()
	s, err := session.Load(ctx, &session.MemoryStore{})
	require.NoError(t, err)
	require.NoError(t, s.Begin(ctx, "old"))

	client := &scriptedClient{
		me: func(ctx context.Context) (*models.User, error) {
			require.NoError(t, s.Begin(ctx, "new"))
			return &models.User{ID: "u1", Name: "Ann"}, nil
		},
	}

	p := NewTaskListPage(client, s, services.NewAuthService(client, s, nil), logging.Discard())
	p.FetchUser(ctx)
	assert.Nil(t, p.User())

	client.me = func(context.Context) (*models.User, error) {
		return &models.User{ID: "u2", Name: "Bob"}, nil
	}
	p.FetchUser(ctx)
	require.NotNil(t, p.User())
	assert.Equal(t, "Bob", p.User().Name)
}
