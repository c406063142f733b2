package api

import (
	"context"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
)

// Client lists the remote operations the task client uses.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Signup(ctx context.Context, reg models.Registration) error
	Me(ctx context.Context) (*models.User, error)
	UpdateMe(ctx context.Context, update models.ProfileUpdate) (*models.User, error)

	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, draft models.TaskDraft) error
	UpdateTask(ctx context.Context, id string, edit models.TaskEdit) error
	ChangeStatus(ctx context.Context, id string, status models.TaskStatus) error
	DeleteTask(ctx context.Context, id string) error
}

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token() (string, bool)
}
