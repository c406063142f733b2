package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/taskdesk/internal/client/api"
	"github.com/dmitrijs2005/taskdesk/internal/client/config"
	"github.com/dmitrijs2005/taskdesk/internal/client/repositories/kv"
	"github.com/dmitrijs2005/taskdesk/internal/client/services"
	"github.com/dmitrijs2005/taskdesk/internal/client/session"
	"github.com/dmitrijs2005/taskdesk/internal/client/storage"
	"github.com/dmitrijs2005/taskdesk/internal/client/views"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

type App struct {
	log     logging.Logger
	closer  io.Closer
	session *session.Session

	login  *views.LoginPage
	signup *views.SignupPage
	tasks  *views.TaskListPage
	route  views.Route

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local state, restores the saved session and builds the
// API client and views from c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	st, err := openState(ctx, c.StatePath)
	if err != nil {
		return nil, err
	}

	s, err := session.Load(ctx, st.store)
	if err != nil {
		if st.closer != nil {
			_ = st.closer.Close()
		}
		return nil, err
	}

	client := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, s, log.With("component", "api"))

	a := newApp(client, s, st.repo, log, os.Stdin, os.Stdout)
	a.closer = st.closer
	return a, nil
}

// newApp wires the views. state is the local client state wiped on logout,
// nil when nothing is persisted.
func newApp(client api.Client, s *session.Session, state kv.Repository, log logging.Logger, in io.Reader, out io.Writer) *App {
	auth := services.NewAuthService(client, s, state)
	return &App{
		log:     log,
		session: s,
		login:   views.NewLoginPage(auth, log),
		signup:  views.NewSignupPage(auth, log),
		tasks:   views.NewTaskListPage(client, s, auth, log),
		route:   views.RouteLogin,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// localState is what openState found at the configured path. repo and
// closer are nil unless a state database is in use.
type localState struct {
	store  session.Store
	repo   kv.Repository
	closer io.Closer
}

// openState picks the token store for path: none for "", in-process for
// ":memory:", the SQLite state database otherwise.
func openState(ctx context.Context, path string) (localState, error) {
	switch path {
	case "":
		return localState{store: session.NopStore{}}, nil
	case storage.MemoryPath:
		return localState{store: &session.MemoryStore{}}, nil
	}

	db, err := storage.Open(ctx, path)
	if err != nil {
		return localState{}, fmt.Errorf("open state %s: %w", path, err)
	}
	repo := kv.NewSQLiteRepository(db)
	return localState{store: session.NewSQLiteStore(repo), repo: repo, closer: db}, nil
}

// Run shows the starting screen and blocks in the REPL until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to taskdesk (type 'help' for commands)")
	a.navigate(ctx, a.tasks.Mount(ctx))

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() {
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		a.log.Error(context.Background(), "failed to close state", logging.Err(err))
	}
	a.closer = nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

// status is the prompt suffix: the user's name when logged in.
func (a *App) status() string {
	if !a.isLoggedIn() {
		return ""
	}
	return a.tasks.User().DisplayName()
}

// navigate switches to route and shows it.
func (a *App) navigate(ctx context.Context, route views.Route) {
	prev := a.route
	a.route = route

	switch route {
	case views.RouteTasks:
		a.render(ctx)
	case views.RouteLogin:
		if prev == views.RouteTasks {
			printlnFn("You have been logged out.")
		}
		printlnFn("Please log in ('login') or create an account ('signup').")
	case views.RouteSignup:
		printlnFn("Type 'signup' to try again or 'login' if you already have an account.")
	}
}

func (a *App) render(ctx context.Context) {
	if err := a.tasks.Render(a.out); err != nil {
		a.log.Error(ctx, "failed to render tasks", logging.Err(err))
	}
}

// requireLogin reports whether a session is active and tells the user to
// log in if not.
func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	printlnFn("Please log in first.")
	return false
}
