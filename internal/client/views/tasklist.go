package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/dmitrijs2005/taskdesk/internal/client/api"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/client/services"
	"github.com/dmitrijs2005/taskdesk/internal/client/session"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Banner texts set on TaskListPage.Notice when an action fails.
const (
	NoticeLoadFailed    = "Failed to load tasks"
	NoticeCreateFailed  = "Failed to create task"
	NoticeUpdateFailed  = "Failed to update task"
	NoticeStatusFailed  = "Failed to change status"
	NoticeDeleteFailed  = "Failed to delete task"
	NoticeProfileFailed = "Failed to update profile"
)

const dateLayout = "2006-01-02"

// TaskListPage is the main screen: the current user, their tasks, the
// new-task form and the two edit dialogs.
//
// Every mutation is a single request followed by a full re-fetch of the
// list; nothing is updated locally. Failures other than an expired session
// are reported through Notice.
type TaskListPage struct {
	// new-task form
	Title       string
	Description string

	EditTask EditTaskDialog
	Profile  EditProfileDialog

	client  api.Client
	session *session.Session
	auth    services.AuthService
	log     logging.Logger

	mu      sync.Mutex
	user    *models.User
	tasks   []models.Task
	loading bool
	notice  string
}

// NewTaskListPage builds the page. Logging out, by the user or after an
// expired session, goes through auth.
func NewTaskListPage(client api.Client, s *session.Session, auth services.AuthService, log logging.Logger) *TaskListPage {
	return &TaskListPage{client: client, session: s, auth: auth, log: log}
}

// User returns the current user, or nil until it has been fetched.
func (p *TaskListPage) User() *models.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.user == nil {
		return nil
	}
	u := *p.user
	return &u
}

// Tasks returns a copy of the list in server order.
func (p *TaskListPage) Tasks() []models.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Task(nil), p.tasks...)
}

func (p *TaskListPage) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Notice returns the banner message of the last failed action, or "".
func (p *TaskListPage) Notice() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.notice
}

func (p *TaskListPage) ClearNotice() {
	p.mu.Lock()
	p.notice = ""
	p.mu.Unlock()
}

func (p *TaskListPage) fail(ctx context.Context, notice string, err error) {
	p.log.Warn(ctx, notice, logging.Err(err))
	p.mu.Lock()
	p.notice = notice
	p.mu.Unlock()
}

// Mount enters the page. Without a session token it sends the user to the
// login form and makes no requests. Otherwise the user and the task list are
// fetched concurrently.
func (p *TaskListPage) Mount(ctx context.Context) Route {
	if !p.session.Active() {
		return RouteLogin
	}
	p.ClearNotice()

	route := RouteTasks
	var g errgroup.Group
	g.Go(func() error {
		p.FetchUser(ctx)
		return nil
	})
	g.Go(func() error {
		route = p.FetchTasks(ctx)
		return nil
	})
	_ = g.Wait()

	return route
}

// FetchUser loads the current user. Failures leave the user unset. The
// result is dropped if the session ended or changed while the request was
// in flight.
func (p *TaskListPage) FetchUser(ctx context.Context) {
	token, active := p.session.Token()
	if !active {
		return
	}

	u, err := p.client.Me(ctx)
	if err != nil {
		p.log.Debug(ctx, "fetch user failed", logging.Err(err))
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if cur, ok := p.session.Token(); !ok || cur != token {
		p.log.Debug(ctx, "session changed, dropping fetched user")
		return
	}
	p.user = u
}

// FetchTasks reloads the list. A 401 ends the session and returns
// RouteLogin; any other failure keeps the current list and sets Notice.
func (p *TaskListPage) FetchTasks(ctx context.Context) Route {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	tasks, err := p.client.ListTasks(ctx)

	if err != nil {
		p.mu.Lock()
		p.loading = false
		p.mu.Unlock()

		if errors.Is(err, api.ErrUnauthorized) {
			p.log.Info(ctx, "session expired")
			p.endSession(ctx)
			return RouteLogin
		}
		p.fail(ctx, NoticeLoadFailed, err)
		return RouteTasks
	}

	p.mu.Lock()
	p.tasks = tasks
	p.loading = false
	p.mu.Unlock()
	return RouteTasks
}

// CreateTask submits the new-task form. The form is cleared and the list
// re-fetched whether or not the server accepted it.
func (p *TaskListPage) CreateTask(ctx context.Context) Route {
	p.ClearNotice()

	draft := models.TaskDraft{Title: p.Title, Description: p.Description}
	p.Title, p.Description = "", ""

	if err := p.client.CreateTask(ctx, draft); err != nil {
		p.fail(ctx, NoticeCreateFailed, err)
	}
	return p.FetchTasks(ctx)
}

// ChangeStatus sets the status of task id, then re-fetches.
func (p *TaskListPage) ChangeStatus(ctx context.Context, id string, status models.TaskStatus) Route {
	p.ClearNotice()

	if err := p.client.ChangeStatus(ctx, id, status); err != nil {
		p.fail(ctx, NoticeStatusFailed, err)
	}
	return p.FetchTasks(ctx)
}

// SaveTask sends a full edit of task, closes the edit dialog and re-fetches.
func (p *TaskListPage) SaveTask(ctx context.Context, task models.Task) Route {
	p.ClearNotice()

	err := p.client.UpdateTask(ctx, task.ID, models.TaskEdit{
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
	})
	if err != nil {
		p.fail(ctx, NoticeUpdateFailed, err)
	}
	p.EditTask.Close()
	return p.FetchTasks(ctx)
}

// DeleteTask removes task id, then re-fetches.
func (p *TaskListPage) DeleteTask(ctx context.Context, id string) Route {
	p.ClearNotice()

	if err := p.client.DeleteTask(ctx, id); err != nil {
		p.fail(ctx, NoticeDeleteFailed, err)
	}
	return p.FetchTasks(ctx)
}

// SaveProfile sends the profile update. On success the user is replaced by
// the server's copy and the profile dialog closes; on failure Notice is set
// and the dialog stays open.
func (p *TaskListPage) SaveProfile(ctx context.Context, update models.ProfileUpdate) bool {
	p.ClearNotice()

	u, err := p.client.UpdateMe(ctx, update)
	if err != nil {
		p.fail(ctx, NoticeProfileFailed, err)
		return false
	}

	p.mu.Lock()
	p.user = u
	p.mu.Unlock()
	p.Profile.Close()
	return true
}

// Logout ends the session and drops everything the page loaded.
func (p *TaskListPage) Logout(ctx context.Context) Route {
	p.endSession(ctx)
	return RouteLogin
}

func (p *TaskListPage) endSession(ctx context.Context) {
	if err := p.auth.Logout(ctx); err != nil {
		p.log.Error(ctx, "failed to clear session", logging.Err(err))
	}

	p.mu.Lock()
	p.user = nil
	p.tasks = nil
	p.notice = ""
	p.mu.Unlock()

	p.Title, p.Description = "", ""
	p.EditTask.Close()
	p.Profile.Close()
}

// Lookup finds a task by its 1-based row number or by id.
func (p *TaskListPage) Lookup(ref string) (models.Task, bool) {
	tasks := p.Tasks()

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(tasks) {
		return tasks[n-1], true
	}
	for _, t := range tasks {
		if t.ID == ref {
			return t, true
		}
	}
	return models.Task{}, false
}

// OpenEditTask opens the edit dialog on the task ref points to.
func (p *TaskListPage) OpenEditTask(ref string) bool {
	t, ok := p.Lookup(ref)
	if !ok {
		return false
	}
	p.EditTask.Show(t)
	return true
}

func (p *TaskListPage) CloseEditTask() {
	p.EditTask.Close()
}

// OpenProfile opens the profile dialog on the current user.
func (p *TaskListPage) OpenProfile() {
	p.Profile.Show(p.User())
}

func (p *TaskListPage) CloseProfile() {
	p.Profile.Close()
}

// Render writes the page as text.
func (p *TaskListPage) Render(w io.Writer) error {
	p.mu.Lock()
	user := p.user
	tasks := append([]models.Task(nil), p.tasks...)
	loading := p.loading
	notice := p.notice
	p.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Hi, %s\n", user.DisplayName())
	if user != nil && user.Avatar != "" {
		fmt.Fprintf(&b, "Avatar: %s\n", user.Avatar)
	}
	if notice != "" {
		fmt.Fprintf(&b, "! %s\n", notice)
	}
	b.WriteString("\n")

	switch {
	case loading:
		b.WriteString("Loading...\n")
	case len(tasks) == 0:
		b.WriteString("No tasks\n")
	default:
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tTITLE\tDESCRIPTION\tSTATUS\tOWNER\tCREATED")
		for i, t := range tasks {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				i+1, t.Title, t.Description, t.Status.Label(), t.User.Display(), createdDate(t))
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("render tasks: %w", err)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func createdDate(t models.Task) string {
	ts, ok := t.Created()
	if !ok {
		return ""
	}
	return ts.Local().Format(dateLayout)
}
