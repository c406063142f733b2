// Package apitest provides an in-memory stand-in for the task service REST
// API, for tests of the client packages.
//
// The fake keeps users, tokens and tasks in memory, records every request it
// receives and can be told to fail a route with a given status.
package apitest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/gorilla/mux"
)

// Request is a recorded call.
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	ContentType   string
}

// ProfileForm is a recorded profile update.
type ProfileForm struct {
	Name           string
	Email          string
	HasAvatar      bool
	AvatarFileName string
	AvatarType     string
	AvatarSize     int
}

type failure struct {
	status  int
	message string
}

type account struct {
	user     models.User
	password string
}

// Server is the fake API. Zero or more users and tasks can be seeded before
// the client under test starts talking to it.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	accounts map[string]*account // by email
	tokens   map[string]string   // token -> user id
	tasks    []models.Task
	requests []Request
	profiles []ProfileForm
	failures map[string]failure // "METHOD route-template"
	nextID   int
	now      func() time.Time
}

// NewServer starts a fake API and closes it when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		accounts: map[string]*account{},
		tokens:   map[string]string{},
		failures: map[string]failure{},
		now:      func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.record, s.injectFailures)

	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/signup", s.handleSignup).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(s.requireToken)
	authed.HandleFunc("/api/auth/me", s.handleMe).Methods(http.MethodGet)
	authed.HandleFunc("/api/auth/me", s.handleUpdateMe).Methods(http.MethodPut)
	authed.HandleFunc("/api/task", s.handleListTasks).Methods(http.MethodGet)
	authed.HandleFunc("/api/task", s.handleCreateTask).Methods(http.MethodPost)
	authed.HandleFunc("/api/task/{id}", s.handleUpdateTask).Methods(http.MethodPut)
	authed.HandleFunc("/api/task/{id}", s.handleDeleteTask).Methods(http.MethodDelete)
	authed.HandleFunc("/api/task/{id}/status", s.handleChangeStatus).Methods(http.MethodPatch)

	return r
}

// AddUser registers an account and returns its id.
func (s *Server) AddUser(u models.User, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(u, password)
}

func (s *Server) addUserLocked(u models.User, password string) string {
	if u.ID == "" {
		u.ID = s.newIDLocked("u")
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	s.accounts[u.Email] = &account{user: u, password: password}
	return u.ID
}

// IssueToken creates a valid token for the user id.
func (s *Server) IssueToken(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueTokenLocked(userID)
}

func (s *Server) issueTokenLocked(userID string) string {
	token := s.newIDLocked("tok")
	s.tokens[token] = userID
	return token
}

// RevokeAll invalidates every issued token.
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]string{}
}

// AddTask seeds a task, keeping the given fields as they are.
func (s *Server) AddTask(task models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task.ID == "" {
		task.ID = s.newIDLocked("t")
	}
	s.tasks = append(s.tasks, task)
}

// Tasks returns a copy of the stored tasks.
func (s *Server) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task(nil), s.tasks...)
}

// User returns the account stored under email.
func (s *Server) User(email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return models.User{}, false
	}
	return a.user, true
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests matched method and exact path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// ResetRequests forgets recorded requests.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// ProfileUpdates returns the received profile forms.
func (s *Server) ProfileUpdates() []ProfileForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ProfileForm(nil), s.profiles...)
}

// Fail makes every request to the route template (e.g. "/api/task/{id}")
// with the given method answer status. An empty message sends no body.
func (s *Server) Fail(method, route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+route] = failure{status: status, message: message}
}

// Recover removes a failure installed with Fail.
func (s *Server) Recover(method, route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, method+" "+route)
}

func (s *Server) newIDLocked(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			ContentType:   r.Header.Get("Content-Type"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		s.mu.Lock()
		f, ok := s.failures[r.Method+" "+route]
		s.mu.Unlock()

		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if f.message == "" {
			w.WriteHeader(f.status)
			return
		}
		writeJSON(w, f.status, map[string]string{"message": f.message})
	})
}

type userIDKey struct{}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		userID, known := s.tokens[token]
		s.mu.Unlock()

		if !ok || !known {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey{}, userID)))
	})
}

func userIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey{}).(string)
	return id
}

func (s *Server) currentUserLocked(r *http.Request) *account {
	id := userIDFrom(r)
	for _, a := range s.accounts {
		if a.user.ID == id {
			return a
		}
	}
	return nil
}

func (s *Server) findTaskLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[creds.Email]
	if !ok || a.password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{Token: s.issueTokenLocked(a.user.ID), User: a.user})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[reg.Email]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "User already exists"})
		return
	}
	id := s.addUserLocked(models.User{Email: reg.Email, Name: reg.Name, Role: reg.Role}, reg.Password)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered", "_id": id})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.currentUserLocked(r)
	if a == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
		return
	}
	writeJSON(w, http.StatusOK, a.user)
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid form"})
		return
	}

	form := ProfileForm{Name: r.FormValue("name"), Email: r.FormValue("email")}
	if file, header, err := r.FormFile("avatar"); err == nil {
		data, _ := io.ReadAll(file)
		_ = file.Close()
		form.HasAvatar = true
		form.AvatarFileName = header.Filename
		form.AvatarType = header.Header.Get("Content-Type")
		form.AvatarSize = len(data)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles = append(s.profiles, form)

	a := s.currentUserLocked(r)
	if a == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
		return
	}

	delete(s.accounts, a.user.Email)
	a.user.Name = form.Name
	a.user.Email = form.Email
	if form.HasAvatar {
		a.user.Avatar = "/uploads/" + form.AvatarFileName
	}
	s.accounts[a.user.Email] = a

	writeJSON(w, http.StatusOK, a.user)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]models.Task{}, s.tasks...)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var draft models.TaskDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid body"})
		return
	}
	if strings.TrimSpace(draft.Title) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Title is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().Format(time.RFC3339)
	task := models.Task{
		ID:          s.newIDLocked("t"),
		Title:       draft.Title,
		Description: draft.Description,
		Status:      models.StatusPending,
		User:        models.Owner{Raw: userIDFrom(r)},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	s.tasks = append(s.tasks, task)
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var edit models.TaskEdit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTaskLocked(mux.Vars(r)["id"])
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
		return
	}
	s.tasks[i].Title = edit.Title
	s.tasks[i].Description = edit.Description
	s.tasks[i].Status = edit.Status
	s.tasks[i].UpdatedAt = s.now().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, s.tasks[i])
}

func (s *Server) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	var change models.StatusChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTaskLocked(mux.Vars(r)["id"])
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
		return
	}
	s.tasks[i].Status = change.Status
	writeJSON(w, http.StatusOK, s.tasks[i])
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTaskLocked(mux.Vars(r)["id"])
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
