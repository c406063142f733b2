package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Signup(context.Context) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) List(context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Add(context.Context) error  { f.calls = append(f.calls, "add"); return f.err }
func (f *fakeExec) Edit(_ context.Context, ref string) error {
	f.calls = append(f.calls, "edit "+ref)
	return nil
}
func (f *fakeExec) Status(_ context.Context, ref, status string) error {
	f.calls = append(f.calls, "status "+ref+" "+status)
	return nil
}
func (f *fakeExec) Delete(_ context.Context, ref string) error {
	f.calls = append(f.calls, "delete "+ref)
	return nil
}
func (f *fakeExec) Profile(context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}

func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	var b strings.Builder
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&b, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return &b
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"signup",
		"login",
		"help",
		"",
		"add",
		"l",
		"edit 2",
		"status 2 In Progress",
		"delete abc",
		"profile",
		"logout",
		"foobar",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "Ann" }, rdr(input))

	assert.Equal(t, []string{
		"signup",
		"login",
		"add",
		"list",
		"edit 2",
		"status 2 In Progress",
		"delete abc",
		"profile",
		"logout",
	}, exec.calls)

	s := out.String()
	assert.Contains(t, s, "Available commands: signup, login, exit")
	assert.Contains(t, s, "Available commands: (l)ist")
	assert.Contains(t, s, "Unknown command: foobar")
	assert.Contains(t, s, "td (Ann)> ")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("edit\nstatus 1\ndelete\nquit\n"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, out.String(), "Usage: edit <n|id>")
	assert.Contains(t, out.String(), "Usage: status <n|id>")
	assert.Contains(t, out.String(), "Usage: delete <n|id>")
	assert.Contains(t, out.String(), "td> ")
}

func TestRunREPL_PrintsErrorsAndStopsAtEOF(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("add"))

	assert.Equal(t, []string{"add"}, exec.calls)
	assert.Contains(t, out.String(), "Error: boom")
}
