package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/client/views"
	"github.com/dmitrijs2005/taskdesk/internal/common"
)

// Login prompts for email and password and submits the login form once.
//
// On success the task list is shown. On failure the form's message is
// printed and the email is offered as the default on the next attempt. The
// password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := promptDefault(a.reader, "Enter email", a.login.Email, a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.login.Email = email
	a.login.Password = password
	route := a.login.Submit(ctx)
	a.login.Password = nil

	if route != views.RouteTasks {
		printlnFn(a.login.Message)
		return nil
	}

	printlnFn("Login successful")
	a.navigate(ctx, a.tasks.Mount(ctx))
	return nil
}

// Signup prompts for name, email, password and role and registers the
// account. It does not log in.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role, err := promptDefault(a.reader, roleLabel(), string(models.RoleUser), a.out)
	if err != nil {
		return err
	}
	if !models.UserRole(role).Valid() {
		printlnFn("Unknown role:", role)
		return nil
	}

	a.signup.Name = name
	a.signup.Email = email
	a.signup.Password = password
	a.signup.Role = models.UserRole(role)
	route := a.signup.Submit(ctx)
	a.signup.Password = nil

	if route != views.RouteLogin {
		printlnFn(a.signup.Message)
		a.navigate(ctx, route)
		return nil
	}

	printlnFn(fmt.Sprintf("Account %s created, please log in.", email))
	a.login.Email = email
	a.route = views.RouteLogin
	return nil
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	a.navigate(ctx, a.tasks.Logout(ctx))
	return nil
}

// roleLabel is the signup role prompt, listing the roles models.Roles offers.
func roleLabel() string {
	roles := models.Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return fmt.Sprintf("Role (%s)", strings.Join(names, "/"))
}
