package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
)

// clearValue typed at an edit prompt empties the field.
const clearValue = "-"

// List reloads the user and the task list and prints it.
func (a *App) List(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	a.navigate(ctx, a.tasks.Mount(ctx))
	return nil
}

// Add prompts for a title and description and creates a task.
func (a *App) Add(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	a.tasks.Title = title
	a.tasks.Description = description
	a.navigate(ctx, a.tasks.CreateTask(ctx))
	return nil
}

// Edit opens the edit dialog on the task ref points to, prompts for the new
// title and description and saves it.
func (a *App) Edit(ctx context.Context, ref string) error {
	if !a.requireLogin() {
		return nil
	}
	if !a.tasks.OpenEditTask(ref) {
		printlnFn("Task not found:", ref)
		return nil
	}
	defer a.tasks.CloseEditTask()

	d := &a.tasks.EditTask

	title, err := promptDefault(a.reader, "Title", d.Title, a.out)
	if err != nil {
		return err
	}
	description, err := promptDefault(a.reader, "Description ('"+clearValue+"' to clear)", d.Description, a.out)
	if err != nil {
		return err
	}
	if description == clearValue {
		description = ""
	}

	d.Title = title
	d.Description = description

	task, ok := d.Save()
	if !ok {
		return nil
	}
	a.navigate(ctx, a.tasks.SaveTask(ctx, task))
	return nil
}

// Status changes the status of the task ref points to.
func (a *App) Status(ctx context.Context, ref, status string) error {
	if !a.requireLogin() {
		return nil
	}

	st, err := models.ParseTaskStatus(status)
	if err != nil {
		names := make([]string, 0, 3)
		for _, s := range models.TaskStatuses() {
			names = append(names, string(s))
		}
		printlnFn("Unknown status, use one of:", strings.Join(names, ", "))
		return nil
	}

	task, ok := a.tasks.Lookup(ref)
	if !ok {
		printlnFn("Task not found:", ref)
		return nil
	}
	a.navigate(ctx, a.tasks.ChangeStatus(ctx, task.ID, st))
	return nil
}

// Delete removes the task ref points to.
func (a *App) Delete(ctx context.Context, ref string) error {
	if !a.requireLogin() {
		return nil
	}

	task, ok := a.tasks.Lookup(ref)
	if !ok {
		printlnFn("Task not found:", ref)
		return nil
	}
	a.navigate(ctx, a.tasks.DeleteTask(ctx, task.ID))
	return nil
}
