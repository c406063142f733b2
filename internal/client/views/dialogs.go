package views

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
)

// EditTaskDialog edits the title and description of one task. It performs
// no I/O; the task list sends the result.
type EditTaskDialog struct {
	Open        bool
	Task        *models.Task
	Title       string
	Description string
}

// Show targets t and seeds the fields from it.
func (d *EditTaskDialog) Show(t models.Task) {
	d.Task = &t
	d.Title = t.Title
	d.Description = t.Description
	d.Open = true
}

// Save returns the target task with the edited title and description. Every
// other field is passed through. ok is false when there is no target.
func (d *EditTaskDialog) Save() (task models.Task, ok bool) {
	if d.Task == nil {
		return models.Task{}, false
	}
	task = *d.Task
	task.Title = d.Title
	task.Description = d.Description
	return task, true
}

func (d *EditTaskDialog) Close() {
	*d = EditTaskDialog{}
}

// EditProfileDialog edits the current user's name, email and avatar.
type EditProfileDialog struct {
	Open   bool
	User   *models.User
	Name   string
	Email  string
	Avatar *models.AvatarFile
}

// Show targets u, seeds name and email and drops any staged avatar. A nil
// user opens the dialog with empty fields.
func (d *EditProfileDialog) Show(u *models.User) {
	d.Avatar = nil
	d.Name, d.Email = "", ""
	d.User = nil
	if u != nil {
		cp := *u
		d.User = &cp
		d.Name = u.Name
		d.Email = u.Email
	}
	d.Open = true
}

// StageAvatar reads the image at path to be sent with the next Save. The
// content type is sniffed from the data; anything but an image is refused
// and the previously staged file is kept.
func (d *EditProfileDialog) StageAvatar(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read avatar: %w", err)
	}

	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("%w: %s is %s", models.ErrNotAnImage, filepath.Base(path), ct)
	}

	d.Avatar = &models.AvatarFile{
		FileName:    filepath.Base(path),
		ContentType: ct,
		Data:        data,
	}
	return nil
}

// CurrentAvatar returns the avatar URL of the target user, or "".
func (d *EditProfileDialog) CurrentAvatar() string {
	if d.User == nil {
		return ""
	}
	return d.User.Avatar
}

// Save builds the profile payload. Avatar is set only if one was staged.
func (d *EditProfileDialog) Save() models.ProfileUpdate {
	return models.ProfileUpdate{
		Name:   d.Name,
		Email:  d.Email,
		Avatar: d.Avatar,
	}
}

func (d *EditProfileDialog) Close() {
	*d = EditProfileDialog{}
}
