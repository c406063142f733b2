package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
)

// Profile opens the profile dialog, prompts for name, email and an optional
// avatar image and saves it. On failure the dialog stays open so the next
// attempt starts from the values just entered.
func (a *App) Profile(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	d := &a.tasks.Profile
	if !d.Open {
		a.tasks.OpenProfile()
	}
	if cur := d.CurrentAvatar(); cur != "" {
		printlnFn("Current avatar:", cur)
	} else {
		printlnFn("No avatar")
	}

	name, err := promptDefault(a.reader, "Name", d.Name, a.out)
	if err != nil {
		return err
	}
	email, err := promptDefault(a.reader, "Email", d.Email, a.out)
	if err != nil {
		return err
	}
	d.Name, d.Email = name, email

	for {
		path, err := getSimpleText(a.reader, "Avatar image path (empty to keep)", a.out)
		if err != nil {
			return err
		}
		if path == "" {
			break
		}
		err = d.StageAvatar(path)
		if err == nil {
			break
		}
		if errors.Is(err, models.ErrNotAnImage) {
			printlnFn("Not an image, pick another file")
		} else {
			printlnFn("Error:", err)
		}
	}

	if !a.tasks.SaveProfile(ctx, d.Save()) {
		printlnFn(a.tasks.Notice())
		return nil
	}

	printlnFn("Profile updated")
	a.render(ctx)
	return nil
}
