package models

// AvatarFile is an image staged for upload with a profile update.
type AvatarFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ProfileUpdate is the payload of the edit-profile dialog. Avatar is nil
// unless the user picked a new image.
type ProfileUpdate struct {
	Name   string
	Email  string
	Avatar *AvatarFile
}

// TaskDraft carries the fields sent when creating a task.
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskEdit carries the fields sent on a full task update.
type TaskEdit struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
}

// StatusChange is the body of a status-only update.
type StatusChange struct {
	Status TaskStatus `json:"status"`
}
