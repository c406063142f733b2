package models

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskStatuses returns all statuses in selector order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}
}

// Label returns the human readable name shown in the status selector.
func (s TaskStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}

// ParseTaskStatus accepts either a wire value ("in-progress") or a label
// ("In Progress"), case-insensitively.
func ParseTaskStatus(s string) (TaskStatus, error) {
	in := strings.TrimSpace(s)
	for _, st := range TaskStatuses() {
		if strings.EqualFold(in, string(st)) || strings.EqualFold(in, st.Label()) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Task is a single to-do item. Timestamps are kept as the ISO-8601 strings
// the API sends and are parsed only for display.
type Task struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	User        Owner      `json:"user"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

// Created parses CreatedAt. The second result is false when the value is
// missing or not a valid timestamp.
func (t Task) Created() (time.Time, bool) {
	return parseTimestamp(t.CreatedAt)
}

func parseTimestamp(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
