package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// RecordSeparator delimits fields of a stored record and is not allowed in names.
	RecordSeparator = "<>"

	// DateLayout accepts both zero-padded and bare day/month, e.g. 01.01.2099 and 1.1.2099.
	DateLayout = "2.1.2006"

	TimestampLayout = "2006-01-02T15:04:05.999999999"
)

var timestampLayouts = []string{
	TimestampLayout,
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
}

type Task struct {
	ID        string
	Name      string
	DueDate   string
	CreatedAt time.Time
	Status    TaskStatus
}

// NewTask builds a task and decides its initial status: a task without a due
// date is due one day after creation. dueDate is not validated here, callers
// check it with ParseDate first; text that does not parse is kept as is and
// counts as no due date when picking the status.
func NewTask(id, name, dueDate string, createdAt time.Time) *Task {
	due := createdAt.Add(24 * time.Hour)
	if dueDate != "" {
		if d, ok := ParseDate(dueDate); ok {
			due = d
		}
	}

	status := TaskStatusOverdue
	if due.After(createdAt) {
		status = TaskStatusActive
	}

	return &Task{
		ID:        id,
		Name:      name,
		DueDate:   dueDate,
		CreatedAt: createdAt,
		Status:    status,
	}
}

// Deadline returns the parsed due date, ok is false when the date is absent or malformed.
func (t Task) Deadline() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	return ParseDate(t.DueDate)
}

// IsOverdue is derived from the due date and is independent of the stored
// TaskStatusOverdue, which is only assigned at creation.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Status != TaskStatusActive {
		return false
	}
	deadline, ok := t.Deadline()
	if !ok {
		return false
	}
	return deadline.Before(now)
}

type TaskStatus string

const (
	TaskStatusActive  TaskStatus = "active"
	TaskStatusDone    TaskStatus = "done"
	TaskStatusOverdue TaskStatus = "overdue"
)

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch st := TaskStatus(s); st {
	case TaskStatusActive, TaskStatusDone, TaskStatusOverdue:
		return st, nil
	default:
		return "", fmt.Errorf("unknown task status %q", s)
	}
}

func (s TaskStatus) StringLocalized() string {
	switch s {
	case TaskStatusActive:
		return "активна"
	case TaskStatusDone:
		return "выполнена"
	case TaskStatusOverdue:
		return "просрочена"
	default:
		panic(fmt.Sprintf("missing localization for %s", s))
	}
}

func ParseDate(s string) (time.Time, bool) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

func ParseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("could not parse timestamp %q: %w", s, lastErr)
}

var (
	ErrMalformedRecord  = errors.New("malformed task record")
	ErrEmptyName        = errors.New("task name is empty")
	ErrNameHasSeparator = errors.New("task name contains record separator")
)

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if strings.Contains(name, RecordSeparator) {
		return ErrNameHasSeparator
	}
	return nil
}

type TaskRepository interface {
	FetchTasks(ctx context.Context) ([]Task, error)
	CreateTask(ctx context.Context, task *Task) error
	ReplaceTasks(ctx context.Context, tasks []Task) error
}
