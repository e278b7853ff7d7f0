package textfile

import (
	"fmt"
	"strings"

	"github.com/agalitsyn/task-tracker/internal/model"
)

const (
	Separator = model.RecordSeparator

	fieldsPerRecord = 5
)

// ParseRecord splits a line positionally; the separator is never escaped, so
// names must not contain it.
func ParseRecord(line string) (*model.Task, error) {
	parts := strings.Split(line, Separator)
	if len(parts) != fieldsPerRecord {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", model.ErrMalformedRecord, fieldsPerRecord, len(parts))
	}

	createdAt, err := model.ParseTimestamp(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedRecord, err)
	}

	status, err := model.ParseTaskStatus(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedRecord, err)
	}

	return &model.Task{
		ID:        parts[0],
		Name:      parts[1],
		DueDate:   strings.Trim(parts[2], "[]"),
		CreatedAt: createdAt,
		Status:    status,
	}, nil
}

func FormatRecord(task *model.Task) string {
	var date string
	if task.DueDate != "" {
		date = "[" + task.DueDate + "]"
	}
	return strings.Join([]string{
		task.ID,
		task.Name,
		date,
		model.FormatTimestamp(task.CreatedAt),
		string(task.Status),
	}, Separator)
}
