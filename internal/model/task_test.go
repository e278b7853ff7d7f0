package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		dueDate string
		want    TaskStatus
	}{
		{name: "no due date", dueDate: "", want: TaskStatusActive},
		{name: "future date", dueDate: "01.01.2099", want: TaskStatusActive},
		{name: "past date", dueDate: "31.12.2023", want: TaskStatusOverdue},
		{name: "same day as creation", dueDate: "01.01.2024", want: TaskStatusOverdue},
		{name: "next day", dueDate: "2.1.2024", want: TaskStatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewTask("id-1", "Buy milk", tt.dueDate, createdAt)
			assert.Equal(t, tt.want, task.Status)
			assert.Equal(t, "id-1", task.ID)
			assert.Equal(t, "Buy milk", task.Name)
			assert.Equal(t, tt.dueDate, task.DueDate)
			assert.True(t, createdAt.Equal(task.CreatedAt))
		})
	}
}

func TestNewTaskWithoutDateIsAlwaysActive(t *testing.T) {
	for _, createdAt := range []time.Time{
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.Local),
		time.Date(2024, 2, 29, 12, 0, 0, 0, time.Local),
		time.Now(),
	} {
		assert.Equal(t, TaskStatusActive, NewTask("id", "name", "", createdAt).Status)
	}
}

func TestNewTaskUnparsedDateCountsAsNoDate(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	task := NewTask("id", "name", "tomorrow", createdAt)

	assert.Equal(t, TaskStatusActive, task.Status)
	assert.Equal(t, "tomorrow", task.DueDate)
	assert.False(t, task.IsOverdue(createdAt.AddDate(1, 0, 0)))
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		status TaskStatus
		date   string
		want   bool
	}{
		{name: "active past date", status: TaskStatusActive, date: "14.06.2024", want: true},
		{name: "active today", status: TaskStatusActive, date: "15.06.2024", want: true},
		{name: "active future date", status: TaskStatusActive, date: "16.06.2024", want: false},
		{name: "active no date", status: TaskStatusActive, date: "", want: false},
		{name: "active malformed date", status: TaskStatusActive, date: "yesterday", want: false},
		{name: "done past date", status: TaskStatusDone, date: "01.01.2000", want: false},
		{name: "stored overdue past date", status: TaskStatusOverdue, date: "01.01.2000", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Status: tt.status, DueDate: tt.date}
			assert.Equal(t, tt.want, task.IsOverdue(now))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("01.01.2099")
	require.True(t, ok)
	assert.True(t, d.Equal(time.Date(2099, 1, 1, 0, 0, 0, 0, time.Local)))

	d, ok = ParseDate("5.3.2024")
	require.True(t, ok)
	assert.True(t, d.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)))

	for _, s := range []string{"", "2024-01-01", "32.01.2024", "01.13.2024", "01.01.24"} {
		_, ok := ParseDate(s)
		assert.False(t, ok, s)
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 1, 10, 30, 0, 123456000, time.Local)

	for _, s := range []string{
		"2024-01-01T10:30:00.123456",
		"2024-01-01 10:30:00.123456",
	} {
		got, err := ParseTimestamp(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), s)
	}

	got, err := ParseTimestamp(FormatTimestamp(want))
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	_, err = ParseTimestamp("not a time")
	assert.Error(t, err)
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "2024-01-01T00:00:00", FormatTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "2024-01-01T00:00:00.5", FormatTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 500000000, time.Local)))
}

func TestParseTaskStatus(t *testing.T) {
	for _, s := range []TaskStatus{TaskStatusActive, TaskStatusDone, TaskStatusOverdue} {
		got, err := ParseTaskStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
		assert.NotEmpty(t, got.StringLocalized())
	}

	_, err := ParseTaskStatus("ACTIVE")
	assert.Error(t, err)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Buy milk"))
	assert.ErrorIs(t, ValidateName("   "), ErrEmptyName)
	assert.ErrorIs(t, ValidateName("a<>b"), ErrNameHasSeparator)
}
