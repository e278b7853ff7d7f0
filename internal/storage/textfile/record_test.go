package textfile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agalitsyn/task-tracker/internal/model"
)

func TestFormatRecord(t *testing.T) {
	task := model.NewTask(
		"3f2b8a9e-0c1d-4e5f-8a7b-6c5d4e3f2a1b",
		"Buy milk",
		"01.01.2099",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
	)

	assert.Equal(t,
		"3f2b8a9e-0c1d-4e5f-8a7b-6c5d4e3f2a1b<>Buy milk<>[01.01.2099]<>2024-01-01T00:00:00<>active",
		FormatRecord(task),
	)

	task.DueDate = ""
	assert.Equal(t,
		"3f2b8a9e-0c1d-4e5f-8a7b-6c5d4e3f2a1b<>Buy milk<><>2024-01-01T00:00:00<>active",
		FormatRecord(task),
	)
}

func TestParseRecordRoundTrip(t *testing.T) {
	tasks := []*model.Task{
		model.NewTask("a", "Buy milk", "01.01.2099", time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)),
		model.NewTask("b", "Call mom", "", time.Date(2024, 3, 8, 9, 15, 30, 250000000, time.Local)),
		model.NewTask("c", "Pay rent", "01.01.2020", time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)),
		{ID: "d", Name: "Done one", DueDate: "1.2.2024", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 1, time.Local), Status: model.TaskStatusDone},
	}

	for _, want := range tasks {
		got, err := ParseRecord(FormatRecord(want))
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.DueDate, got.DueDate)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created at %s != %s", want.CreatedAt, got.CreatedAt)
		assert.Equal(t, want.Status, got.Status)
	}
}

func TestParseRecordLegacyLines(t *testing.T) {
	got, err := ParseRecord("id-1<>Old task<>[]<>2024-05-01 18:20:11.052311<>overdue")
	require.NoError(t, err)
	assert.Equal(t, "", got.DueDate)
	assert.Equal(t, model.TaskStatusOverdue, got.Status)
	assert.True(t, time.Date(2024, 5, 1, 18, 20, 11, 52311000, time.Local).Equal(got.CreatedAt))
}

func TestParseRecordStripsAllBrackets(t *testing.T) {
	got, err := ParseRecord("id-1<>Old task<>[[01.01.2099]]<>2024-01-01T00:00:00<>active")
	require.NoError(t, err)
	assert.Equal(t, "01.01.2099", got.DueDate)
}

func TestParseRecordMalformed(t *testing.T) {
	for _, line := range []string{
		"id<>name<>[]<>2024-01-01T00:00:00",
		"id<>na<>me<>[]<>2024-01-01T00:00:00<>active",
		"id<>name<>[]<>yesterday<>active",
		"id<>name<>[]<>2024-01-01T00:00:00<>paused",
	} {
		_, err := ParseRecord(line)
		assert.ErrorIs(t, err, model.ErrMalformedRecord, line)
	}
}
