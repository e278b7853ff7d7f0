package memory

import (
	"context"
	"slices"

	"github.com/agalitsyn/task-tracker/internal/model"
)

// TaskStorage keeps tasks in a slice. Writes counts every mutating call so
// tests can assert that an aborted operation left the store alone.
type TaskStorage struct {
	Tasks  []model.Task
	Writes int

	// FetchErr is returned from FetchTasks when set.
	FetchErr error
}

func NewTaskStorage(tasks ...model.Task) *TaskStorage {
	return &TaskStorage{Tasks: slices.Clone(tasks)}
}

func (s *TaskStorage) FetchTasks(_ context.Context) ([]model.Task, error) {
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	return slices.Clone(s.Tasks), nil
}

func (s *TaskStorage) CreateTask(_ context.Context, task *model.Task) error {
	s.Tasks = append(s.Tasks, *task)
	s.Writes++
	return nil
}

func (s *TaskStorage) ReplaceTasks(_ context.Context, tasks []model.Task) error {
	s.Tasks = slices.Clone(tasks)
	s.Writes++
	return nil
}
