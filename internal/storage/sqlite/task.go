package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sqlitedb "github.com/agalitsyn/sqlite"

	"github.com/agalitsyn/task-tracker/internal/model"
	"github.com/agalitsyn/task-tracker/internal/storage/sqlite/migrations"
)

type TaskStorage struct {
	db *sql.DB
}

func NewTaskStorage(db *sql.DB) *TaskStorage {
	return &TaskStorage{db: db}
}

// Open connects to the database at path and applies pending migrations.
func Open(path string) (*TaskStorage, error) {
	db, err := sqlitedb.Connect(path)
	if err != nil {
		return nil, err
	}
	if err := sqlitedb.MigrateUp(db, migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not migrate database: %w", err)
	}
	return NewTaskStorage(db), nil
}

func (s *TaskStorage) Close() error {
	return s.db.Close()
}

func (s *TaskStorage) CreateTask(ctx context.Context, task *model.Task) error {
	const query = `
		INSERT INTO tasks (id, name, due_date, created_at, status)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Name,
		task.DueDate,
		model.FormatTimestamp(task.CreatedAt),
		string(task.Status),
	)
	if err != nil {
		return fmt.Errorf("could not create task: %w", err)
	}
	return nil
}

func (s *TaskStorage) FetchTasks(ctx context.Context) ([]model.Task, error) {
	const query = `SELECT id, name, due_date, created_at, status FROM tasks ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not fetch tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var task model.Task
		var createdAt, status string

		err := rows.Scan(
			&task.ID,
			&task.Name,
			&task.DueDate,
			&createdAt,
			&status,
		)
		if err != nil {
			return nil, fmt.Errorf("could not scan task: %w", err)
		}

		if task.CreatedAt, err = model.ParseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("%w: task %s: %w", model.ErrMalformedRecord, task.ID, err)
		}
		if task.Status, err = model.ParseTaskStatus(status); err != nil {
			return nil, fmt.Errorf("%w: task %s: %w", model.ErrMalformedRecord, task.ID, err)
		}

		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate tasks: %w", err)
	}

	return tasks, nil
}

// ReplaceTasks rewrites the table so that seq follows the order of tasks.
func (s *TaskStorage) ReplaceTasks(ctx context.Context, tasks []model.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("could not clear tasks: %w", err)
	}

	const query = `
		INSERT INTO tasks (seq, id, name, due_date, created_at, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for i, task := range tasks {
		_, err := tx.ExecContext(ctx, query,
			i+1,
			task.ID,
			task.Name,
			task.DueDate,
			model.FormatTimestamp(task.CreatedAt),
			string(task.Status),
		)
		if err != nil {
			return fmt.Errorf("could not insert task %s: %w", task.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}
