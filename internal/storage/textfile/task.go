package textfile

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/task-tracker/internal/model"
)

type TaskStorage struct {
	path string
	log  lgr.L
}

func NewTaskStorage(path string, log lgr.L) *TaskStorage {
	if log == nil {
		log = lgr.NoOp
	}
	return &TaskStorage{path: path, log: log}
}

func (s *TaskStorage) Path() string {
	return s.path
}

// Init creates an empty database file when there is none yet.
func (s *TaskStorage) Init(_ context.Context) error {
	f, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("could not init database file: %w", err)
	}
	return f.Close()
}

func (s *TaskStorage) ReadLines(_ context.Context) ([]string, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("database file %s does not exist: %w", s.path, err)
		}
		return nil, fmt.Errorf("could not read database file: %w", err)
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not split database file: %w", err)
	}
	return lines, nil
}

func (s *TaskStorage) FetchTasks(ctx context.Context) ([]model.Task, error) {
	lines, err := s.ReadLines(ctx)
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		task, err := ParseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("could not parse line %d: %w", i+1, err)
		}
		tasks = append(tasks, *task)
	}
	s.log.Logf("[DEBUG] loaded %d tasks from %s", len(tasks), s.path)
	return tasks, nil
}

func (s *TaskStorage) CreateTask(_ context.Context, task *model.Task) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open database file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatRecord(task) + "\n"); err != nil {
		return fmt.Errorf("could not create task: %w", err)
	}
	s.log.Logf("[DEBUG] appended task id=%s", task.ID)
	return f.Close()
}

func (s *TaskStorage) ReplaceTasks(_ context.Context, tasks []model.Task) error {
	var buf strings.Builder
	for i := range tasks {
		buf.WriteString(FormatRecord(&tasks[i]))
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(s.path, []byte(buf.String()), 0o644); err != nil {
		return fmt.Errorf("could not rewrite database file: %w", err)
	}
	s.log.Logf("[DEBUG] rewrote %s with %d tasks", s.path, len(tasks))
	return nil
}
