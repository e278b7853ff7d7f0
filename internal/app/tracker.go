package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agalitsyn/task-tracker/internal/model"
)

type TrackerConfig struct {
	NoColor bool
}

const maxInputLine = 1 << 20

type inputLine struct {
	text string
	err  error
}

type Tracker struct {
	in        *bufio.Scanner
	lines     chan inputLine
	startRead sync.Once
	out       io.Writer

	cfg     TrackerConfig
	storage model.TaskRepository
	log     lgr.L
	palette palette

	now   func() time.Time
	newID func() string
}

type Option func(t *Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

func NewTracker(
	cfg TrackerConfig,
	in io.Reader,
	out io.Writer,
	storage model.TaskRepository,
	log lgr.L,
	opts ...Option,
) *Tracker {
	if log == nil {
		log = lgr.NoOp
	}
	t := &Tracker{
		in:      bufio.NewScanner(in),
		out:     out,
		cfg:     cfg,
		storage: storage,
		log:     log,
		palette: newPalette(cfg.NoColor),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	t.in.Buffer(make([]byte, 0, 64*1024), maxInputLine)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start runs the menu loop until the user exits, input ends or ctx is done.
// Tasks are re-read from storage on every iteration; a storage error ends the loop.
func (t *Tracker) Start(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			t.log.Logf("[DEBUG] stopped: %s", err)
			return nil
		}

		t.showMainMenu()
		choice, err := t.prompt(ctx, "Введите номер действия: ")
		if err != nil {
			return t.handleInputErr(err)
		}

		tasks, err := t.storage.FetchTasks(ctx)
		if err != nil {
			return fmt.Errorf("could not load tasks: %w", err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			t.printTasks(tasks)
		case "2":
			err = t.addTaskCommand(ctx)
		case "3":
			err = t.editTaskCommand(ctx, tasks)
		case "4":
			err = t.deleteTaskCommand(ctx, tasks)
		case "5":
			t.println("Выход из программы.")
			return nil
		default:
			t.println("Неверный выбор, попробуйте снова.")
		}
		if err != nil {
			return t.handleInputErr(err)
		}
	}
}

func (t *Tracker) handleInputErr(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		t.log.Logf("[DEBUG] input closed")
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		t.log.Logf("[DEBUG] stopped: %s", err)
		return nil
	}
	return err
}

func (t *Tracker) showMainMenu() {
	t.println("")
	t.println("Выберите действие:")
	t.println("1. Просмотр задач")
	t.println("2. Добавить задачу")
	t.println("3. Редактировать задачу")
	t.println("4. Удалить задачу")
	t.println("5. Выход")
}

func (t *Tracker) printTasks(tasks []model.Task) {
	now := t.now()
	t.println("Актуальные задачи:")
	for i, task := range tasks {
		t.println(t.palette.formatTask(i+1, task, now))
	}
}

// AddTask stores a new task. The identifier and creation time are passed in
// explicitly; the interactive flow takes them from the tracker's generator and clock.
func (t *Tracker) AddTask(ctx context.Context, name, dueDate, id string, createdAt time.Time) (*model.Task, error) {
	if err := model.ValidateName(name); err != nil {
		return nil, err
	}
	if dueDate != "" {
		if _, ok := model.ParseDate(dueDate); !ok {
			return nil, fmt.Errorf("invalid due date %q", dueDate)
		}
	}

	task := model.NewTask(id, name, dueDate, createdAt)
	if err := t.storage.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("could not create task: %w", err)
	}
	t.log.Logf("[DEBUG] created task id=%s status=%s", task.ID, task.Status)
	return task, nil
}

func (t *Tracker) addTaskCommand(ctx context.Context) error {
	var name string
	for {
		input, err := t.prompt(ctx, "Введите имя задачи: ")
		if err != nil {
			return err
		}
		name = strings.TrimSpace(input)
		if err := model.ValidateName(name); err != nil {
			t.println(nameErrorMessage(err))
			continue
		}
		break
	}

	var dueDate string
	for {
		input, err := t.prompt(ctx, "Введите дату выполнения в формате ДД.ММ.ГГГГ или enter: ")
		if err != nil {
			return err
		}
		dueDate = strings.TrimSpace(input)
		if dueDate == "" {
			break
		}
		if _, ok := model.ParseDate(dueDate); ok {
			break
		}
		t.println("Введите дату в правильном формате.")
	}

	t.println("Вы собираетесь создать задание с параметрами:")
	t.println(" - Имя задачи: " + name)
	if dueDate != "" {
		t.println(" - Дата выполнения: [" + dueDate + "]")
	} else {
		t.println(" - Дата выполнения: [не задана]")
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.AddTask(ctx, name, dueDate, t.newID(), t.now()); err != nil {
		return err
	}

	tasks, err := t.storage.FetchTasks(ctx)
	if err != nil {
		return fmt.Errorf("could not load tasks: %w", err)
	}
	t.printTasks(tasks)
	return nil
}

func (t *Tracker) editTaskCommand(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		t.println("Нет задач для редактирования.")
		return nil
	}
	t.printTasks(tasks)

	idx, err := t.promptIndex(ctx, "Введите номер задачи для редактирования: ", len(tasks))
	if err != nil {
		return err
	}
	if idx == 0 {
		return nil
	}

	task := &tasks[idx-1]
	t.println(fmt.Sprintf("Текущая задача: %s %s (%s)", task.Name, formatDueDate(task.DueDate), titleStatus(task.Status)))

	field, err := t.prompt(ctx, "Что редактировать? (1 - имя, 2 - дату, 3 - статус): ")
	if err != nil {
		return err
	}

	changed := false
	switch strings.TrimSpace(field) {
	case "1":
		input, err := t.prompt(ctx, "Новое имя задачи: ")
		if err != nil {
			return err
		}
		name := strings.TrimSpace(input)
		if err := model.ValidateName(name); err != nil {
			if errors.Is(err, model.ErrEmptyName) {
				t.println("Имя не изменено.")
			} else {
				t.println(nameErrorMessage(err) + " Имя не изменено.")
			}
			break
		}
		task.Name = name
		changed = true
	case "2":
		input, err := t.prompt(ctx, "Новая дата выполнения (ДД.ММ.ГГГГ) или пусто: ")
		if err != nil {
			return err
		}
		date := strings.TrimSpace(input)
		if date != "" {
			if _, ok := model.ParseDate(date); !ok {
				t.println("Дата не изменена: неверный формат.")
				break
			}
		}
		task.DueDate = date
		changed = true
	case "3":
		if task.Status == model.TaskStatusDone {
			task.Status = model.TaskStatusActive
		} else {
			task.Status = model.TaskStatusDone
		}
		t.println("Статус изменён: " + titleStatus(task.Status))
		changed = true
	default:
		t.println("Поле не выбрано.")
	}

	if !changed {
		return nil
	}
	if err := t.storage.ReplaceTasks(ctx, tasks); err != nil {
		return fmt.Errorf("could not save tasks: %w", err)
	}
	t.log.Logf("[DEBUG] edited task id=%s", task.ID)
	return nil
}

func (t *Tracker) deleteTaskCommand(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		t.println("Нет задач для удаления.")
		return nil
	}
	t.printTasks(tasks)

	idx, err := t.promptIndex(ctx, "Введите номер задачи для удаления: ", len(tasks))
	if err != nil {
		return err
	}
	if idx == 0 {
		return nil
	}

	removed := tasks[idx-1]
	tasks = append(tasks[:idx-1], tasks[idx:]...)
	if err := t.storage.ReplaceTasks(ctx, tasks); err != nil {
		return fmt.Errorf("could not save tasks: %w", err)
	}
	t.log.Logf("[DEBUG] deleted task id=%s", removed.ID)
	t.println(fmt.Sprintf("Задача '%s' удалена.", removed.Name))
	return nil
}

// promptIndex returns 0 when the input was rejected; the reason is already shown to the user.
func (t *Tracker) promptIndex(ctx context.Context, msg string, n int) (int, error) {
	input, err := t.prompt(ctx, msg)
	if err != nil {
		return 0, err
	}
	idx, err := ParseIndex(input, n)
	switch {
	case errors.Is(err, ErrNotANumber):
		t.println("Номер задачи должен быть числом.")
		return 0, nil
	case errors.Is(err, ErrOutOfRange):
		t.println("Некорректный номер задачи.")
		return 0, nil
	}
	return idx, nil
}

// prompt waits for the next input line or for ctx to be done, whichever comes first.
func (t *Tracker) prompt(ctx context.Context, msg string) (string, error) {
	t.startRead.Do(func() {
		t.lines = make(chan inputLine)
		go t.readLines()
	})

	fmt.Fprint(t.out, msg)
	select {
	case line, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		}
		return line.text, line.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (t *Tracker) readLines() {
	defer close(t.lines)
	for t.in.Scan() {
		t.lines <- inputLine{text: t.in.Text()}
	}
	if err := t.in.Err(); err != nil {
		t.lines <- inputLine{err: fmt.Errorf("could not read input: %w", err)}
	}
}

func (t *Tracker) println(s string) {
	fmt.Fprintln(t.out, s)
}

func nameErrorMessage(err error) string {
	if errors.Is(err, model.ErrNameHasSeparator) {
		return fmt.Sprintf("Имя задачи не может содержать %q.", model.RecordSeparator)
	}
	return "Введите валидное имя задачи."
}

func formatDueDate(date string) string {
	if date == "" {
		return "[не задана]"
	}
	return "[" + date + "]"
}

func titleStatus(s model.TaskStatus) string {
	return cases.Title(language.Russian).String(s.StringLocalized())
}
