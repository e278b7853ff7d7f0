package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/agalitsyn/task-tracker/internal/model"
)

const overdueLabel = "просрочено"

type palette struct {
	active  *color.Color
	done    *color.Color
	overdue *color.Color
	label   *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		active:  color.New(color.FgYellow),
		done:    color.New(color.FgGreen),
		overdue: color.New(color.FgRed),
		label:   color.New(color.FgRed, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{p.active, p.done, p.overdue, p.label} {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) glyph(status model.TaskStatus) string {
	switch status {
	case model.TaskStatusActive:
		return p.active.Sprint("✕")
	case model.TaskStatusDone:
		return p.done.Sprint("✓")
	default:
		return p.overdue.Sprint("⌛️")
	}
}

// formatTask renders one list line, e.g. "1. ✕ Buy milk [01.01.2099]".
func (p palette) formatTask(index int, task model.Task, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s", index, p.glyph(task.Status))
	if task.IsOverdue(now) {
		b.WriteString(" " + p.label.Sprint(overdueLabel))
	}
	b.WriteString(" " + task.Name)
	if task.DueDate != "" {
		b.WriteString(" [" + task.DueDate + "]")
	}
	return b.String()
}
