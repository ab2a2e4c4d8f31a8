package model

import (
	"strings"
	"time"
)

const (
	NeverRun     = "Never"
	NoOutput     = "[No Output]"
	NotAvailable = "N/A"

	DefaultTimeLayout = "2006-01-02 15:04:05"
)

// TaskRow is a task flattened to the strings shown in the table.
type TaskRow struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Owner        string `json:"owner"`
	Command      string `json:"command"`
	LastRunStart string `json:"lastRunStart"`
	LastOutput   string `json:"lastOutput"`
}

func NewTaskRow(t *Task, layout string) TaskRow {
	latest := t.Latest()
	return TaskRow{
		ID:           t.ID,
		Name:         t.Name,
		Owner:        t.Owner,
		Command:      t.Command,
		LastRunStart: FormatStart(latest, layout),
		LastOutput:   DisplayOutput(latest),
	}
}

// FormatStart renders the execution's start in the local zone, or "Never".
func FormatStart(e *TaskExecution, layout string) string {
	if e == nil {
		return NeverRun
	}
	return FormatTime(e.StartTime.Time, layout)
}

func FormatTime(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return t.Local().Format(layout)
}

// OutputText is the full output of an execution, "N/A" when absent.
func OutputText(e *TaskExecution) string {
	if e == nil || e.Output == nil {
		return NotAvailable
	}
	return *e.Output
}

// DisplayOutput is OutputText with an empty output shown as "[No Output]".
func DisplayOutput(e *TaskExecution) string {
	text := OutputText(e)
	if text == "" {
		return NoOutput
	}
	return text
}

// Duration of a finished execution; false while it has no end time.
func (e *TaskExecution) Duration() (time.Duration, bool) {
	if e.EndTime == nil {
		return 0, false
	}
	return e.EndTime.Sub(e.StartTime.Time), true
}

// OneLine folds whitespace and line breaks into single spaces.
func OneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
