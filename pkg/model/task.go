package model

import (
	"sort"
	"strconv"
	"strings"
)

// TaskExecution is one recorded run of a task's command.
// Output is nil when the server reported none; an empty string means the
// command ran and printed nothing.
type TaskExecution struct {
	StartTime Timestamp  `json:"startTime"`
	EndTime   *Timestamp `json:"endTime,omitempty"`
	Output    *string    `json:"output,omitempty"`
}

type Task struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Owner          string          `json:"owner"`
	Command        string          `json:"command"`
	TaskExecutions []TaskExecution `json:"taskExecutions,omitempty"`
}

// CreateTaskRequest is the body of a create call. The server assigns the id.
type CreateTaskRequest struct {
	Name    string `json:"name"`
	Owner   string `json:"owner"`
	Command string `json:"command"`
}

// LatestExecution returns the execution with the greatest start time, or nil
// for an empty collection. Equal start times keep the earlier entry.
func LatestExecution(execs []TaskExecution) *TaskExecution {
	var latest *TaskExecution
	for i := range execs {
		if latest == nil || execs[i].StartTime.After(latest.StartTime.Time) {
			latest = &execs[i]
		}
	}
	return latest
}

// RunKey identifies an execution within its task by its start instant.
func (e *TaskExecution) RunKey() string {
	return strconv.FormatInt(e.StartTime.UnixMilli(), 10)
}

// Latest is LatestExecution over the task's own history.
func (t *Task) Latest() *TaskExecution {
	return LatestExecution(t.TaskExecutions)
}

// SortByIDDesc orders tasks by id, descending, comparing ids as strings.
func SortByIDDesc(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].ID > tasks[j].ID
	})
}

// FilterByName returns the tasks whose name contains search, ignoring case.
// An empty search returns every task.
func FilterByName(tasks []Task, search string) []Task {
	needle := strings.ToLower(search)
	res := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Name), needle) {
			res = append(res, t)
		}
	}
	return res
}
