package model

import (
	pmodel "github.com/xiaorui77/taskdeck/pkg/model"
)

const (
	EmptyLoading = "Loading..."
	EmptyNoTasks = "No Tasks Found"
)

// Row is one rendered table line.
type Row struct {
	pmodel.TaskRow
	// FullOutput is the untruncated output, "N/A" when absent.
	FullOutput string
	Runs       int
	Executing  bool
	Unseen     bool
}

type DeletePrompt struct {
	ID   string
	Name string
}

// Snapshot is a consistent copy of the table state for one render.
type Snapshot struct {
	Rows        []Row
	Total       int
	SearchText  string
	Loading     bool
	Submitting  bool
	ExecutingID string
	ModalOpen   bool
	Form        Form
	Delete      *DeletePrompt
	Sort        Sort
}

func (s *Snapshot) EmptyText() string {
	if s.Loading {
		return EmptyLoading
	}
	return EmptyNoTasks
}

func (t *Table) Snapshot() *Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tasks := append([]pmodel.Task(nil), t.filtered...)
	sortTasks(tasks, t.sort)

	rows := make([]Row, 0, len(tasks))
	for i := range tasks {
		task := &tasks[i]
		rows = append(rows, Row{
			TaskRow:    pmodel.NewTaskRow(task, t.layout),
			FullOutput: pmodel.OutputText(task.Latest()),
			Runs:       len(task.TaskExecutions),
			Executing:  task.ID == t.executingID,
			Unseen:     t.unseen[task.ID],
		})
	}

	snap := &Snapshot{
		Rows:        rows,
		Total:       len(t.tasks),
		SearchText:  t.searchText,
		Loading:     t.loading,
		Submitting:  t.submitting,
		ExecutingID: t.executingID,
		ModalOpen:   t.modalOpen,
		Form:        t.form,
		Sort:        t.sort,
	}
	if t.deleting != nil {
		d := *t.deleting
		snap.Delete = &d
	}
	return snap
}
