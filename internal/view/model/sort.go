package model

import (
	"sort"
	"strings"

	pmodel "github.com/xiaorui77/taskdeck/pkg/model"
)

type Column int

const (
	ColName Column = iota
	ColOwner
	ColCommand
	ColLastRunStart
	ColLastOutput
)

var ColumnTitles = []string{"Name", "Owner", "Command", "Last Run Start", "Last Output"}

type SortOrder int

const (
	SortNone SortOrder = iota
	SortAscend
	SortDescend
)

// Sort is the active column sort. Order SortNone keeps the fetch order.
type Sort struct {
	Column Column
	Order  SortOrder
}

// Sortable reports whether the column can be sorted.
func (c Column) Sortable() bool {
	return c == ColName || c == ColOwner || c == ColLastRunStart
}

// next cycles ascend, descend, off for the same column; a new column
// starts ascending.
func (s Sort) next(col Column) Sort {
	if s.Column != col || s.Order == SortNone {
		return Sort{Column: col, Order: SortAscend}
	}
	if s.Order == SortAscend {
		return Sort{Column: col, Order: SortDescend}
	}
	return Sort{Column: col, Order: SortNone}
}

// compare returns <0, 0 or >0 for the ascending order of col.
func compare(col Column, a, b *pmodel.Task) int {
	switch col {
	case ColName:
		return strings.Compare(a.Name, b.Name)
	case ColOwner:
		return strings.Compare(a.Owner, b.Owner)
	case ColLastRunStart:
		la, lb := a.Latest(), b.Latest()
		switch {
		case la == nil && lb == nil:
			return 0
		case la == nil:
			return -1
		case lb == nil:
			return 1
		case la.StartTime.Before(lb.StartTime.Time):
			return -1
		case la.StartTime.After(lb.StartTime.Time):
			return 1
		}
	}
	return 0
}

// sortTasks sorts in place; stable so equal keys keep the fetch order.
func sortTasks(tasks []pmodel.Task, s Sort) {
	if s.Order == SortNone || !s.Column.Sortable() {
		return
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		c := compare(s.Column, &tasks[i], &tasks[j])
		if s.Order == SortDescend {
			return c > 0
		}
		return c < 0
	})
}
