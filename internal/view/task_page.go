package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/xiaorui77/taskdeck/internal/view/model"
	pmodel "github.com/xiaorui77/taskdeck/pkg/model"
)

const (
	actionTitle = "Action"
	maxCellLen  = 48
)

var sortKeys = map[model.Column]tcell.Key{
	model.ColName:         KeyShiftN,
	model.ColOwner:        KeyShiftO,
	model.ColLastRunStart: KeyShiftS,
}

type TaskPage struct {
	*tview.Table
	app *AppUI

	data    *model.Table
	actions *KeyActions

	// ids of the rendered rows, row 0 is the header
	ids []string
}

func NewTaskPage(app *AppUI, data *model.Table) *TaskPage {
	return &TaskPage{
		Table:   tview.NewTable(),
		app:     app,
		data:    data,
		actions: NewKeyActions(),
	}
}

func (t *TaskPage) Init() {
	styles := t.app.styles.Table
	t.SetBorder(false)
	t.SetFixed(1, 0)
	t.SetSelectable(true, false)
	t.SetBackgroundColor(styles.BgColor.Color())
	t.SetSelectedStyle(tcell.StyleDefault.
		Foreground(styles.CursorFgColor.Color()).
		Background(styles.CursorBgColor.Color()))

	t.bindKeys()
	t.SetInputCapture(t.actions.Handle)
	t.Render(t.data.Snapshot())
}

func (t *TaskPage) Name() string {
	return TaskPageName
}

func (t *TaskPage) Start() {
	t.Render(t.data.Snapshot())
}

func (t *TaskPage) Stop() {}

func (t *TaskPage) Hints() []*KeyAction {
	return t.actions.List()
}

func (t *TaskPage) bindKeys() {
	t.actions.Add(NewAction(KeyC, "create", func(*tcell.EventKey) *tcell.EventKey {
		t.data.OpenCreate()
		return nil
	}))
	t.actions.Add(NewAction(KeyE, "execute", func(*tcell.EventKey) *tcell.EventKey {
		if id := t.SelectedID(); id != "" {
			t.data.Execute(id)
		}
		return nil
	}))
	t.actions.Add(NewAction(KeyD, "delete", func(*tcell.EventKey) *tcell.EventKey {
		if id := t.SelectedID(); id != "" {
			t.data.RequestDelete(id)
		}
		return nil
	}))
	t.actions.Add(NewAction(KeyR, "refresh", func(*tcell.EventKey) *tcell.EventKey {
		t.data.Load()
		return nil
	}))
	t.actions.Add(NewAction(KeySlash, "search", func(*tcell.EventKey) *tcell.EventKey {
		t.app.input.Active(true)
		return nil
	}))
	t.actions.Add(NewAction(tcell.KeyEnter, "output", func(*tcell.EventKey) *tcell.EventKey {
		if id := t.SelectedID(); id != "" {
			t.app.ShowDetail(id)
		}
		return nil
	}))
	for i, title := range model.ColumnTitles {
		col := model.Column(i)
		key, ok := sortKeys[col]
		if !ok {
			continue
		}
		t.actions.Add(NewAction(key, "sort "+title, func(*tcell.EventKey) *tcell.EventKey {
			t.data.SortBy(col)
			return nil
		}))
	}
}

// SelectedID returns the id of the task under the cursor.
func (t *TaskPage) SelectedID() string {
	row, _ := t.GetSelection()
	if row <= 0 || row >= len(t.ids) {
		return ""
	}
	return t.ids[row]
}

// Render redraws the table from snap, keeping the cursor on the same task.
func (t *TaskPage) Render(snap *model.Snapshot) {
	styles := t.app.styles.Table
	selected := t.SelectedID()

	t.Clear()
	t.ids = t.ids[:0]
	t.ids = append(t.ids, "")

	for i, title := range model.ColumnTitles {
		t.SetCell(0, i, t.headerCell(title, model.Column(i), snap.Sort))
	}
	t.SetCell(0, len(model.ColumnTitles), t.headerCell(actionTitle, -1, snap.Sort))

	if len(snap.Rows) == 0 {
		t.SetCell(1, 0, tview.NewTableCell(snap.EmptyText()).
			SetTextColor(styles.FgColor.Color()).
			SetSelectable(false))
		t.setTitle(fmt.Sprintf(" %s[0/%d] ", TaskPageName, snap.Total))
		return
	}

	cursor := 1
	for i := range snap.Rows {
		row := &snap.Rows[i]
		r := i + 1
		fg := styles.FgColor.Color()
		if row.Executing {
			fg = styles.BusyColor.Color()
		}

		name := row.Name
		if row.Unseen {
			name = "● " + name
		}
		cells := []string{name, row.Owner, pmodel.OneLine(row.Command), row.LastRunStart, pmodel.OneLine(row.LastOutput)}
		for c, text := range cells {
			cell := tview.NewTableCell(tview.Escape(text)).
				SetTextColor(fg).
				SetMaxWidth(maxCellLen).
				SetExpansion(1).
				SetReference(row.ID)
			if c == 0 && row.Unseen {
				cell.SetTextColor(styles.MarkColor.Color())
			}
			t.SetCell(r, c, cell)
		}
		t.SetCell(r, len(cells), tview.NewTableCell(actionText(row)).SetTextColor(fg))

		t.ids = append(t.ids, row.ID)
		if row.ID == selected {
			cursor = r
		}
	}
	t.Select(cursor, 0)

	title := fmt.Sprintf(" %s[%d/%d] ", TaskPageName, len(snap.Rows), snap.Total)
	if snap.Loading {
		title += "(loading) "
	}
	t.setTitle(title)
}

func (t *TaskPage) setTitle(title string) {
	if t.app.content.Top() == Component(t) {
		t.app.content.SetTitle(title)
	}
}

func (t *TaskPage) headerCell(title string, col model.Column, s model.Sort) *tview.TableCell {
	styles := t.app.styles.Table.Header
	text := title
	if col >= 0 && col.Sortable() && s.Column == col {
		switch s.Order {
		case model.SortAscend:
			text += "[" + string(styles.SorterColor) + "]↑"
		case model.SortDescend:
			text += "[" + string(styles.SorterColor) + "]↓"
		}
	}
	return tview.NewTableCell(text).
		SetTextColor(styles.FgColor.Color()).
		SetBackgroundColor(styles.BgColor.Color()).
		SetAttributes(tcell.AttrBold).
		SetSelectable(false).
		SetExpansion(1)
}

func actionText(row *model.Row) string {
	if row.Executing {
		return "Executing..."
	}
	return "Execute | Delete"
}
