package view

import (
	"context"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/xiaorui77/taskdeck/internal/storage"
	"github.com/xiaorui77/taskdeck/internal/view/model"
	pmodel "github.com/xiaorui77/taskdeck/pkg/model"
)

const journalLimit = 100

var journalTitles = []string{"Time", "Action", "Task", "Result", "Code", "Message"}

// JournalPage lists the latest recorded client actions.
type JournalPage struct {
	*tview.Table
	app     *AppUI
	data    *model.Table
	actions *KeyActions

	cancel context.CancelFunc
}

func NewJournalPage(app *AppUI, data *model.Table) *JournalPage {
	return &JournalPage{
		Table:   tview.NewTable(),
		app:     app,
		data:    data,
		actions: NewKeyActions(),
	}
}

func (j *JournalPage) Init() {
	styles := j.app.styles.Table
	j.SetFixed(1, 0)
	j.SetSelectable(true, false)
	j.SetSelectedStyle(tcell.StyleDefault.
		Foreground(styles.CursorFgColor.Color()).
		Background(styles.CursorBgColor.Color()))

	j.actions.Add(NewAction(tcell.KeyEsc, "back", func(*tcell.EventKey) *tcell.EventKey {
		j.app.content.Back()
		return nil
	}))
	j.actions.Add(NewAction(KeyR, "refresh", func(*tcell.EventKey) *tcell.EventKey {
		j.load()
		return nil
	}))
	j.SetInputCapture(j.actions.Handle)
}

func (j *JournalPage) Name() string {
	return JournalPageName
}

func (j *JournalPage) Start() {
	j.load()
}

func (j *JournalPage) Stop() {
	if j.cancel != nil {
		j.cancel()
		j.cancel = nil
	}
}

func (j *JournalPage) Hints() []*KeyAction {
	return j.actions.List()
}

func (j *JournalPage) load() {
	j.Stop()
	ctx, cancel := context.WithTimeout(j.app.ctx, 10*time.Second)
	j.cancel = cancel

	go func() {
		defer cancel()
		entries, err := j.data.RecentActions(ctx, journalLimit)
		if err != nil {
			if ctx.Err() == nil {
				j.app.toast.Error(model.MsgJournalFailed)
			}
			return
		}
		j.app.app.QueueUpdateDraw(func() {
			j.render(entries)
		})
	}()
}

func (j *JournalPage) render(entries []storage.Entry) {
	styles := j.app.styles.Table
	toast := j.app.styles.Toast
	layout := j.data.TimeLayout()

	j.Clear()
	for i, title := range journalTitles {
		j.SetCell(0, i, tview.NewTableCell(title).
			SetTextColor(styles.Header.FgColor.Color()).
			SetBackgroundColor(styles.Header.BgColor.Color()).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetExpansion(1))
	}
	if len(entries) == 0 {
		j.SetCell(1, 0, tview.NewTableCell("No Actions Recorded").SetSelectable(false))
		return
	}

	for i, e := range entries {
		r := i + 1
		result, color := "ok", toast.SuccessColor.Color()
		if !e.Success {
			result, color = "failed", toast.ErrorColor.Color()
		}
		task := e.TaskName
		if task == "" {
			task = e.TaskID
		}
		j.SetCell(r, 0, tview.NewTableCell(pmodel.FormatTime(e.CreatedAt, layout)))
		j.SetCell(r, 1, tview.NewTableCell(e.Op))
		j.SetCell(r, 2, tview.NewTableCell(tview.Escape(task)).SetMaxWidth(maxCellLen))
		j.SetCell(r, 3, tview.NewTableCell(result).SetTextColor(color))
		j.SetCell(r, 4, tview.NewTableCell(strconv.Itoa(e.Code)))
		j.SetCell(r, 5, tview.NewTableCell(tview.Escape(pmodel.OneLine(e.Message))).SetExpansion(1))
	}
	j.Select(1, 0)
}
