package view

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/xiaorui77/taskdeck/internal/view/model"
	pmodel "github.com/xiaorui77/taskdeck/pkg/model"
)

// DetailPage shows one task with the full output of every run.
type DetailPage struct {
	*tview.TextView
	app     *AppUI
	data    *model.Table
	actions *KeyActions

	taskID string
	// run key of the latest run already marked seen
	seenRun string
}

func NewDetailPage(app *AppUI, data *model.Table) *DetailPage {
	return &DetailPage{
		TextView: tview.NewTextView(),
		app:      app,
		data:     data,
		actions:  NewKeyActions(),
	}
}

func (d *DetailPage) Init() {
	d.SetDynamicColors(true)
	d.SetScrollable(true)
	d.SetWrap(true)
	d.SetTextColor(d.app.styles.Table.FgColor.Color())

	d.actions.Add(NewAction(tcell.KeyEsc, "back", func(*tcell.EventKey) *tcell.EventKey {
		d.app.content.Back()
		return nil
	}))
	d.actions.Add(NewAction(KeyE, "execute", func(*tcell.EventKey) *tcell.EventKey {
		if d.taskID != "" {
			d.data.Execute(d.taskID)
		}
		return nil
	}))
	d.SetInputCapture(d.actions.Handle)
}

func (d *DetailPage) Name() string {
	return DetailPageName
}

// SetTask selects the task shown on the next Start.
func (d *DetailPage) SetTask(id string) {
	d.taskID = id
	d.seenRun = ""
}

func (d *DetailPage) Start() {
	d.seenRun = ""
	d.Refresh()
	d.ScrollToBeginning()
}

func (d *DetailPage) Stop() {}

func (d *DetailPage) Hints() []*KeyAction {
	return d.actions.List()
}

// Refresh redraws the current task, e.g. after it was executed again.
func (d *DetailPage) Refresh() {
	task, ok := d.data.Task(d.taskID)
	if !ok {
		d.SetText("[red]Task not found, it may have been deleted.")
		return
	}
	d.SetText(renderTask(&task, d.data.TimeLayout()))

	// a run shown here has been read
	if latest := task.Latest(); latest != nil && latest.RunKey() != d.seenRun {
		d.seenRun = latest.RunKey()
		d.data.MarkSeen(d.taskID)
	}
}

func renderTask(t *pmodel.Task, layout string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]%s[::-]  (%s)\n", tview.Escape(t.Name), tview.Escape(t.ID))
	fmt.Fprintf(&b, "Owner:   %s\n", tview.Escape(t.Owner))
	fmt.Fprintf(&b, "Command: %s\n", tview.Escape(t.Command))
	fmt.Fprintf(&b, "Runs:    %d\n", len(t.TaskExecutions))

	latest := t.Latest()
	if latest == nil {
		fmt.Fprintf(&b, "\nLast Run Start: %s\n", pmodel.NeverRun)
		return b.String()
	}

	fmt.Fprintf(&b, "\n[dodgerblue]Last Run[-]\n")
	writeRun(&b, latest, layout)

	if len(t.TaskExecutions) > 1 {
		fmt.Fprintf(&b, "\n[dodgerblue]All Runs[-]\n")
		for i := range t.TaskExecutions {
			fmt.Fprintf(&b, "--- #%d\n", i+1)
			writeRun(&b, &t.TaskExecutions[i], layout)
		}
	}
	return b.String()
}

func writeRun(b *strings.Builder, e *pmodel.TaskExecution, layout string) {
	fmt.Fprintf(b, "Start:    %s\n", pmodel.FormatStart(e, layout))
	if e.EndTime != nil {
		fmt.Fprintf(b, "End:      %s\n", pmodel.FormatTime(e.EndTime.Time, layout))
	}
	if dur, ok := e.Duration(); ok {
		fmt.Fprintf(b, "Duration: %s\n", dur)
	}
	fmt.Fprintf(b, "Output:\n%s\n", tview.Escape(pmodel.DisplayOutput(e)))
}
