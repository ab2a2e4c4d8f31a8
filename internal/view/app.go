package view

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/taskdeck/internal/config"
	"github.com/xiaorui77/taskdeck/internal/view/model"
)

const appTitle = "Task Manager"

type AppUI struct {
	cfg    *config.Config
	styles config.Styles
	logs   *model.LogsBuffer
	data   *model.Table
	ctx    context.Context

	app  *tview.Application
	main *tview.Flex

	indicator *tview.TextView
	hints     *tview.TextView
	toast     *Toast
	input     *InputWrap
	content   *PageStack

	tasks   *TaskPage
	detail  *DetailPage
	journal *JournalPage
	logPage *LogsPage
	create  *CreateForm
	confirm *ConfirmPrompt

	actions *KeyActions
}

// NewUI creates the application. Its Notifier can be handed to the
// view-model before Init binds the two.
func NewUI(cfg *config.Config, logs *model.LogsBuffer) *AppUI {
	app := tview.NewApplication()
	return &AppUI{
		cfg:     cfg,
		styles:  cfg.UI.Styles,
		logs:    logs,
		ctx:     context.Background(),
		app:     app,
		toast:   NewToast(app, cfg.UI.Styles.Toast, cfg.ToastDuration()),
		actions: NewKeyActions(),
	}
}

func (ui *AppUI) Notifier() model.Notifier {
	return ui.toast
}

func (ui *AppUI) Init(data *model.Table) {
	ui.data = data
	ui.main = tview.NewFlex().SetDirection(tview.FlexRow)

	ui.indicator = tview.NewTextView()
	ui.indicator.SetTextAlign(tview.AlignCenter)
	ui.indicator.SetDynamicColors(true)
	ui.indicator.SetText(fmt.Sprintf("[::b]%s[::-]  %s", appTitle, tview.Escape(ui.cfg.API.BaseURL)))

	ui.hints = tview.NewTextView()
	ui.hints.SetDynamicColors(true)
	ui.hints.SetTextAlign(tview.AlignCenter)

	ui.input = NewInputWrap(ui, data.Search)
	ui.input.Init()

	ui.content = NewPageStack(ui)
	ui.tasks = NewTaskPage(ui, data)
	ui.detail = NewDetailPage(ui, data)
	ui.journal = NewJournalPage(ui, data)
	ui.logPage = NewLogsPage(ui)
	ui.tasks.Init()
	ui.detail.Init()
	ui.journal.Init()
	ui.logPage.Init()
	ui.content.Init(ui.tasks, ui.detail, ui.journal, ui.logPage)

	ui.create = NewCreateForm(ui, data)
	ui.create.Init()
	ui.content.AddDialog(createDialogName, ui.create, 64, 11)
	ui.confirm = NewConfirmPrompt(ui, data)
	ui.confirm.Init()
	ui.content.AddPage(deleteDialogName, ui.confirm, true, false)

	ui.main.AddItem(ui.indicator, 1, 1, false)
	ui.main.AddItem(ui.hints, 1, 1, false)
	ui.main.AddItem(ui.input, 3, 1, false)
	ui.main.AddItem(ui.content, 0, 10, true)
	ui.main.AddItem(ui.toast, 1, 1, false)

	ui.bindKeys()
	ui.app.SetInputCapture(ui.keyboardHandler)
	ui.app.SetRoot(ui.main, true)

	data.AddListener(func() {
		ui.app.QueueUpdateDraw(ui.render)
	})
	ui.content.ChangePage(TaskPageName)
}

// Run loads the tasks and blocks until the user quits or ctx is done.
func (ui *AppUI) Run(ctx context.Context) error {
	ui.ctx = ctx
	ui.logPage.Follow(ctx, ui.logs)

	go func() {
		<-ctx.Done()
		ui.app.Stop()
	}()
	if err := ui.data.Watch(ctx); err != nil {
		return err
	}
	if err := ui.app.Run(); err != nil {
		logrus.WithField("catalog", "view").Errorf("[view] application failed: %v", err)
		return err
	}
	return nil
}

// BailOut exists the application.
func (ui *AppUI) BailOut() {
	ui.app.Stop()
}

func (ui *AppUI) GotoPage(name string) {
	ui.content.ChangePage(name)
}

// ShowDetail opens the output page of a task.
func (ui *AppUI) ShowDetail(id string) {
	ui.detail.SetTask(id)
	ui.content.ChangePage(DetailPageName)
}

func (ui *AppUI) render() {
	snap := ui.data.Snapshot()
	ui.input.Sync(snap.SearchText)
	ui.tasks.Render(snap)
	if ui.content.Top() == Component(ui.detail) {
		ui.detail.Refresh()
	}
	ui.create.Sync(snap)
	ui.confirm.Sync(snap)
}

func (ui *AppUI) updateHints(c Component) {
	var actions []*KeyAction
	if h, ok := c.(Hinter); ok {
		actions = append(actions, h.Hints()...)
	}
	actions = append(actions, ui.actions.List()...)
	ui.hints.SetText(FormatHints(actions))
}

func (ui *AppUI) bindKeys() {
	ui.actions.Add(NewAction(KeyL, "logs", func(*tcell.EventKey) *tcell.EventKey {
		ui.GotoPage(LogsPageName)
		return nil
	}))
	ui.actions.Add(NewAction(KeyJ, "journal", func(*tcell.EventKey) *tcell.EventKey {
		ui.GotoPage(JournalPageName)
		return nil
	}))
	ui.actions.Add(NewAction(KeyQ, "quit", func(*tcell.EventKey) *tcell.EventKey {
		ui.BailOut()
		return nil
	}))
	ui.actions.Add(NewAction(tcell.KeyCtrlC, "", func(*tcell.EventKey) *tcell.EventKey {
		ui.BailOut()
		return nil
	}))
}

// keyboardHandler runs the global actions unless a text field or dialog
// has the keys.
func (ui *AppUI) keyboardHandler(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyCtrlC {
		return ui.actions.Handle(evt)
	}
	if ui.input.HasFocus() || ui.create.HasFocus() || ui.confirm.HasFocus() {
		return evt
	}
	return ui.actions.Handle(evt)
}
