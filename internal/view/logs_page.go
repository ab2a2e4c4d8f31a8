package view

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/xiaorui77/taskdeck/internal/view/model"
)

const maxLogLines = 500

type LogsPage struct {
	*tview.TextView
	app     *AppUI
	actions *KeyActions

	lines int
}

func NewLogsPage(app *AppUI) *LogsPage {
	return &LogsPage{
		TextView: tview.NewTextView(),
		app:      app,
		actions:  NewKeyActions(),
	}
}

func (l *LogsPage) Init() {
	l.SetScrollable(true)
	l.SetWrap(true)
	l.SetTextColor(l.app.styles.Table.FgColor.Color())
	l.actions.Add(NewAction(tcell.KeyEsc, "back", func(*tcell.EventKey) *tcell.EventKey {
		l.app.content.Back()
		return nil
	}))
	l.actions.Add(NewAction(KeyC, "clear", func(*tcell.EventKey) *tcell.EventKey {
		l.Clear()
		l.lines = 0
		return nil
	}))
	l.SetInputCapture(l.actions.Handle)
}

// Follow copies buffered log lines onto the page until ctx is done.
func (l *LogsPage) Follow(ctx context.Context, buf *model.LogsBuffer) {
	if buf == nil {
		return
	}
	ch := buf.GetLogChan()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case item := <-ch:
				l.app.app.QueueUpdateDraw(func() {
					l.append(item.Bytes)
				})
			}
		}
	}()
}

func (l *LogsPage) append(p []byte) {
	if l.lines >= maxLogLines {
		l.Clear()
		l.lines = 0
	}
	_, _ = l.Write(p)
	l.lines++
	l.ScrollToEnd()
}

func (l *LogsPage) Name() string {
	return LogsPageName
}

func (l *LogsPage) Start() {
	l.ScrollToEnd()
}

func (l *LogsPage) Stop() {}

func (l *LogsPage) Hints() []*KeyAction {
	return l.actions.List()
}
