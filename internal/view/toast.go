package view

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/xiaorui77/taskdeck/internal/config"
)

// Toast is the one-line notification bar. A message is cleared after ttl
// unless a newer one replaced it.
type Toast struct {
	*tview.TextView
	app    *tview.Application
	styles config.Toast
	ttl    time.Duration

	mx  sync.Mutex
	seq uint64
}

func NewToast(app *tview.Application, styles config.Toast, ttl time.Duration) *Toast {
	t := &Toast{
		TextView: tview.NewTextView(),
		app:      app,
		styles:   styles,
		ttl:      ttl,
	}
	t.SetTextAlign(tview.AlignCenter)
	return t
}

func (t *Toast) Success(msg string) {
	t.show(msg, t.styles.SuccessColor.Color())
}

func (t *Toast) Error(msg string) {
	t.show(msg, t.styles.ErrorColor.Color())
}

func (t *Toast) show(msg string, color tcell.Color) {
	t.mx.Lock()
	t.seq++
	seq := t.seq
	t.mx.Unlock()

	t.app.QueueUpdateDraw(func() {
		t.SetTextColor(color)
		t.SetText(msg)
	})
	time.AfterFunc(t.ttl, func() {
		t.mx.Lock()
		current := t.seq == seq
		t.mx.Unlock()
		if current {
			t.app.QueueUpdateDraw(func() {
				t.Clear()
			})
		}
	})
}
