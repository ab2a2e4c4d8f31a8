package view

import (
	"fmt"

	"github.com/rivo/tview"
	"github.com/xiaorui77/taskdeck/internal/view/model"
)

const (
	confirmYes = "Yes"
	confirmNo  = "No"
)

// ConfirmPrompt asks before a task is deleted.
type ConfirmPrompt struct {
	*tview.Modal
	app  *AppUI
	data *model.Table

	shown string
}

func NewConfirmPrompt(app *AppUI, data *model.Table) *ConfirmPrompt {
	return &ConfirmPrompt{
		Modal: tview.NewModal(),
		app:   app,
		data:  data,
	}
}

func (c *ConfirmPrompt) Init() {
	c.AddButtons([]string{confirmYes, confirmNo})
	c.SetDoneFunc(func(_ int, label string) {
		c.data.ConfirmDelete(label == confirmYes)
	})
}

func (c *ConfirmPrompt) Sync(snap *model.Snapshot) {
	switch {
	case snap.Delete != nil && c.shown != snap.Delete.ID:
		c.shown = snap.Delete.ID
		c.SetText(fmt.Sprintf("Delete task %q?\nThis cannot be undone.", snap.Delete.Name))
		c.SetFocus(1)
		c.app.content.ShowDialog(deleteDialogName, c)
	case snap.Delete == nil && c.shown != "":
		c.shown = ""
		c.app.content.HideDialog(deleteDialogName)
	}
}
