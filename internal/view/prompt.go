package view

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// InputWrap is the search prompt. Every edit filters the task table.
type InputWrap struct {
	*tview.InputField
	app *AppUI

	active   bool
	callback func(string)
}

func NewInputWrap(app *AppUI, callback func(string)) *InputWrap {
	return &InputWrap{
		InputField: tview.NewInputField(),
		app:        app,
		callback:   callback,
	}
}

func (i *InputWrap) Init() {
	styles := i.app.styles.Prompt
	i.SetBorder(true)
	i.SetBorderColor(i.app.styles.Frame.BorderColor.Color())
	i.SetLabel(" Search: ")
	i.SetPlaceholder("Search tasks by name")
	i.SetFieldTextColor(styles.FgColor.Color())
	i.SetFieldBackgroundColor(styles.BgColor.Color())
	i.SetInputCapture(i.keyboard)
	i.SetChangedFunc(i.callback)
	i.SetDoneFunc(i.OnComplete)
}

func (i *InputWrap) Active(activate bool) {
	i.active = activate
	if activate {
		i.app.app.SetFocus(i)
		return
	}
	if top := i.app.content.Top(); top != nil {
		i.app.app.SetFocus(top)
	}
}

func (i *InputWrap) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyCtrlU {
		i.SetText("")
		return nil
	}
	return evt
}

// OnComplete leaves the prompt; Esc also clears the search.
func (i *InputWrap) OnComplete(key tcell.Key) {
	switch key {
	case tcell.KeyEsc:
		i.SetText("")
		i.Active(false)
	case tcell.KeyEnter, tcell.KeyTab:
		i.Active(false)
	}
}

// Sync shows the current search text without firing the callback.
func (i *InputWrap) Sync(text string) {
	if i.GetText() == text {
		return
	}
	i.SetChangedFunc(nil)
	i.SetText(text)
	i.SetChangedFunc(i.callback)
}

// IsActivated returns true if the prompt has focus, false otherwise.
func (i *InputWrap) IsActivated() bool {
	return i.active
}
