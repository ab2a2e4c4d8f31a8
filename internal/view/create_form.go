package view

import (
	"github.com/rivo/tview"
	"github.com/xiaorui77/taskdeck/internal/view/model"
)

const (
	submitLabel     = "Submit"
	submittingLabel = "Submitting..."
)

var fieldLabels = map[model.Field]string{
	model.FieldName:    "Task Name",
	model.FieldOwner:   "Owner",
	model.FieldCommand: "Command",
}

// CreateForm is the modal for a new task. Field edits go straight to the
// view-model so a failed submit keeps them.
type CreateForm struct {
	*tview.Form
	app  *AppUI
	data *model.Table

	shown      bool
	submitting bool
}

func NewCreateForm(app *AppUI, data *model.Table) *CreateForm {
	return &CreateForm{
		Form: tview.NewForm(),
		app:  app,
		data: data,
	}
}

func (f *CreateForm) Init() {
	f.SetBorder(true)
	f.SetTitle(" Create New Task ")
	f.SetBorderColor(f.app.styles.Frame.BorderColor.Color())
	f.SetTitleColor(f.app.styles.Frame.TitleColor.Color())

	for _, field := range []model.Field{model.FieldName, model.FieldOwner, model.FieldCommand} {
		field := field
		f.AddInputField(fieldLabels[field], "", 48, nil, func(text string) {
			f.data.SetField(field, text)
		})
	}
	f.AddButton(submitLabel, f.submit)
	f.AddButton("Cancel", f.data.CloseCreate)
	f.SetCancelFunc(f.data.CloseCreate)
}

func (f *CreateForm) submit() {
	if f.submitting {
		return
	}
	if err := f.data.SubmitCreate(); err != nil {
		f.app.toast.Error(err.Error())
	}
}

// Sync shows or hides the modal and mirrors the submit state.
func (f *CreateForm) Sync(snap *model.Snapshot) {
	f.submitting = snap.Submitting
	label := submitLabel
	if snap.Submitting {
		label = submittingLabel
	}
	if b := f.GetButton(0); b != nil {
		b.SetLabel(label)
	}

	switch {
	case snap.ModalOpen && !f.shown:
		f.shown = true
		for i, field := range []model.Field{model.FieldName, model.FieldOwner, model.FieldCommand} {
			if input, ok := f.GetFormItem(i).(*tview.InputField); ok {
				input.SetText(snap.Form.Get(field))
			}
		}
		f.SetFocus(0)
		f.app.content.ShowDialog(createDialogName, f)
	case !snap.ModalOpen && f.shown:
		f.shown = false
		f.app.content.HideDialog(createDialogName)
	}
}
