package model

import "strings"

type Field int

const (
	FieldName Field = iota
	FieldOwner
	FieldCommand
)

var fieldMessages = map[Field]string{
	FieldName:    "Please input the task name",
	FieldOwner:   "Please input the owner",
	FieldCommand: "Please input the command",
}

// Form is the create-task form content.
type Form struct {
	Name    string
	Owner   string
	Command string
}

func (f *Form) Set(field Field, value string) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldOwner:
		f.Owner = value
	case FieldCommand:
		f.Command = value
	}
}

func (f Form) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldOwner:
		return f.Owner
	case FieldCommand:
		return f.Command
	}
	return ""
}

// Missing lists the required fields that are blank, in form order.
func (f Form) Missing() []Field {
	var missing []Field
	for _, field := range []Field{FieldName, FieldOwner, FieldCommand} {
		if strings.TrimSpace(f.Get(field)) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// FormError reports required fields left blank. No request was sent.
type FormError struct {
	Missing []Field
}

func (e *FormError) Error() string {
	msgs := make([]string, 0, len(e.Missing))
	for _, f := range e.Missing {
		msgs = append(msgs, fieldMessages[f])
	}
	return strings.Join(msgs, "; ")
}
