package view

import "github.com/rivo/tview"

// Component is a page of the content stack.
type Component interface {
	tview.Primitive

	// Name returns the view name.
	Name() string
	// Start is called when the page comes to the top, Stop when it leaves.
	Start()
	Stop()
}

// Hinter pages describe their key bindings for the header.
type Hinter interface {
	Hints() []*KeyAction
}
