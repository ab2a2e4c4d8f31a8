package view

import (
	"fmt"

	"github.com/rivo/tview"
)

const (
	TaskPageName    = "Tasks"
	DetailPageName  = "Detail"
	LogsPageName    = "Logs"
	JournalPageName = "Journal"

	createDialogName = "create"
	deleteDialogName = "delete"
)

// PageStack shows the top page of the navigation stack. Dialogs are
// pages too, drawn over the content without switching it.
type PageStack struct {
	*tview.Pages
	app *AppUI

	*Stack

	pages []Component
}

func NewPageStack(app *AppUI) *PageStack {
	return &PageStack{
		Pages: tview.NewPages(),
		app:   app,
		Stack: NewStack(),
	}
}

func (p *PageStack) Init(pages ...Component) {
	styles := p.app.styles.Frame
	p.SetBorder(true)
	p.SetBorderColor(styles.BorderColor.Color())
	p.SetTitleColor(styles.TitleColor.Color())

	for _, page := range pages {
		p.AddPage(page.Name(), page, true, false)
		p.pages = append(p.pages, page)
	}
	p.AddListener(p)
}

// AddDialog registers an overlay page, hidden until ShowDialog.
func (p *PageStack) AddDialog(name string, item tview.Primitive, width, height int) {
	p.AddPage(name, center(item, width, height), true, false)
}

func (p *PageStack) ShowDialog(name string, focus tview.Primitive) {
	p.ShowPage(name)
	p.SendToFront(name)
	p.app.app.SetFocus(focus)
}

func (p *PageStack) HideDialog(name string) {
	p.HidePage(name)
	if top := p.Top(); top != nil {
		p.app.app.SetFocus(top)
	}
}

// ChangePage pushes the named page.
func (p *PageStack) ChangePage(name string) {
	if page := p.GetPage(name); page != nil {
		p.Push(page)
	}
}

// Back returns to the previous page.
func (p *PageStack) Back() {
	p.Pop()
}

func (p *PageStack) GetPage(name string) Component {
	for _, page := range p.pages {
		if page.Name() == name {
			return page
		}
	}
	return nil
}

func (p *PageStack) StackPushed(c Component) {
	p.show(c)
}

func (p *PageStack) StackPopped(old, top Component) {
	old.Stop()
	if top != nil {
		p.show(top)
	}
}

func (p *PageStack) show(c Component) {
	p.SwitchToPage(c.Name())
	p.SetTitle(fmt.Sprintf(" %s ", c.Name()))
	c.Start()
	p.app.app.SetFocus(c)
	p.app.updateHints(c)
}

// center places p in the middle of the screen with a fixed size.
func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
