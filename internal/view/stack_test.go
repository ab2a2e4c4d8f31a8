package view

import (
	"testing"

	"github.com/rivo/tview"
)

type testPage struct {
	*tview.Box
	name    string
	started int
	stopped int
}

func newTestPage(name string) *testPage {
	return &testPage{Box: tview.NewBox(), name: name}
}

func (p *testPage) Name() string { return p.name }
func (p *testPage) Start()       { p.started++ }
func (p *testPage) Stop()        { p.stopped++ }

type stackEvents struct {
	pushed []string
	popped []string
}

func (e *stackEvents) StackPushed(c Component) {
	e.pushed = append(e.pushed, c.Name())
}

func (e *stackEvents) StackPopped(old, top Component) {
	e.popped = append(e.popped, old.Name()+">"+top.Name())
}

func TestStack(t *testing.T) {
	s := NewStack()
	events := &stackEvents{}
	s.AddListener(events)

	root, detail, logs := newTestPage("tasks"), newTestPage("detail"), newTestPage("logs")
	s.Push(root)
	s.Push(detail)
	s.Push(detail)
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2, the same page is not pushed twice", s.Len())
	}
	if root.stopped != 1 {
		t.Errorf("root stopped %d times, want 1", root.stopped)
	}
	s.Push(logs)

	if c := s.Pop(); c != Component(logs) {
		t.Errorf("Pop = %v, want logs", c)
	}
	s.Reset()
	if !s.IsLast() || s.Top() != Component(root) {
		t.Errorf("Reset left %d pages, top %v", s.Len(), s.Top())
	}
	if c := s.Pop(); c != nil {
		t.Errorf("root page was popped")
	}

	wantPushed := []string{"tasks", "detail", "logs"}
	wantPopped := []string{"logs>detail", "detail>tasks"}
	if len(events.pushed) != len(wantPushed) || len(events.popped) != len(wantPopped) {
		t.Fatalf("events = %+v", events)
	}
	for i := range wantPushed {
		if events.pushed[i] != wantPushed[i] {
			t.Errorf("pushed[%d] = %s, want %s", i, events.pushed[i], wantPushed[i])
		}
	}
	for i := range wantPopped {
		if events.popped[i] != wantPopped[i] {
			t.Errorf("popped[%d] = %s, want %s", i, events.popped[i], wantPopped[i])
		}
	}
}
