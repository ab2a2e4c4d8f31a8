package view

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestAsKey(t *testing.T) {
	tests := []struct {
		evt  *tcell.EventKey
		want tcell.Key
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone), KeyC},
		{tcell.NewEventKey(tcell.KeyRune, 'N', tcell.ModNone), KeyShiftN},
		{tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModNone), KeySlash},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), tcell.KeyEnter},
		{tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), tcell.KeyEsc},
	}
	for _, tt := range tests {
		if got := AsKey(tt.evt); got != tt.want {
			t.Errorf("AsKey(%v) = %v, want %v", tt.evt.Name(), got, tt.want)
		}
	}
}

func TestKeyActions(t *testing.T) {
	actions := NewKeyActions()
	hits := 0
	actions.Add(NewAction(KeyE, "execute", func(*tcell.EventKey) *tcell.EventKey {
		hits++
		return nil
	}))
	actions.Add(NewAction(tcell.KeyCtrlC, "", func(evt *tcell.EventKey) *tcell.EventKey {
		return evt
	}))

	if evt := actions.Handle(tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone)); evt != nil || hits != 1 {
		t.Errorf("bound key not consumed, hits = %d", hits)
	}
	unbound := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	if evt := actions.Handle(unbound); evt != unbound {
		t.Errorf("unbound key was swallowed")
	}

	list := actions.List()
	if len(list) != 1 || list[0].Description != "execute" {
		t.Errorf("List = %+v, want only the described action", list)
	}
	if hints := FormatHints(list); !strings.Contains(hints, "<e> execute") {
		t.Errorf("hints = %q", hints)
	}
}
