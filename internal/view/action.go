package view

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

type ActionHandler func(key *tcell.EventKey) *tcell.EventKey

type KeyAction struct {
	Key         tcell.Key
	Action      ActionHandler
	Description string
}

func NewAction(key tcell.Key, description string, action ActionHandler) *KeyAction {
	return &KeyAction{
		Key:         key,
		Action:      action,
		Description: description,
	}
}

// KeyActions maps keys to page actions, in binding order for the hints.
type KeyActions struct {
	actions map[tcell.Key]*KeyAction
	order   []tcell.Key
}

func NewKeyActions() *KeyActions {
	return &KeyActions{actions: map[tcell.Key]*KeyAction{}}
}

func (k *KeyActions) Add(a *KeyAction) {
	if _, ok := k.actions[a.Key]; !ok {
		k.order = append(k.order, a.Key)
	}
	k.actions[a.Key] = a
}

func (k *KeyActions) Get(evt *tcell.EventKey) (*KeyAction, bool) {
	a, ok := k.actions[AsKey(evt)]
	return a, ok
}

// Handle runs the action bound to evt, passing unbound keys through.
func (k *KeyActions) Handle(evt *tcell.EventKey) *tcell.EventKey {
	if a, ok := k.Get(evt); ok {
		return a.Action(evt)
	}
	return evt
}

func (k *KeyActions) List() []*KeyAction {
	res := make([]*KeyAction, 0, len(k.order))
	for _, key := range k.order {
		if a := k.actions[key]; a.Description != "" {
			res = append(res, a)
		}
	}
	return res
}

// FormatHints renders actions as "<key> description" pairs.
func FormatHints(actions []*KeyAction) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		parts = append(parts, fmt.Sprintf("[dodgerblue]<%s>[-] %s", KeyName(a.Key), a.Description))
	}
	return strings.Join(parts, "  ")
}

// KeyName is the label shown for key in hints.
func KeyName(key tcell.Key) string {
	if key >= KeySpace && key <= 126 {
		return string(rune(key))
	}
	if name, ok := tcell.KeyNames[key]; ok {
		return name
	}
	return fmt.Sprintf("%d", key)
}

// AsKey converts rune to keyboard key.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}
	key := tcell.Key(evt.Rune())
	if evt.Modifiers() == tcell.ModAlt {
		key = tcell.Key(int16(evt.Rune()) * int16(evt.Modifiers()))
	}
	return key
}

// Defines char keystrokes.
const (
	KeyA tcell.Key = iota + 97
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyHelp  = 63
	KeySlash = 47
	KeyColon = 58
	KeySpace = 32
)

// Defines shifted char keystrokes, used for sorting.
const (
	KeyShiftA tcell.Key = iota + 65
	KeyShiftB
	KeyShiftC
	KeyShiftD
	KeyShiftE
	KeyShiftF
	KeyShiftG
	KeyShiftH
	KeyShiftI
	KeyShiftJ
	KeyShiftK
	KeyShiftL
	KeyShiftM
	KeyShiftN
	KeyShiftO
	KeyShiftP
	KeyShiftQ
	KeyShiftR
	KeyShiftS
	KeyShiftT
	KeyShiftU
	KeyShiftV
	KeyShiftW
	KeyShiftX
	KeyShiftY
	KeyShiftZ
)
