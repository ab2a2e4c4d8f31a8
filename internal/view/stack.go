package view

import "sync"

const (
	StackPush = 1 << iota
	StackPop
)

type StackListener interface {
	StackPushed(Component)
	StackPopped(old, top Component)
}

// Stack keeps the navigation history of content pages.
type Stack struct {
	components []Component
	listeners  []StackListener
	mx         sync.RWMutex
}

func NewStack() *Stack {
	return &Stack{
		components: make([]Component, 0, 4),
		listeners:  make([]StackListener, 0, 2),
	}
}

func (s *Stack) AddListener(l StackListener) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.listeners = append(s.listeners, l)
}

// Top returns the top most item
func (s *Stack) Top() Component {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.top()
}

func (s *Stack) top() Component {
	if len(s.components) == 0 {
		return nil
	}
	return s.components[len(s.components)-1]
}

func (s *Stack) Len() int {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return len(s.components)
}

// IsLast reports whether only the root page is left.
func (s *Stack) IsLast() bool {
	return s.Len() <= 1
}

// Push puts c on top. A page already on top is not pushed twice.
func (s *Stack) Push(c Component) {
	s.mx.Lock()
	top := s.top()
	if top != nil && top.Name() == c.Name() {
		s.mx.Unlock()
		return
	}
	s.components = append(s.components, c)
	s.mx.Unlock()

	if top != nil {
		top.Stop()
	}
	s.notify(c, StackPush)
}

// Pop removes the top page, the root page always stays.
func (s *Stack) Pop() Component {
	s.mx.Lock()
	if len(s.components) <= 1 {
		s.mx.Unlock()
		return nil
	}
	c := s.components[len(s.components)-1]
	s.components = s.components[:len(s.components)-1]
	s.mx.Unlock()

	s.notify(c, StackPop)
	return c
}

// Reset pops everything above the root page.
func (s *Stack) Reset() {
	for s.Pop() != nil {
	}
}

func (s *Stack) notify(c Component, action int) {
	s.mx.RLock()
	listeners := append([]StackListener(nil), s.listeners...)
	top := s.top()
	s.mx.RUnlock()

	for _, l := range listeners {
		switch action {
		case StackPush:
			l.StackPushed(c)
		case StackPop:
			l.StackPopped(c, top)
		}
	}
}
