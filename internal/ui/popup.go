package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// PopupKind tags the concrete popup type on the stack.
type PopupKind int

const (
	PopupEntry PopupKind = iota
	PopupFilter
	PopupSort
	PopupFuzzyFind
	PopupMsgBox
	PopupExport
	PopupHelp
)

// popupOutcome tells the session what a key did to the popup.
type popupOutcome int

const (
	outcomeNone popupOutcome = iota
	outcomeCancel
	outcomeSubmit
	outcomeExternalEdit
)

// Popup is a modal dialog. Only the top of the stack receives keys.
type Popup interface {
	Kind() PopupKind
	Update(msg tea.KeyMsg) (popupOutcome, tea.Cmd)
	View(t Theme, width int) string
}

type popupStack struct {
	items []Popup
}

func (s *popupStack) push(p Popup) {
	s.items = append(s.items, p)
}

func (s *popupStack) pop() Popup {
	if len(s.items) == 0 {
		return nil
	}
	p := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return p
}

func (s *popupStack) top() Popup {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

func (s *popupStack) len() int {
	return len(s.items)
}

// remove drops every popup of the given kind, wherever it sits.
func (s *popupStack) remove(kind PopupKind) {
	kept := s.items[:0]
	for _, p := range s.items {
		if p.Kind() != kind {
			kept = append(kept, p)
		}
	}
	s.items = kept
}

func (s *popupStack) find(kind PopupKind) Popup {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Kind() == kind {
			return s.items[i]
		}
	}
	return nil
}
