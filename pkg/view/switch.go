package view

import "github.com/go-drift/semkit/pkg/model"

// Switch asks the user to choose one action among several.
type Switch struct {
	View
	actions []model.AbstractAction
}

// NewSwitch creates a switch over acts. The label defaults to "Switch View".
func NewSwitch(acts []model.AbstractAction, opts ...model.Option) *Switch {
	s := &Switch{actions: append([]model.AbstractAction(nil), acts...)}
	s.Init(s, withDefaultLabel("Switch View", opts)...)
	return s
}

// Actions returns the actions in the order given at construction.
func (s *Switch) Actions() []model.AbstractAction {
	return append([]model.AbstractAction(nil), s.actions...)
}

// Enabled returns the actions whose check currently passes.
func (s *Switch) Enabled() []model.AbstractAction {
	var out []model.AbstractAction
	for _, a := range s.actions {
		if a.Check() {
			out = append(out, a)
		}
	}
	return out
}
