package view

import "github.com/go-drift/semkit/pkg/model"

// Form lets the user edit a set of variables, with optional actions such
// as apply or cancel shown alongside.
type Form struct {
	View
	vars    []model.AbstractVar
	actions []model.AbstractAction
}

// NewForm creates a form over vars. The label defaults to "Form".
func NewForm(vars []model.AbstractVar, acts []model.AbstractAction, opts ...model.Option) *Form {
	f := &Form{
		vars:    append([]model.AbstractVar(nil), vars...),
		actions: append([]model.AbstractAction(nil), acts...),
	}
	f.Init(f, withDefaultLabel("Form", opts)...)
	return f
}

// Vars returns the edited variables in order.
func (f *Form) Vars() []model.AbstractVar {
	return append([]model.AbstractVar(nil), f.vars...)
}

// Actions returns the form actions in order.
func (f *Form) Actions() []model.AbstractAction {
	return append([]model.AbstractAction(nil), f.actions...)
}
