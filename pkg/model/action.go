package model

import "github.com/go-drift/semkit/pkg/errors"

// AbstractAction is an operation offered to the user.
//
// Check reports whether the action is currently allowed. It is free of side
// effects and may be called at any frequency, typically after each update of
// a dependency. Observe and Ignore register an observer on every dependency:
// a widget calls Observe when shown and Ignore when hidden.
type AbstractAction interface {
	Object
	AddObserver(obs any)
	RemoveObserver(obs any)

	// Apply performs the action. con is an opaque handle supplied by the
	// driver, usually a console, and is never inspected by the model.
	Apply(con any)
	Check() bool
	Dependencies() []AbstractVar
	Observe(obs VarObserver)
	Ignore(obs VarObserver)
}

// Action runs an apply function, guarded by an optional check function.
type Action struct {
	Entity
	deps  []AbstractVar
	apply func(con any)
	check func() bool
}

var _ AbstractAction = (*Action)(nil)

// NewAction creates an action calling apply. Use [CheckFunc] to set the
// check function (default [NoCheck]) and [DependsOn] to declare the
// variables it depends on.
func NewAction(apply func(con any), opts ...Option) *Action {
	s := collect(opts)
	if apply == nil {
		apply = NoApply
	}
	if s.check == nil {
		s.check = NoCheck
	}
	a := &Action{
		deps:  append([]AbstractVar(nil), s.deps...),
		apply: apply,
		check: s.check,
	}
	a.Init(a, opts...)
	return a
}

// NoApply does nothing.
func NoApply(any) {}

// NoCheck always allows the action.
func NoCheck() bool { return true }

// Apply calls the apply function.
func (a *Action) Apply(con any) { a.apply(con) }

// Check calls the check function.
func (a *Action) Check() bool { return a.check() }

// Dependencies returns the variables the action depends on.
func (a *Action) Dependencies() []AbstractVar {
	return append([]AbstractVar(nil), a.deps...)
}

// Observe registers obs on every dependency.
func (a *Action) Observe(obs VarObserver) {
	for _, d := range a.deps {
		d.AddObserver(obs)
	}
}

// Ignore unregisters obs from every dependency.
func (a *Action) Ignore(obs VarObserver) {
	for _, d := range a.deps {
		d.RemoveObserver(obs)
	}
}

// Invoke applies a if its check passes and reports whether it ran.
// A panic raised by the action is recovered and reported to the error
// handler; Invoke then returns false.
func Invoke(a AbstractAction, con any) (ran bool) {
	if !a.Check() {
		return false
	}
	defer errors.RecoverWithCallback("model.Invoke("+a.Label()+")", func(any) {
		ran = false
	})
	a.Apply(con)
	return true
}
