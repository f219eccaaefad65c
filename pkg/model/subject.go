package model

import "reflect"

// Subject maintains an ordered list of observers. The zero value is ready to use.
//
// An observer may be any comparable value, usually a pointer. What it
// receives depends on the capability interfaces it implements
// ([EntityObserver], [VarObserver], view.Observer, ...).
//
// Subject is NOT thread-safe.
type Subject struct {
	observers []any
}

// AddObserver appends obs to the observer list. Duplicates are allowed and
// are notified once per registration.
//
// Observers must be comparable, normally pointers: RemoveObserver cannot
// find an observer of an uncomparable type, so it would never be removed.
func (s *Subject) AddObserver(obs any) {
	if obs == nil {
		return
	}
	s.observers = append(s.observers, obs)
}

// RemoveObserver removes the first registration of obs.
// Removing an observer that is not registered is a no-op.
func (s *Subject) RemoveObserver(obs any) {
	for i, o := range s.observers {
		if sameObserver(o, obs) {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// ObserverCount returns the number of registrations.
func (s *Subject) ObserverCount() int {
	return len(s.observers)
}

// Notify invokes fn on every observer of s implementing O, in registration
// order. The list is captured before the first call: observers added or
// removed by fn take effect at the next notification.
func Notify[O any](s *Subject, fn func(O)) {
	if len(s.observers) == 0 {
		return
	}
	snapshot := make([]any, len(s.observers))
	copy(snapshot, s.observers)
	for _, o := range snapshot {
		if obs, ok := o.(O); ok {
			fn(obs)
		}
	}
}

func sameObserver(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

// EntityObserver is notified when the label, icon, help or context of an
// entity changes.
type EntityObserver interface {
	OnChange(entity Object)
}

// VarObserver is notified each time a variable is set.
type VarObserver interface {
	OnUpdate(v AbstractVar, value any)
}

// UpdateFunc adapts a function to the VarObserver interface.
//
// Each call to UpdateFunc returns a distinct observer; keep the result to
// remove it later.
func UpdateFunc(fn func(v AbstractVar, value any)) VarObserver {
	return &updateFunc{fn: fn}
}

type updateFunc struct {
	fn func(AbstractVar, any)
}

func (u *updateFunc) OnUpdate(v AbstractVar, value any) {
	if u.fn != nil {
		u.fn(v, value)
	}
}

// ChangeFunc adapts a function to the EntityObserver interface.
func ChangeFunc(fn func(entity Object)) EntityObserver {
	return &changeFunc{fn: fn}
}

type changeFunc struct {
	fn func(Object)
}

func (c *changeFunc) OnChange(entity Object) {
	if c.fn != nil {
		c.fn(entity)
	}
}

// Guard suppresses re-entrant notifications in observers that both write and
// listen to the same variable.
//
// An observer that pushes widget state into a variable and pulls variable
// updates back into the widget wraps both directions in Do:
//
//	func (t *toggle) OnUpdate(v model.AbstractVar, val any) {
//	    t.guard.Do(func() { t.widget.SetActive(val.(bool)) })
//	}
//
//	func (t *toggle) onToggled(active bool) {
//	    t.guard.Do(func() { t.v.Set(active) })
//	}
//
// The update caused by the observer's own write is then dropped instead of
// being echoed back to the widget.
type Guard struct {
	active bool
}

// Do runs fn unless a previous Do on the same guard is still running.
// It reports whether fn was run.
func (g *Guard) Do(fn func()) bool {
	if g.active {
		return false
	}
	g.active = true
	defer func() { g.active = false }()
	fn()
	return true
}

// Active reports whether a Do call is in progress.
func (g *Guard) Active() bool {
	return g.active
}
