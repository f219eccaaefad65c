package bind

import (
	"github.com/go-drift/semkit/pkg/model"
	"github.com/go-drift/semkit/pkg/view"
)

// ActionBinding keeps a control's enabled state in sync with the check of
// an action, and relabels it when the action's label changes.
type ActionBinding struct {
	action  model.AbstractAction
	control Control
	con     any
	live    bool
}

// NewActionBinding binds a to c. con is passed to the action when the
// control is activated.
func NewActionBinding(a model.AbstractAction, c Control, con any) *ActionBinding {
	b := &ActionBinding{action: a, control: c, con: con}
	if l, ok := c.(Labeled); ok {
		l.SetLabel(a.Label())
	}
	return b
}

// Action returns the bound action.
func (b *ActionBinding) Action() model.AbstractAction { return b.action }

// Live reports whether the binding is subscribed to the model.
func (b *ActionBinding) Live() bool { return b.live }

// OnShow subscribes to the action and its dependencies and refreshes the
// control.
func (b *ActionBinding) OnShow(view.Viewer) {
	if !b.live {
		b.live = true
		b.action.Observe(b)
		b.action.AddObserver(b)
	}
	b.Refresh()
}

// OnHide unsubscribes from the action and its dependencies.
func (b *ActionBinding) OnHide(view.Viewer) {
	if b.live {
		b.live = false
		b.action.Ignore(b)
		b.action.RemoveObserver(b)
	}
}

// OnUpdate re-evaluates the check after a dependency changed.
func (b *ActionBinding) OnUpdate(model.AbstractVar, any) {
	b.Refresh()
}

// OnChange relabels the control when the action itself changed. Changes
// of dependency variables reach it too and are ignored.
func (b *ActionBinding) OnChange(e model.Object) {
	if e == nil || e.Base() != b.action.Base() {
		return
	}
	if l, ok := b.control.(Labeled); ok {
		l.SetLabel(b.action.Label())
	}
}

// Refresh pushes the current check result to the control.
func (b *ActionBinding) Refresh() {
	b.control.SetEnabled(b.action.Check())
}

// Activate is called by the driver when the user triggers the control.
// It reports whether the action ran.
func (b *ActionBinding) Activate() bool {
	return model.Invoke(b.action, b.con)
}
