// Package bind connects model objects to toolkit widgets.
//
// A driver wraps each native widget in one of the small interfaces below
// and creates the matching binding. Bindings follow two rules:
//
//   - They subscribe to the model when their view is shown and unsubscribe
//     when it is hidden, so hidden widgets receive nothing and repeated
//     show/hide cycles leave no registrations behind.
//   - Bindings that both write and read the same variable use a
//     model.Guard, so the update caused by their own write is not echoed
//     back to the widget.
package bind

import (
	"github.com/go-drift/semkit/pkg/model"
	"github.com/go-drift/semkit/pkg/view"
)

// Control is a widget that can be enabled or disabled, like a button or a
// menu item.
type Control interface {
	SetEnabled(enabled bool)
}

// Labeled is optionally implemented by controls showing the entity label.
type Labeled interface {
	SetLabel(label string)
}

// Checkable is a widget with an on/off state, like a check box.
type Checkable interface {
	SetActive(active bool)
}

// Selector is a widget selecting one index among several, like a radio
// group or a combo box. Index -1 clears the selection.
type Selector interface {
	Select(index int)
}

// TextField is a widget displaying editable text.
type TextField interface {
	SetText(text string)
}

// Attach registers obs on v and, if v is already visible, replays the show
// event to it.
func Attach(v view.Viewer, obs view.Observer) {
	v.AddObserver(obs)
	if v.Visible() {
		obs.OnShow(v)
	}
}

// Detach replays a hide event to obs if v is visible, then unregisters it.
func Detach(v view.Viewer, obs view.Observer) {
	if v.Visible() {
		obs.OnHide(v)
	}
	v.RemoveObserver(obs)
}

var (
	_ view.Observer        = (*ActionBinding)(nil)
	_ model.VarObserver    = (*ActionBinding)(nil)
	_ model.EntityObserver = (*ActionBinding)(nil)
	_ view.Observer        = (*Toggle)(nil)
	_ view.Observer        = (*Choice)(nil)
	_ view.Observer        = (*Entry)(nil)
)
