package bind

import (
	"github.com/go-drift/semkit/pkg/model"
	"github.com/go-drift/semkit/pkg/validate"
	"github.com/go-drift/semkit/pkg/view"
)

// Entry binds a variable to a text field. User text is parsed and validated
// against the variable type before being stored.
type Entry struct {
	v      model.AbstractVar
	widget TextField
	guard  model.Guard
	live   bool
}

// NewEntry binds v to w and shows the current value.
func NewEntry(v model.AbstractVar, w TextField) *Entry {
	e := &Entry{v: v, widget: w}
	w.SetText(v.Type().AsText(v.Get()))
	return e
}

// OnShow subscribes to the variable and resynchronizes the widget.
func (e *Entry) OnShow(view.Viewer) {
	if !e.live {
		e.live = true
		e.v.AddObserver(e)
	}
	e.guard.Do(func() { e.widget.SetText(e.v.Type().AsText(e.v.Get())) })
}

// OnHide unsubscribes from the variable.
func (e *Entry) OnHide(view.Viewer) {
	if e.live {
		e.live = false
		e.v.RemoveObserver(e)
	}
}

// OnUpdate shows external changes.
func (e *Entry) OnUpdate(v model.AbstractVar, val any) {
	e.guard.Do(func() { e.widget.SetText(v.Type().AsText(val)) })
}

// Edited is called by the driver when the user commits text. Invalid text
// leaves the variable unchanged and returns a validation error.
func (e *Entry) Edited(text string) error {
	val, err := validate.Parse(e.v.Type(), text)
	if err != nil {
		return err
	}
	e.guard.Do(func() { e.v.Set(val) })
	return nil
}
