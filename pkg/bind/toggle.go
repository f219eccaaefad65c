package bind

import (
	"github.com/go-drift/semkit/pkg/model"
	"github.com/go-drift/semkit/pkg/view"
)

// Toggle binds a boolean variable to a Checkable widget in both directions.
type Toggle struct {
	v      model.AbstractVar
	widget Checkable
	guard  model.Guard
	live   bool
}

// NewToggle binds v to w and pushes the current value to w.
func NewToggle(v model.AbstractVar, w Checkable) *Toggle {
	t := &Toggle{v: v, widget: w}
	t.push(v.Get())
	return t
}

// OnShow subscribes to the variable and resynchronizes the widget.
func (t *Toggle) OnShow(view.Viewer) {
	if !t.live {
		t.live = true
		t.v.AddObserver(t)
	}
	t.guard.Do(func() { t.push(t.v.Get()) })
}

// OnHide unsubscribes from the variable.
func (t *Toggle) OnHide(view.Viewer) {
	if t.live {
		t.live = false
		t.v.RemoveObserver(t)
	}
}

// OnUpdate pushes external changes to the widget.
func (t *Toggle) OnUpdate(_ model.AbstractVar, val any) {
	t.guard.Do(func() { t.push(val) })
}

// Toggled is called by the driver when the user flips the widget.
func (t *Toggle) Toggled(active bool) {
	t.guard.Do(func() { t.v.Set(active) })
}

func (t *Toggle) push(val any) {
	if b, ok := val.(bool); ok {
		t.widget.SetActive(b)
	}
}

// Choice binds an enumerated variable to a Selector widget in both
// directions. Selector indexes follow the order of the enum values.
type Choice struct {
	v      model.AbstractVar
	enum   *model.EnumType
	widget Selector
	guard  model.Guard
	live   bool
}

// NewChoice binds v to w. It returns nil if v is not of an enumerated type.
func NewChoice(v model.AbstractVar, w Selector) *Choice {
	enum, ok := v.Type().(*model.EnumType)
	if !ok {
		return nil
	}
	c := &Choice{v: v, enum: enum, widget: w}
	w.Select(enum.IndexOf(v.Get()))
	return c
}

// OnShow subscribes to the variable and resynchronizes the widget.
func (c *Choice) OnShow(view.Viewer) {
	if !c.live {
		c.live = true
		c.v.AddObserver(c)
	}
	c.guard.Do(func() { c.widget.Select(c.enum.IndexOf(c.v.Get())) })
}

// OnHide unsubscribes from the variable.
func (c *Choice) OnHide(view.Viewer) {
	if c.live {
		c.live = false
		c.v.RemoveObserver(c)
	}
}

// OnUpdate pushes external changes to the widget.
func (c *Choice) OnUpdate(_ model.AbstractVar, val any) {
	c.guard.Do(func() { c.widget.Select(c.enum.IndexOf(val)) })
}

// Selected is called by the driver when the user picks the value at index.
// Out of range indexes are ignored.
func (c *Choice) Selected(index int) {
	values := c.enum.Values()
	if index < 0 || index >= len(values) {
		return
	}
	c.guard.Do(func() { c.v.Set(values[index].Value()) })
}
