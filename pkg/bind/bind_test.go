package bind

import (
	"testing"

	"github.com/go-drift/semkit/pkg/errors"
	"github.com/go-drift/semkit/pkg/model"
	"github.com/go-drift/semkit/pkg/view"
)

type fakeButton struct {
	enabled []bool
	label   string
}

func (b *fakeButton) SetEnabled(enabled bool) { b.enabled = append(b.enabled, enabled) }
func (b *fakeButton) SetLabel(label string)   { b.label = label }

func (b *fakeButton) last() bool {
	if len(b.enabled) == 0 {
		return false
	}
	return b.enabled[len(b.enabled)-1]
}

type fakeCheck struct {
	active bool
	pushes int
}

func (c *fakeCheck) SetActive(active bool) {
	c.active = active
	c.pushes++
}

type fakeRadio struct {
	selected int
	pushes   int
}

func (r *fakeRadio) Select(index int) {
	r.selected = index
	r.pushes++
}

type fakeField struct {
	text   string
	pushes int
}

func (f *fakeField) SetText(text string) {
	f.text = text
	f.pushes++
}

func TestActionBindingFollowsDependencies(t *testing.T) {
	count := model.NewVar(0)
	inc := model.NewAction(func(any) { count.Set(count.Get().(int) + 1) },
		model.Label("Increment"),
		model.DependsOn(count),
		model.CheckFunc(func() bool { return count.Get().(int) < 2 }),
	)
	sw := view.NewSwitch([]model.AbstractAction{inc})
	btn := &fakeButton{}
	b := NewActionBinding(inc, btn, nil)
	Attach(sw, b)

	if btn.label != "Increment" {
		t.Errorf("label = %q", btn.label)
	}
	if b.Live() {
		t.Error("binding should not be live before show")
	}

	sw.Show()
	if !b.Live() || !btn.last() {
		t.Fatal("show should subscribe and enable the button")
	}

	b.Activate()
	if !btn.last() {
		t.Error("count=1 still allows the action")
	}
	b.Activate()
	if btn.last() {
		t.Error("count=2 should disable the button")
	}
	if b.Activate() {
		t.Error("Activate should not run a disabled action")
	}

	sw.Hide()
	pushes := len(btn.enabled)
	count.Set(0)
	if len(btn.enabled) != pushes {
		t.Error("hidden binding should not receive updates")
	}
	if count.ObserverCount() != 0 || inc.ObserverCount() != 0 {
		t.Error("hide should unsubscribe from the model")
	}

	sw.Show()
	if !btn.last() {
		t.Error("show should refresh the enabled state")
	}
}

func TestActionBindingShowHideCycles(t *testing.T) {
	d := model.NewVar(false)
	a := model.NewAction(nil, model.DependsOn(d))
	v := view.New()
	Attach(v, NewActionBinding(a, &fakeButton{}, nil))

	for i := 0; i < 50; i++ {
		v.Show()
		v.Show()
		v.Hide()
	}
	if d.ObserverCount() != 0 {
		t.Errorf("dependency has %d observers after cycles, want 0", d.ObserverCount())
	}
}

func TestActionBindingRelabels(t *testing.T) {
	a := model.NewAction(nil, model.Label("Play"))
	v := view.New()
	btn := &fakeButton{}
	Attach(v, NewActionBinding(a, btn, nil))
	v.Show()

	a.SetLabel("Pause")
	if btn.label != "Pause" {
		t.Errorf("label = %q, want Pause", btn.label)
	}
}

func TestActionBindingIgnoresDependencyRelabel(t *testing.T) {
	count := model.NewVar(0, model.Label("Count"))
	a := model.NewAction(nil, model.Label("Increment"), model.DependsOn(count))
	v := view.New()
	btn := &fakeButton{}
	Attach(v, NewActionBinding(a, btn, nil))
	v.Show()

	count.SetLabel("Counter")
	if btn.label != "Increment" {
		t.Errorf("label = %q, want Increment", btn.label)
	}

	a.SetLabel("Add")
	if btn.label != "Add" {
		t.Errorf("label = %q, want Add", btn.label)
	}
}

func TestActionBindingDisabledStillNotified(t *testing.T) {
	d := model.NewVar(0)
	a := model.NewAction(nil, model.DependsOn(d), model.CheckFunc(func() bool { return false }))
	v := view.New()
	btn := &fakeButton{}
	Attach(v, NewActionBinding(a, btn, nil))
	v.Show()

	before := len(btn.enabled)
	d.Set(1)
	if len(btn.enabled) != before+1 || btn.last() {
		t.Error("update should refresh the control to disabled")
	}
}

func TestAttachVisibleViewReplaysShow(t *testing.T) {
	d := model.NewVar(0)
	a := model.NewAction(nil, model.DependsOn(d))
	v := view.New()
	v.Show()

	b := NewActionBinding(a, &fakeButton{}, nil)
	Attach(v, b)
	if !b.Live() {
		t.Error("Attach on a visible view should subscribe")
	}
	Detach(v, b)
	if b.Live() || d.ObserverCount() != 0 || v.ObserverCount() != 0 {
		t.Error("Detach should unsubscribe everything")
	}
}

func TestActivateReportsPanic(t *testing.T) {
	c := &errors.Collector{}
	prev := errors.SetHandler(c)
	defer errors.SetHandler(prev)

	a := model.NewAction(func(any) { panic("no") })
	if NewActionBinding(a, &fakeButton{}, nil).Activate() {
		t.Error("Activate should report false after a panic")
	}
	if len(c.Panics) != 1 {
		t.Errorf("got %d panics, want 1", len(c.Panics))
	}
}

func TestToggle(t *testing.T) {
	bold := model.NewVar(true, model.Label("Bold"))
	w := &fakeCheck{}
	tg := NewToggle(bold, w)
	v := view.New()
	Attach(v, tg)
	v.Show()

	if !w.active {
		t.Error("initial value should be pushed")
	}
	pushes := w.pushes

	tg.Toggled(false)
	if bold.Get() != false {
		t.Error("Toggled should write the variable")
	}
	if w.pushes != pushes {
		t.Error("the widget's own write should not be echoed back")
	}

	bold.Set(true)
	if !w.active || w.pushes != pushes+1 {
		t.Error("external writes should reach the widget")
	}

	v.Hide()
	bold.Set(false)
	if !w.active {
		t.Error("hidden toggle should not follow the variable")
	}
	v.Show()
	if w.active {
		t.Error("show should resynchronize the widget")
	}
}

func TestChoice(t *testing.T) {
	typ := model.NewEnumType([]*model.EnumValue{
		model.NewEnumValue("s", model.Label("Small")),
		model.NewEnumValue("m", model.Label("Medium")),
		model.NewEnumValue("l", model.Label("Large")),
	})
	size := model.NewVarOf(typ, "m")
	w := &fakeRadio{}
	c := NewChoice(size, w)
	v := view.New()
	Attach(v, c)
	v.Show()

	if w.selected != 1 {
		t.Errorf("selected = %d, want 1", w.selected)
	}
	pushes := w.pushes

	c.Selected(2)
	if size.Get() != "l" || w.pushes != pushes {
		t.Error("Selected should write without echo")
	}
	c.Selected(7)
	if size.Get() != "l" {
		t.Error("out of range selection should be ignored")
	}

	size.Set("s")
	if w.selected != 0 {
		t.Errorf("selected = %d, want 0", w.selected)
	}
	size.Set("xl")
	if w.selected != -1 {
		t.Errorf("unknown value should clear selection, got %d", w.selected)
	}
}

func TestChoiceRequiresEnum(t *testing.T) {
	if NewChoice(model.NewVar(1), &fakeRadio{}) != nil {
		t.Error("NewChoice on a non-enum variable should return nil")
	}
}

func TestEntry(t *testing.T) {
	level := model.NewTypedVar(model.NewRangeType(0, 10), model.Label("Level"))
	f := &fakeField{}
	e := NewEntry(level, f)
	v := view.New()
	Attach(v, e)
	v.Show()

	if f.text != "0" {
		t.Errorf("text = %q, want 0", f.text)
	}

	if err := e.Edited("7"); err != nil {
		t.Fatalf("Edited(7) error = %v", err)
	}
	if level.Get() != 7 {
		t.Errorf("level = %v, want 7", level.Get())
	}

	if err := e.Edited("12"); err == nil {
		t.Error("Edited(12) should fail validation")
	}
	if level.Get() != 7 {
		t.Error("invalid text should not be stored")
	}

	level.Set(3)
	if f.text != "3" {
		t.Errorf("text = %q, want 3", f.text)
	}
}
