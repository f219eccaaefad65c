package model

import (
	"reflect"
	"testing"
)

type updateRecorder struct {
	vars   []AbstractVar
	values []any
}

func (u *updateRecorder) OnUpdate(v AbstractVar, value any) {
	u.vars = append(u.vars, v)
	u.values = append(u.values, value)
}

func TestNewVarInfersType(t *testing.T) {
	v := NewVar(true, Label("Enabled"))
	if !v.Type().IsStandard(Bool) {
		t.Errorf("type of NewVar(true) is %v, want standard bool", v.Type().Kind())
	}
	if v.Get() != true || v.Label() != "Enabled" {
		t.Error("NewVar did not store value and label")
	}
}

func TestNewTypedVarUsesDefault(t *testing.T) {
	rec := NewRecordType([]Field{{Name: "n", Type: NewStandardType(Int)}})
	v := NewTypedVar(rec)
	if !reflect.DeepEqual(v.Get(), map[string]any{"n": 0}) {
		t.Errorf("Get() = %#v", v.Get())
	}
	if NewTypedVar(nil).Type().Kind() != NoType {
		t.Error("nil type should become untyped")
	}
}

func TestSetNotifiesSynchronously(t *testing.T) {
	v := NewVar(0)
	o := &updateRecorder{}
	v.AddObserver(o)

	v.Set(5)
	if len(o.values) != 1 {
		t.Fatalf("got %d notifications, want 1", len(o.values))
	}
	if o.vars[0] != AbstractVar(v) || o.values[0] != 5 {
		t.Errorf("notified with (%v, %v), want (v, 5)", o.vars[0], o.values[0])
	}

	v.RemoveObserver(o)
	v.Set(6)
	if len(o.values) != 1 {
		t.Errorf("removed observer still notified")
	}
}

func TestSetDoesNotDeduplicate(t *testing.T) {
	v := NewVar("x")
	o := &updateRecorder{}
	v.AddObserver(o)
	v.Set("x")
	v.Set("x")
	if len(o.values) != 2 {
		t.Errorf("got %d notifications, want 2", len(o.values))
	}
}

func TestNestedSetIsDepthFirst(t *testing.T) {
	v := NewVar(0)
	var log []string

	v.AddObserver(UpdateFunc(func(_ AbstractVar, val any) {
		log = append(log, "first:"+NewStandardType(Int).AsText(val))
		if val == 1 {
			v.Set(2)
		}
	}))
	v.AddObserver(UpdateFunc(func(_ AbstractVar, val any) {
		log = append(log, "second:"+NewStandardType(Int).AsText(val))
	}))

	v.Set(1)
	want := []string{"first:1", "first:2", "second:2", "second:1"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("order = %v, want %v", log, want)
	}
	if v.Get() != 2 {
		t.Errorf("final value = %v, want 2", v.Get())
	}
}

func TestVarCopy(t *testing.T) {
	ctx := NewContext("app")
	typ := NewRangeType(0, 10)
	v := NewVarOf(typ, 3, Label("Level"), InContext(ctx))
	v.AddObserver(&updateRecorder{})

	c := v.Copy()
	if c.Type() != Type(typ) {
		t.Error("copy should share the type")
	}
	if c.Get() != 3 || c.Label() != "Level" || c.Context() != ctx {
		t.Error("copy should carry value and entity fields")
	}
	if c.ObserverCount() != 0 {
		t.Errorf("copy has %d observers, want 0", c.ObserverCount())
	}

	o := &updateRecorder{}
	c.AddObserver(o)
	c.Set(7)
	if v.Get() != 3 {
		t.Error("setting the copy changed the original")
	}
	if len(o.vars) != 1 || o.vars[0] != AbstractVar(c) {
		t.Error("copy should notify with itself")
	}
}

func TestVarCopyClonesContainers(t *testing.T) {
	point := NewRecordType([]Field{
		{Name: "x", Type: NewStandardType(Int)},
		{Name: "tags", Type: NewCollectionType(NewStandardType(Text))},
	})
	v := NewVarOf(point, map[string]any{"x": 1, "tags": []any{"a"}})

	c := v.Copy()
	m := c.Get().(map[string]any)
	m["x"] = 2
	m["tags"].([]any)[0] = "b"

	want := map[string]any{"x": 1, "tags": []any{"a"}}
	if !EqualValues(v.Get(), want) {
		t.Errorf("original = %v, want %v", v.Get(), want)
	}
}

func TestFuncVar(t *testing.T) {
	type settings struct{ volume int }
	s := &settings{volume: 3}
	v := NewFuncVar(NewRangeType(0, 10),
		func() any { return s.volume },
		func(x any) { s.volume = x.(int) },
		Label("Volume"),
	)
	o := &updateRecorder{}
	v.AddObserver(o)

	if v.Get() != 3 {
		t.Errorf("Get() = %v, want 3", v.Get())
	}
	v.Set(8)
	if s.volume != 8 {
		t.Errorf("setter not called, volume = %d", s.volume)
	}
	if len(o.values) != 1 || o.values[0] != 8 {
		t.Errorf("notifications = %v, want [8]", o.values)
	}

	c := v.Copy()
	if c.Get() != 8 || c.ObserverCount() != 0 {
		t.Error("FuncVar copy should share accessors and drop observers")
	}
}

func TestFuncVarReadOnly(t *testing.T) {
	v := NewFuncVar(NewStandardType(Text), nil, nil)
	o := &updateRecorder{}
	v.AddObserver(o)
	v.Set("ignored")
	if v.Get() != "" {
		t.Errorf("Get() = %q, want type default", v.Get())
	}
	if len(o.values) != 1 || o.values[0] != "" {
		t.Errorf("notifications = %v, want [\"\"]", o.values)
	}
}

type toggleWidget struct {
	v      AbstractVar
	guard  Guard
	active bool
	pushes int
}

func (w *toggleWidget) OnUpdate(_ AbstractVar, val any) {
	w.guard.Do(func() {
		w.active = val.(bool)
		w.pushes++
	})
}

func (w *toggleWidget) toggle() {
	w.guard.Do(func() {
		w.active = !w.active
		w.v.Set(w.active)
	})
}

func TestGuardSuppressesEcho(t *testing.T) {
	v := NewVar(false)
	w := &toggleWidget{v: v}
	v.AddObserver(w)

	w.toggle()
	if v.Get() != true {
		t.Error("toggle should write through")
	}
	if w.pushes != 0 {
		t.Errorf("widget received its own write %d times", w.pushes)
	}

	v.Set(false)
	if w.active || w.pushes != 1 {
		t.Error("external writes should still reach the widget")
	}
}
