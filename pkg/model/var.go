package model

// AbstractVar is an observable, typed value cell. Widgets register as
// [VarObserver] to follow its changes and call Set to write user input back.
type AbstractVar interface {
	Object
	AddObserver(obs any)
	RemoveObserver(obs any)

	Type() Type
	Get() any
	// Set stores v and notifies every VarObserver with the new value, even
	// when it is unchanged. v is not checked against Type.
	Set(v any)
}

// Var holds its value in memory.
type Var struct {
	Entity
	typ Type
	val any
}

var _ AbstractVar = (*Var)(nil)

// NewVar creates a variable holding val, typed by the standard type of
// val's primitive kind.
func NewVar(val any, opts ...Option) *Var {
	return NewVarOf(InferType(val), val, opts...)
}

// NewTypedVar creates a variable of type t holding t's default value.
func NewTypedVar(t Type, opts ...Option) *Var {
	return NewVarOf(t, typeDefault(t), opts...)
}

// NewVarOf creates a variable of type t holding val.
func NewVarOf(t Type, val any, opts ...Option) *Var {
	if t == nil {
		t = NewUntypedType()
	}
	v := &Var{typ: t, val: val}
	v.Init(v, opts...)
	return v
}

// Type returns the type of the variable.
func (v *Var) Type() Type { return v.typ }

// Get returns the current value.
func (v *Var) Get() any { return v.val }

// Set replaces the value and notifies observers synchronously.
func (v *Var) Set(val any) {
	v.val = val
	TriggerUpdate(v, v.val)
}

// Copy returns an independent variable with the same type, value and entity
// fields, and no observers. Record maps and collection slices are cloned
// deeply; other values are copied as is.
func (v *Var) Copy() *Var {
	c := &Var{typ: v.typ, val: cloneValue(v.val)}
	c.self = c
	v.CopyTo(&c.Entity)
	return c
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		l := make([]any, len(x))
		for i, e := range x {
			l[i] = cloneValue(e)
		}
		return l
	}
	return v
}

// FuncVar reads and writes its value through functions, typically to expose
// a field of an application object.
type FuncVar struct {
	Entity
	typ Type
	get func() any
	set func(any)
}

var _ AbstractVar = (*FuncVar)(nil)

// NewFuncVar creates a variable of type t backed by get and set.
// A nil set makes writes only notify observers.
func NewFuncVar(t Type, get func() any, set func(any), opts ...Option) *FuncVar {
	if t == nil {
		t = NewUntypedType()
	}
	v := &FuncVar{typ: t, get: get, set: set}
	v.Init(v, opts...)
	return v
}

// Type returns the type of the variable.
func (v *FuncVar) Type() Type { return v.typ }

// Get returns the value given by the getter, or the type default when there
// is no getter.
func (v *FuncVar) Get() any {
	if v.get == nil {
		return v.typ.Default()
	}
	return v.get()
}

// Set calls the setter then notifies observers with the value read back.
func (v *FuncVar) Set(val any) {
	if v.set != nil {
		v.set(val)
	}
	TriggerUpdate(v, v.Get())
}

// Copy returns a variable sharing the type and accessors of v, with no
// observers.
func (v *FuncVar) Copy() *FuncVar {
	c := &FuncVar{typ: v.typ, get: v.get, set: v.set}
	c.self = c
	v.CopyTo(&c.Entity)
	return c
}

// TriggerUpdate notifies the VarObservers of v with val. Implementations of
// AbstractVar outside this package call it from Set.
func TriggerUpdate(v AbstractVar, val any) {
	Notify(&v.Base().Subject, func(o VarObserver) {
		o.OnUpdate(v, val)
	})
}
