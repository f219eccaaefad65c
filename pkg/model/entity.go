package model

// Object is implemented by every type embedding [Entity].
type Object interface {
	Base() *Entity
	Label() string
	Icon() IconRef
	Help() string
	Context() *Context
}

// Entity is the base of all objects made visible to a human user: a
// translatable label, an icon, a help message and the context owning it.
//
// Types embedding Entity call [Entity.Init] from their constructor so that
// observers receive the embedding object rather than the bare Entity.
type Entity struct {
	Subject

	label   string
	icon    IconRef
	help    string
	context *Context
	self    Object
}

// NewEntity creates a standalone entity.
func NewEntity(opts ...Option) *Entity {
	e := &Entity{}
	e.Init(e, opts...)
	return e
}

// Init applies the entity options and records self as the object passed
// to [EntityObserver.OnChange]. It does not notify observers.
func (e *Entity) Init(self Object, opts ...Option) {
	s := collect(opts)
	e.label = s.label
	e.icon = s.icon
	e.help = s.help
	e.context = s.context
	e.self = self
}

// Base returns e itself.
func (e *Entity) Base() *Entity { return e }

// Label returns the label of the entity.
func (e *Entity) Label() string { return e.label }

// Icon returns the icon reference of the entity.
func (e *Entity) Icon() IconRef { return e.icon }

// Help returns the help message of the entity.
func (e *Entity) Help() string { return e.help }

// Context returns the owning context, or nil.
func (e *Entity) Context() *Context { return e.context }

// SetLabel changes the label and notifies entity observers.
func (e *Entity) SetLabel(label string) {
	e.label = label
	e.Changed()
}

// SetIcon changes the icon and notifies entity observers.
func (e *Entity) SetIcon(icon IconRef) {
	e.icon = icon
	e.Changed()
}

// SetHelp changes the help message and notifies entity observers.
func (e *Entity) SetHelp(help string) {
	e.help = help
	e.Changed()
}

// SetContext changes the owning context and notifies entity observers.
func (e *Entity) SetContext(ctx *Context) {
	e.context = ctx
	e.Changed()
}

// Changed notifies every EntityObserver of e.
func (e *Entity) Changed() {
	self := e.object()
	Notify(&e.Subject, func(o EntityObserver) {
		o.OnChange(self)
	})
}

// CopyTo copies the label, icon, help and context of e into dst.
// The context is shared, not duplicated. Observers of dst are not notified
// and its observer list is left untouched.
func (e *Entity) CopyTo(dst *Entity) {
	dst.label = e.label
	dst.icon = e.icon
	dst.help = e.help
	dst.context = e.context
}

func (e *Entity) object() Object {
	if e.self != nil {
		return e.self
	}
	return e
}
