// Package view describes what is presented to the user: panes built from
// the actions and variables of the model.
//
// A view does not render anything. Its owner, usually a driver frame, calls
// Show when the view becomes visible and Hide when it stops being so, and
// the widgets rendering it register as [Observer] to subscribe to the model
// on show and unsubscribe on hide.
package view

import "github.com/go-drift/semkit/pkg/model"

// Observer follows the visibility of a view.
type Observer interface {
	OnShow(v Viewer)
	OnHide(v Viewer)
}

// Viewer is implemented by every view.
type Viewer interface {
	model.Object
	AddObserver(obs any)
	RemoveObserver(obs any)
	Show()
	Hide()
	Visible() bool
}

// View is the base of all views. Embed it and call [View.Init] from the
// constructor.
type View struct {
	model.Entity
	self    Viewer
	visible bool
}

var _ Viewer = (*View)(nil)

// New creates a plain view.
func New(opts ...model.Option) *View {
	v := &View{}
	v.Init(v, opts...)
	return v
}

// Init records self as the view passed to observers and applies opts.
func (v *View) Init(self Viewer, opts ...model.Option) {
	v.Entity.Init(self, opts...)
	v.self = self
}

// Show notifies observers that the view is displayed. It is called by the
// owner of the view, once per transition.
func (v *View) Show() {
	v.visible = true
	self := v.viewer()
	model.Notify(&v.Subject, func(o Observer) {
		o.OnShow(self)
	})
}

// Hide notifies observers that the view is no longer displayed.
func (v *View) Hide() {
	v.visible = false
	self := v.viewer()
	model.Notify(&v.Subject, func(o Observer) {
		o.OnHide(self)
	})
}

// Visible reports whether Show was called more recently than Hide.
func (v *View) Visible() bool { return v.visible }

func (v *View) viewer() Viewer {
	if v.self != nil {
		return v.self
	}
	return v
}

func withDefaultLabel(label string, opts []model.Option) []model.Option {
	return append([]model.Option{model.Label(label)}, opts...)
}
