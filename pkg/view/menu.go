package view

import "github.com/go-drift/semkit/pkg/model"

// Section is a labelled group of menu items. An item is either a
// model.AbstractAction or a model.AbstractVar; drivers show boolean
// variables as check items and enum variables as radio groups.
type Section struct {
	Label string
	Items []model.Object
}

// Menu is an ordered list of sections.
type Menu struct {
	View
	sections []Section
}

// NewMenu creates a menu. The label defaults to "Menu".
func NewMenu(sections []Section, opts ...model.Option) *Menu {
	m := &Menu{sections: make([]Section, len(sections))}
	for i, s := range sections {
		m.sections[i] = Section{Label: s.Label, Items: append([]model.Object(nil), s.Items...)}
	}
	m.Init(m, withDefaultLabel("Menu", opts)...)
	return m
}

// Sections returns the sections in order.
func (m *Menu) Sections() []Section {
	out := make([]Section, len(m.sections))
	for i, s := range m.sections {
		out[i] = Section{Label: s.Label, Items: append([]model.Object(nil), s.Items...)}
	}
	return out
}

// Actions returns every action of the menu, section by section.
func (m *Menu) Actions() []model.AbstractAction {
	var out []model.AbstractAction
	for _, s := range m.sections {
		for _, it := range s.Items {
			if a, ok := it.(model.AbstractAction); ok {
				out = append(out, a)
			}
		}
	}
	return out
}
