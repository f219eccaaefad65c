// Package describe loads application descriptions written in YAML into
// model entities: a Context, named types, variables, actions and views.
//
// A description looks like:
//
//	format: v1
//	app:
//	  name: demo
//	  version: v1.0.0
//	types:
//	  level:
//	    range: {low: 0, high: 10}
//	vars:
//	  - name: volume
//	    type: level
//	    value: 3
//	actions:
//	  - name: louder
//	    depends: [volume]
//	    enabled: volume < 10
//	    do:
//	      - set: {var: volume, expr: volume + 1}
//	views:
//	  - name: main
//	    kind: switch
//	    actions: [louder, quit]
//
// Action checks and set effects are CEL expressions over the variables.
// The action "quit" is predefined unless the description declares one.
package describe

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/semkit/pkg/errors"
	"github.com/go-drift/semkit/pkg/logger"
	"github.com/go-drift/semkit/pkg/model"
	"github.com/go-drift/semkit/pkg/view"
)

// FormatVersion is the newest description format this package reads.
const FormatVersion = "v1.0.0"

// DefaultAppName names applications whose description has no app.name.
const DefaultAppName = "semkit_app"

// App is a loaded application description.
type App struct {
	// Context owns every entity of the application.
	Context *model.Context
	// Main is the name of the view the application starts with.
	Main string

	types   map[string]model.Type
	vars    map[string]model.AbstractVar
	actions map[string]model.AbstractAction
	views   map[string]view.Viewer

	varOrder    []string
	actionOrder []string
	viewOrder   []string
}

// Type returns the named type. Primitive names (bool, int, float, text,
// decimal, any) resolve to standard types.
func (a *App) Type(name string) (model.Type, bool) {
	if t, ok := a.types[name]; ok {
		return t, true
	}
	if p, ok := model.ParsePrimitive(name); ok {
		return model.NewStandardType(p, model.InContext(a.Context)), true
	}
	return nil, false
}

// Var returns the named variable.
func (a *App) Var(name string) (model.AbstractVar, bool) {
	v, ok := a.vars[name]
	return v, ok
}

// Action returns the named action.
func (a *App) Action(name string) (model.AbstractAction, bool) {
	act, ok := a.actions[name]
	return act, ok
}

// View returns the named view.
func (a *App) View(name string) (view.Viewer, bool) {
	v, ok := a.views[name]
	return v, ok
}

// MainView returns the view named by Main.
func (a *App) MainView() view.Viewer {
	return a.views[a.Main]
}

// VarNames returns variable names in declaration order.
func (a *App) VarNames() []string { return append([]string(nil), a.varOrder...) }

// ActionNames returns action names in declaration order.
func (a *App) ActionNames() []string { return append([]string(nil), a.actionOrder...) }

// ViewNames returns view names in declaration order.
func (a *App) ViewNames() []string { return append([]string(nil), a.viewOrder...) }

// Option configures Parse and Load.
type Option func(*options)

type options struct {
	file string
	log  *logger.Logger
}

// WithFile names the file being parsed in error messages and resolves a
// relative resource path against its directory.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithLogger sets the logger used while loading and by action effects.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Load reads and parses the description at path.
func Load(path string, opts ...Option) (*App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		me := errors.Wrap("describe.Load", errors.KindDescribe, err)
		me.Entity = path
		return nil, me
	}
	return Parse(data, append([]Option{WithFile(path)}, opts...)...)
}

// Parse builds an application from a YAML description. Structural problems
// are returned as *errors.ParseError, malformed YAML as *errors.ModelError.
func Parse(data []byte, opts ...Option) (*App, error) {
	o := options{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !stderrors.Is(err, io.EOF) {
		me := errors.Wrap("describe.Parse", errors.KindDescribe, err)
		me.Entity = o.file
		return nil, me
	}

	b := newBuilder(&doc, o)
	app, err := b.build()
	if err != nil {
		return nil, err
	}
	o.log.Debugw("description loaded",
		"app", app.Context.Name(),
		"file", o.file,
		"vars", len(app.vars),
		"actions", len(app.actions),
		"views", len(app.views),
	)
	return app, nil
}

func defaultName(file string) string {
	if file == "" {
		return DefaultAppName
	}
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
