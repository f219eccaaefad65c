package describe

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/cel-go/cel"
	"golang.org/x/mod/semver"

	"github.com/go-drift/semkit/pkg/console"
	"github.com/go-drift/semkit/pkg/errors"
	"github.com/go-drift/semkit/pkg/model"
	"github.com/go-drift/semkit/pkg/validate"
	"github.com/go-drift/semkit/pkg/view"
)

// Variable names are CEL identifiers.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type builder struct {
	doc       *document
	opts      options
	app       *App
	resolving map[string]bool
	env       *cel.Env
}

func newBuilder(doc *document, opts options) *builder {
	return &builder{
		doc:  doc,
		opts: opts,
		app: &App{
			types:   make(map[string]model.Type),
			vars:    make(map[string]model.AbstractVar),
			actions: make(map[string]model.AbstractAction),
			views:   make(map[string]view.Viewer),
		},
		resolving: make(map[string]bool),
	}
}

func (b *builder) fail(path, format string, args ...any) error {
	return &errors.ParseError{File: b.opts.file, Path: path, Msg: fmt.Sprintf(format, args...)}
}

func (b *builder) build() (*App, error) {
	steps := []func() error{
		b.checkFormat,
		b.buildContext,
		b.buildTypes,
		b.buildVars,
		b.buildEnv,
		b.buildActions,
		b.buildViews,
		b.buildMain,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return b.app, nil
}

func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func (b *builder) checkFormat() error {
	f := canonicalVersion(b.doc.Format)
	if f == "" {
		return nil
	}
	if !semver.IsValid(f) {
		return b.fail("format", "invalid format version %q", b.doc.Format)
	}
	if semver.Compare(f, FormatVersion) > 0 {
		return b.fail("format", "format %s is newer than supported %s", f, FormatVersion)
	}
	return nil
}

func (b *builder) buildContext() error {
	spec := b.doc.App
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		name = defaultName(b.opts.file)
	}

	res := spec.Resources
	if b.opts.file != "" {
		dir := filepath.Dir(b.opts.file)
		switch {
		case res == "":
			res = dir
		case !filepath.IsAbs(res):
			res = filepath.Join(dir, res)
		}
	}

	var opts []model.ContextOption
	if res != "" {
		opts = append(opts, model.WithResourcePath(res))
	}
	if v := canonicalVersion(spec.Version); v != "" {
		opts = append(opts, model.WithVersion(v))
	}
	ctx := model.NewContext(name, opts...)
	if err := ctx.Validate(); err != nil {
		return b.fail("app", "%v", err)
	}
	b.app.Context = ctx
	return nil
}

func parseIcon(s string) (model.IconRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.IconRef{}, nil
	}
	if name, ok := strings.CutPrefix(s, "stock:"); ok {
		stock, ok := model.ParseStockIcon(name)
		if !ok {
			return model.IconRef{}, fmt.Errorf("unknown stock icon %q", name)
		}
		return model.Stock(stock), nil
	}
	return model.NamedIcon(s), nil
}

func (b *builder) entityOptions(path string, m meta, label string) ([]model.Option, error) {
	icon, err := parseIcon(m.Icon)
	if err != nil {
		return nil, b.fail(path+".icon", "%v", err)
	}
	if m.Label != "" {
		label = m.Label
	}
	opts := []model.Option{model.Icon(icon), model.Help(m.Help), model.InContext(b.app.Context)}
	if label != "" {
		opts = append(opts, model.Label(label))
	}
	return opts, nil
}

func (b *builder) buildTypes() error {
	names := make([]string, 0, len(b.doc.Types))
	for name := range b.doc.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := model.ParsePrimitive(name); ok {
			return b.fail("types."+name, "type name shadows a standard type")
		}
		if _, err := b.resolveType(name, "types."+name); err != nil {
			return err
		}
	}
	return nil
}

// resolveType returns the type named name, building described types on
// first use. ref locates the reference for error messages.
func (b *builder) resolveType(name, ref string) (model.Type, error) {
	if t, ok := b.app.types[name]; ok {
		return t, nil
	}
	if p, ok := model.ParsePrimitive(name); ok {
		return model.NewStandardType(p, model.InContext(b.app.Context)), nil
	}
	spec, ok := b.doc.Types[name]
	if !ok {
		return nil, b.fail(ref, "unknown type %q", name)
	}
	path := "types." + name
	if b.resolving[name] {
		return nil, b.fail(path, "type %q refers to itself", name)
	}
	b.resolving[name] = true
	defer delete(b.resolving, name)

	t, err := b.buildType(path, name, spec)
	if err != nil {
		return nil, err
	}
	b.app.types[name] = t
	return t, nil
}

func (b *builder) buildType(path, name string, spec typeSpec) (model.Type, error) {
	kinds := 0
	for _, set := range []bool{spec.Standard != "", len(spec.Enum) > 0, spec.Range != nil, len(spec.Record) > 0, spec.Collection != ""} {
		if set {
			kinds++
		}
	}
	switch kinds {
	case 0:
		return nil, b.fail(path, "no kind given (standard, enum, range, record or collection)")
	case 1:
	default:
		return nil, b.fail(path, "more than one kind given")
	}

	opts, err := b.entityOptions(path, spec.Meta, name)
	if err != nil {
		return nil, err
	}

	switch {
	case spec.Standard != "":
		p, ok := model.ParsePrimitive(spec.Standard)
		if !ok {
			return nil, b.fail(path+".standard", "unknown primitive %q", spec.Standard)
		}
		return model.NewStandardType(p, opts...), nil

	case len(spec.Enum) > 0:
		values := make([]*model.EnumValue, 0, len(spec.Enum))
		for i, ev := range spec.Enum {
			vpath := fmt.Sprintf("%s.enum[%d]", path, i)
			if ev.Value == nil {
				return nil, b.fail(vpath, "missing value")
			}
			for _, prev := range values {
				if model.EqualValues(prev.Value(), ev.Value) {
					return nil, b.fail(vpath, "duplicate value %v", ev.Value)
				}
			}
			vopts, err := b.entityOptions(vpath, ev.Meta, "")
			if err != nil {
				return nil, err
			}
			values = append(values, model.NewEnumValue(ev.Value, vopts...))
		}
		return model.NewEnumType(values, opts...), nil

	case spec.Range != nil:
		if spec.Range.Low > spec.Range.High {
			return nil, b.fail(path+".range", "low %d is above high %d", spec.Range.Low, spec.Range.High)
		}
		return model.NewRangeType(spec.Range.Low, spec.Range.High, opts...), nil

	case len(spec.Record) > 0:
		fields := make([]model.Field, 0, len(spec.Record))
		seen := make(map[string]bool, len(spec.Record))
		for i, f := range spec.Record {
			fpath := fmt.Sprintf("%s.record[%d]", path, i)
			if f.Name == "" {
				return nil, b.fail(fpath, "missing field name")
			}
			if seen[f.Name] {
				return nil, b.fail(fpath, "duplicate field %q", f.Name)
			}
			seen[f.Name] = true
			ft, err := b.resolveType(f.Type, fpath+".type")
			if err != nil {
				return nil, err
			}
			fields = append(fields, model.Field{Name: f.Name, Type: ft})
		}
		return model.NewRecordType(fields, opts...), nil

	default:
		elem, err := b.resolveType(spec.Collection, path+".collection")
		if err != nil {
			return nil, err
		}
		return model.NewCollectionType(elem, opts...), nil
	}
}

func (b *builder) buildVars() error {
	for i, spec := range b.doc.Vars {
		path := fmt.Sprintf("vars[%d]", i)
		if !identRe.MatchString(spec.Name) {
			return b.fail(path+".name", "invalid variable name %q", spec.Name)
		}
		if _, dup := b.app.vars[spec.Name]; dup {
			return b.fail(path+".name", "duplicate variable %q", spec.Name)
		}
		opts, err := b.entityOptions(path, spec.Meta, spec.Name)
		if err != nil {
			return err
		}

		var v *model.Var
		switch {
		case spec.Type == "" && spec.Value == nil:
			return b.fail(path, "variable %q needs a type or a value", spec.Name)
		case spec.Type == "":
			v = model.NewVar(spec.Value, opts...)
		default:
			t, err := b.resolveType(spec.Type, path+".type")
			if err != nil {
				return err
			}
			if spec.Value == nil {
				v = model.NewTypedVar(t, opts...)
				break
			}
			val, err := coerce(t, spec.Value)
			if err == nil {
				err = validate.Value(t, val)
			}
			if err != nil {
				return b.fail(path+".value", "%v", err)
			}
			v = model.NewVarOf(t, val, opts...)
		}
		b.app.vars[spec.Name] = v
		b.app.varOrder = append(b.app.varOrder, spec.Name)
	}
	return nil
}

func (b *builder) buildEnv() error {
	env, err := newEnv(b.app)
	if err != nil {
		return b.fail("vars", "%v", err)
	}
	b.env = env
	return nil
}

func (b *builder) buildActions() error {
	for i, spec := range b.doc.Actions {
		path := fmt.Sprintf("actions[%d]", i)
		if spec.Name == "" {
			return b.fail(path+".name", "missing action name")
		}
		if _, dup := b.app.actions[spec.Name]; dup {
			return b.fail(path+".name", "duplicate action %q", spec.Name)
		}
		opts, err := b.entityOptions(path, spec.Meta, spec.Name)
		if err != nil {
			return err
		}
		label := spec.Name
		if spec.Meta.Label != "" {
			label = spec.Meta.Label
		}

		deps := make([]model.AbstractVar, 0, len(spec.Depends))
		for j, name := range spec.Depends {
			v, ok := b.app.vars[name]
			if !ok {
				return b.fail(fmt.Sprintf("%s.depends[%d]", path, j), "unknown variable %q", name)
			}
			deps = append(deps, v)
		}
		opts = append(opts, model.DependsOn(deps...))

		if spec.Enabled != "" {
			prg, err := b.compile(path+".enabled", spec.Enabled, cel.BoolType)
			if err != nil {
				return err
			}
			opts = append(opts, model.CheckFunc(checkFunc(b.app, label, prg)))
		}

		effects := make([]func(con any), 0, len(spec.Do))
		for j, e := range spec.Do {
			fn, err := b.effect(fmt.Sprintf("%s.do[%d]", path, j), e)
			if err != nil {
				return err
			}
			effects = append(effects, fn)
		}
		var apply func(con any)
		if len(effects) > 0 {
			apply = func(con any) {
				for _, fn := range effects {
					fn(con)
				}
			}
		}

		b.app.actions[spec.Name] = model.NewAction(apply, opts...)
		b.app.actionOrder = append(b.app.actionOrder, spec.Name)
	}

	if _, ok := b.app.actions["quit"]; !ok {
		b.app.actions["quit"] = console.QuitAction(model.InContext(b.app.Context))
		b.app.actionOrder = append(b.app.actionOrder, "quit")
	}
	return nil
}

type infoer interface{ Info(msg string) }

type warner interface{ Warn(msg string) }

func (b *builder) effect(path string, e effectSpec) (func(con any), error) {
	n := 0
	for _, set := range []bool{e.Print != "", e.Warn != "", e.Set != nil, e.Quit} {
		if set {
			n++
		}
	}
	if n != 1 {
		return nil, b.fail(path, "an effect sets exactly one of print, warn, set or quit")
	}

	log := b.opts.log
	switch {
	case e.Print != "":
		msg := e.Print
		return func(con any) {
			if c, ok := con.(infoer); ok {
				c.Info(msg)
				return
			}
			log.Info(msg)
		}, nil

	case e.Warn != "":
		msg := e.Warn
		return func(con any) {
			if c, ok := con.(warner); ok {
				c.Warn(msg)
				return
			}
			log.Warn(msg)
		}, nil

	case e.Quit:
		return func(con any) {
			if q, ok := con.(console.Quitter); ok {
				q.Quit()
			}
		}, nil
	}

	target, ok := b.app.vars[e.Set.Var]
	if !ok {
		return nil, b.fail(path+".set.var", "unknown variable %q", e.Set.Var)
	}
	prg, err := b.compile(path+".set.expr", e.Set.Expr, nil)
	if err != nil {
		return nil, err
	}
	return setEffect(b.app, target, prg), nil
}

func (b *builder) buildViews() error {
	for i, spec := range b.doc.Views {
		path := fmt.Sprintf("views[%d]", i)
		if spec.Name == "" {
			return b.fail(path+".name", "missing view name")
		}
		if _, dup := b.app.views[spec.Name]; dup {
			return b.fail(path+".name", "duplicate view %q", spec.Name)
		}
		opts, err := b.entityOptions(path, spec.Meta, "")
		if err != nil {
			return err
		}

		acts, err := b.lookupActions(path+".actions", spec.Actions)
		if err != nil {
			return err
		}

		var v view.Viewer
		switch spec.Kind {
		case "", "switch":
			v = view.NewSwitch(acts, opts...)
		case "form":
			vars := make([]model.AbstractVar, 0, len(spec.Vars))
			for j, name := range spec.Vars {
				fv, ok := b.app.vars[name]
				if !ok {
					return b.fail(fmt.Sprintf("%s.vars[%d]", path, j), "unknown variable %q", name)
				}
				vars = append(vars, fv)
			}
			v = view.NewForm(vars, acts, opts...)
		case "menu":
			sections := make([]view.Section, 0, len(spec.Sections))
			for j, s := range spec.Sections {
				items := make([]model.Object, 0, len(s.Items))
				for k, name := range s.Items {
					item, ok := b.lookupItem(name)
					if !ok {
						return b.fail(fmt.Sprintf("%s.sections[%d].items[%d]", path, j, k), "unknown item %q", name)
					}
					items = append(items, item)
				}
				sections = append(sections, view.Section{Label: s.Label, Items: items})
			}
			v = view.NewMenu(sections, opts...)
		default:
			return b.fail(path+".kind", "unknown view kind %q", spec.Kind)
		}
		b.app.views[spec.Name] = v
		b.app.viewOrder = append(b.app.viewOrder, spec.Name)
	}
	return nil
}

func (b *builder) lookupActions(path string, names []string) ([]model.AbstractAction, error) {
	acts := make([]model.AbstractAction, 0, len(names))
	for i, name := range names {
		a, ok := b.app.actions[name]
		if !ok {
			return nil, b.fail(fmt.Sprintf("%s[%d]", path, i), "unknown action %q", name)
		}
		acts = append(acts, a)
	}
	return acts, nil
}

// lookupItem finds a menu item among actions, then variables, then views.
func (b *builder) lookupItem(name string) (model.Object, bool) {
	if a, ok := b.app.actions[name]; ok {
		return a, true
	}
	if v, ok := b.app.vars[name]; ok {
		return v, true
	}
	if v, ok := b.app.views[name]; ok {
		return v, true
	}
	return nil, false
}

func (b *builder) buildMain() error {
	switch {
	case b.doc.Main != "":
		if _, ok := b.app.views[b.doc.Main]; !ok {
			return b.fail("main", "unknown view %q", b.doc.Main)
		}
		b.app.Main = b.doc.Main
	case len(b.app.viewOrder) > 0:
		b.app.Main = b.app.viewOrder[0]
	default:
		// Without views, the application is a switch over all its actions.
		acts, err := b.lookupActions("actions", b.app.actionOrder)
		if err != nil {
			return err
		}
		b.app.views["main"] = view.NewSwitch(acts,
			model.Label(b.app.Context.Name()), model.InContext(b.app.Context))
		b.app.viewOrder = append(b.app.viewOrder, "main")
		b.app.Main = "main"
	}
	return nil
}
