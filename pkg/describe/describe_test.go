package describe

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/semkit/pkg/console"
	"github.com/go-drift/semkit/pkg/errors"
	"github.com/go-drift/semkit/pkg/model"
	"github.com/go-drift/semkit/pkg/view"
)

const sample = `
format: v1
app:
  name: mixer
  version: 1.2.0
types:
  level:
    label: Level
    range: {low: 0, high: 10}
  color:
    enum:
      - {value: r, label: Red}
      - {value: g, label: Green}
  point:
    record:
      - {name: x, type: int}
      - {name: y, type: int}
  tags:
    collection: text
vars:
  - name: volume
    label: Volume
    type: level
    value: 3
  - name: muted
    value: false
  - name: color
    type: color
  - name: origin
    type: point
    value: {x: 1, y: 2}
  - name: tags
    type: tags
  - name: price
    type: decimal
    value: "1.50"
actions:
  - name: louder
    label: Louder
    icon: stock:add
    help: Raise the volume
    depends: [volume, muted]
    enabled: "!muted && volume < 10"
    do:
      - set: {var: volume, expr: volume + 1}
  - name: mute
    do:
      - set: {var: muted, expr: "true"}
      - print: muted
  - name: green
    do:
      - set: {var: color, expr: '"g"'}
  - name: shift
    do:
      - set: {var: origin, expr: '{"x": origin.x + 1, "y": origin.y}'}
  - name: double
    do:
      - set: {var: price, expr: price * 2.0}
views:
  - name: main
    label: Mixer
    kind: switch
    actions: [louder, mute, quit]
  - name: settings
    kind: form
    vars: [volume, muted, color]
    actions: [mute]
  - name: menubar
    kind: menu
    sections:
      - label: Sound
        items: [louder, volume, settings]
main: main
`

func collect(t *testing.T) *errors.Collector {
	t.Helper()
	c := &errors.Collector{}
	prev := errors.SetHandler(c)
	t.Cleanup(func() { errors.SetHandler(prev) })
	return c
}

func mustParse(t *testing.T, src string) *App {
	t.Helper()
	app, err := Parse([]byte(src))
	require.NoError(t, err)
	return app
}

func mustVar(t *testing.T, app *App, name string) model.AbstractVar {
	t.Helper()
	v, ok := app.Var(name)
	require.True(t, ok, "var %s", name)
	return v
}

func mustAction(t *testing.T, app *App, name string) model.AbstractAction {
	t.Helper()
	a, ok := app.Action(name)
	require.True(t, ok, "action %s", name)
	return a
}

func TestParseContext(t *testing.T) {
	app := mustParse(t, sample)
	assert.Equal(t, "mixer", app.Context.Name())
	assert.Equal(t, "v1.2.0", app.Context.Version())
	assert.Equal(t, "", app.Context.ResourcePath())

	v := mustVar(t, app, "volume")
	assert.Same(t, app.Context, v.Context())
}

func TestParseTypes(t *testing.T) {
	app := mustParse(t, sample)

	level, ok := app.Type("level")
	require.True(t, ok)
	require.True(t, level.IsRange())
	assert.Equal(t, "Level", level.Label())

	color, ok := app.Type("color")
	require.True(t, ok)
	assert.True(t, color.IsEnum())
	assert.Equal(t, "color", color.Label())
	assert.Equal(t, "Green", color.AsText("g"))

	point, ok := app.Type("point")
	require.True(t, ok)
	rec := point.(*model.RecordType)
	require.Len(t, rec.Fields(), 2)
	assert.True(t, rec.Fields()[0].Type.IsStandard(model.Int))

	tags, ok := app.Type("tags")
	require.True(t, ok)
	assert.True(t, tags.(*model.CollectionType).Elem().IsStandard(model.Text))

	text, ok := app.Type("text")
	require.True(t, ok)
	assert.True(t, text.IsStandard(model.Text))

	_, ok = app.Type("nope")
	assert.False(t, ok)
}

func TestParseVars(t *testing.T) {
	app := mustParse(t, sample)

	assert.Equal(t, []string{"volume", "muted", "color", "origin", "tags", "price"}, app.VarNames())
	assert.Equal(t, 3, mustVar(t, app, "volume").Get())
	assert.Equal(t, "Volume", mustVar(t, app, "volume").Label())
	assert.Equal(t, false, mustVar(t, app, "muted").Get())
	assert.True(t, mustVar(t, app, "muted").Type().IsStandard(model.Bool))
	assert.Equal(t, "r", mustVar(t, app, "color").Get(), "enum default is its first value")
	assert.Equal(t, map[string]any{"x": 1, "y": 2}, mustVar(t, app, "origin").Get())
	assert.Equal(t, []any{}, mustVar(t, app, "tags").Get())

	price := mustVar(t, app, "price").Get().(decimal.Decimal)
	assert.True(t, price.Equal(decimal.RequireFromString("1.5")))
}

func TestActionCheckFollowsVars(t *testing.T) {
	app := mustParse(t, sample)
	louder := mustAction(t, app, "louder")
	volume := mustVar(t, app, "volume")
	muted := mustVar(t, app, "muted")

	assert.Equal(t, "Louder", louder.Label())
	assert.Equal(t, model.Stock(model.AddIcon), louder.Icon())
	assert.Equal(t, "Raise the volume", louder.Help())
	assert.Equal(t, []model.AbstractVar{volume, muted}, louder.Dependencies())

	assert.True(t, louder.Check())
	volume.Set(10)
	assert.False(t, louder.Check())
	volume.Set(2)
	muted.Set(true)
	assert.False(t, louder.Check())
}

func TestSetEffects(t *testing.T) {
	collected := collect(t)
	app := mustParse(t, sample)

	mustAction(t, app, "louder").Apply(nil)
	assert.Equal(t, 4, mustVar(t, app, "volume").Get())

	mustAction(t, app, "green").Apply(nil)
	assert.Equal(t, "g", mustVar(t, app, "color").Get())

	mustAction(t, app, "shift").Apply(nil)
	assert.Equal(t, map[string]any{"x": 2, "y": 2}, mustVar(t, app, "origin").Get())

	mustAction(t, app, "double").Apply(nil)
	price := mustVar(t, app, "price").Get().(decimal.Decimal)
	assert.True(t, price.Equal(decimal.NewFromInt(3)), "price = %s", price)

	assert.Zero(t, collected.Len())
}

func TestSetEffectRejectsInvalidValue(t *testing.T) {
	collected := collect(t)
	app := mustParse(t, sample)
	volume := mustVar(t, app, "volume")
	volume.Set(10)

	updates := 0
	volume.AddObserver(model.UpdateFunc(func(model.AbstractVar, any) { updates++ }))
	mustAction(t, app, "louder").Apply(nil)

	assert.Equal(t, 10, volume.Get())
	assert.Zero(t, updates)
	require.Len(t, collected.Errors, 1)
	assert.Equal(t, errors.KindApply, collected.Errors[0].Kind)
	assert.Equal(t, "Volume", collected.Errors[0].Entity)
	assert.Contains(t, collected.Errors[0].Error(), "out of range [0, 10]")
}

func TestCheckEvaluationErrorDisables(t *testing.T) {
	collected := collect(t)
	app := mustParse(t, `
vars:
  - name: items
    type: tags
types:
  tags:
    collection: int
actions:
  - name: first
    depends: [items]
    enabled: items[0] == 1
`)
	assert.False(t, mustAction(t, app, "first").Check())
	require.Len(t, collected.Errors, 1)
	assert.Equal(t, errors.KindCheck, collected.Errors[0].Kind)
	assert.Equal(t, "first", collected.Errors[0].Entity)
}

func TestConsoleEffects(t *testing.T) {
	app := mustParse(t, sample)
	var out, diag bytes.Buffer
	con := console.New(strings.NewReader(""), &out, &diag)

	mustAction(t, app, "mute").Apply(con)
	assert.Equal(t, true, mustVar(t, app, "muted").Get())
	assert.Equal(t, "muted\n", diag.String())

	mustAction(t, app, "quit").Apply(con)
	assert.True(t, con.Done())
}

func TestQuitEffect(t *testing.T) {
	app := mustParse(t, `
actions:
  - name: leave
    do:
      - warn: bye
      - quit: true
`)
	var out, diag bytes.Buffer
	con := console.New(strings.NewReader(""), &out, &diag)
	mustAction(t, app, "leave").Apply(con)
	assert.True(t, con.Done())
	assert.Equal(t, "WARNING: bye\n", diag.String())
}

func TestParseViews(t *testing.T) {
	app := mustParse(t, sample)
	assert.Equal(t, []string{"main", "settings", "menubar"}, app.ViewNames())
	assert.Equal(t, "main", app.Main)

	sw, ok := app.MainView().(*view.Switch)
	require.True(t, ok)
	assert.Equal(t, "Mixer", sw.Label())
	require.Len(t, sw.Actions(), 3)
	assert.Equal(t, "Quit", sw.Actions()[2].Label())

	v, ok := app.View("settings")
	require.True(t, ok)
	form := v.(*view.Form)
	assert.Equal(t, "Form", form.Label())
	assert.Len(t, form.Vars(), 3)
	assert.Len(t, form.Actions(), 1)

	v, ok = app.View("menubar")
	require.True(t, ok)
	menu := v.(*view.Menu)
	require.Len(t, menu.Sections(), 1)
	items := menu.Sections()[0].Items
	require.Len(t, items, 3)
	assert.Equal(t, "Louder", items[0].Label())
	assert.Equal(t, "Volume", items[1].Label())
	assert.Equal(t, "Form", items[2].Label())
}

func TestParseEmpty(t *testing.T) {
	app := mustParse(t, "")
	assert.Equal(t, DefaultAppName, app.Context.Name())
	assert.Equal(t, []string{"quit"}, app.ActionNames())

	sw, ok := app.MainView().(*view.Switch)
	require.True(t, ok)
	assert.Equal(t, DefaultAppName, sw.Label())
	require.Len(t, sw.Actions(), 1)
}

func TestDefaultMainView(t *testing.T) {
	app := mustParse(t, `
views:
  - name: first
    actions: [quit]
  - name: second
    actions: [quit]
`)
	assert.Equal(t, "first", app.Main)
	assert.Equal(t, "Switch View", app.MainView().Label())
}

func TestDeclaredQuitReplacesBuiltin(t *testing.T) {
	app := mustParse(t, `
actions:
  - name: quit
    label: Leave
`)
	assert.Equal(t, "Leave", mustAction(t, app, "quit").Label())
	assert.Equal(t, []string{"quit"}, app.ActionNames())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		path string
		msg  string
	}{
		{"newer format", "format: v2\n", "format", "newer than supported"},
		{"bad format", "format: banana\n", "format", "invalid format version"},
		{"bad version", "app: {version: banana}\n", "app", "banana"},
		{"no kind", "types: {t: {label: T}}\n", "types.t", "no kind given"},
		{"two kinds", "types: {t: {standard: int, collection: int}}\n", "types.t", "more than one kind"},
		{"shadowing", "types: {int: {standard: text}}\n", "types.int", "shadows"},
		{"bad primitive", "types: {t: {standard: complex}}\n", "types.t.standard", "unknown primitive"},
		{"type cycle", "types: {a: {collection: b}, b: {collection: a}}\n", "types.a", "refers to itself"},
		{"bad range", "types: {t: {range: {low: 5, high: 1}}}\n", "types.t.range", "above high"},
		{"duplicate enum", "types: {t: {enum: [{value: 1}, {value: 1}]}}\n", "types.t.enum[1]", "duplicate value"},
		{"duplicate field", "types: {t: {record: [{name: x, type: int}, {name: x, type: int}]}}\n", "types.t.record[1]", "duplicate field"},
		{"unknown field type", "types: {t: {record: [{name: x, type: nope}]}}\n", "types.t.record[0].type", "unknown type"},
		{"bad var name", "vars: [{name: 'a b', value: 1}]\n", "vars[0].name", "invalid variable name"},
		{"duplicate var", "vars: [{name: a, value: 1}, {name: a, value: 2}]\n", "vars[1].name", "duplicate variable"},
		{"untyped var", "vars: [{name: a}]\n", "vars[0]", "needs a type or a value"},
		{"unknown var type", "vars: [{name: a, type: nope}]\n", "vars[0].type", "unknown type"},
		{"invalid value", "vars: [{name: a, type: t, value: 11}]\ntypes: {t: {range: {low: 0, high: 10}}}\n", "vars[0].value", "out of range"},
		{"bad decimal", "vars: [{name: a, type: decimal, value: abc}]\n", "vars[0].value", "abc"},
		{"bad icon", "actions: [{name: a, icon: 'stock:nope'}]\n", "actions[0].icon", "unknown stock icon"},
		{"missing action name", "actions: [{label: A}]\n", "actions[0].name", "missing action name"},
		{"unknown dependency", "actions: [{name: a, depends: [x]}]\n", "actions[0].depends[0]", "unknown variable"},
		{"check syntax", "actions: [{name: a, enabled: '1 +'}]\n", "actions[0].enabled", ""},
		{"check not bool", "vars: [{name: n, value: 1}]\nactions: [{name: a, enabled: n + 1}]\n", "actions[0].enabled", "want bool"},
		{"empty effect", "actions: [{name: a, do: [{}]}]\n", "actions[0].do[0]", "exactly one"},
		{"two effects", "actions: [{name: a, do: [{print: x, quit: true}]}]\n", "actions[0].do[0]", "exactly one"},
		{"unknown set target", "actions: [{name: a, do: [{set: {var: x, expr: '1'}}]}]\n", "actions[0].do[0].set.var", "unknown variable"},
		{"unknown view kind", "views: [{name: v, kind: dialog}]\n", "views[0].kind", "unknown view kind"},
		{"unknown view action", "views: [{name: v, actions: [nope]}]\n", "views[0].actions[0]", "unknown action"},
		{"unknown form var", "views: [{name: v, kind: form, vars: [nope]}]\n", "views[0].vars[0]", "unknown variable"},
		{"unknown menu item", "views: [{name: v, kind: menu, sections: [{items: [nope]}]}]\n", "views[0].sections[0].items[0]", "unknown item"},
		{"duplicate view", "views: [{name: v}, {name: v}]\n", "views[1].name", "duplicate view"},
		{"unknown main", "main: nope\n", "main", "unknown view"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			var pe *errors.ParseError
			require.True(t, stderrors.As(err, &pe), "got %T: %v", err, err)
			assert.Equal(t, tt.path, pe.Path)
			assert.Contains(t, pe.Msg, tt.msg)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	for _, src := range []string{"vars: [\n", "colour: red\n"} {
		_, err := Parse([]byte(src), WithFile("app.yaml"))
		require.Error(t, err)
		var me *errors.ModelError
		require.True(t, stderrors.As(err, &me), "got %T: %v", err, err)
		assert.Equal(t, errors.KindDescribe, me.Kind)
		assert.Equal(t, "app.yaml", me.Entity)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "player.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: {resources: icons}\n"), 0o644))

	app, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "player", app.Context.Name())
	assert.Equal(t, filepath.Join(dir, "icons"), app.Context.ResourcePath())
}

func TestLoadDefaultsResourcesToFileDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: {name: demo}\n"), 0o644))

	app, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", app.Context.Name())
	assert.Equal(t, dir, app.Context.ResourcePath())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var me *errors.ModelError
	require.True(t, stderrors.As(err, &me))
	assert.Equal(t, errors.KindDescribe, me.Kind)
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("main: nope\n"), 0o644))
	_, err = Load(path)
	var pe *errors.ParseError
	require.True(t, stderrors.As(err, &pe))
	assert.Equal(t, path, pe.File)
	assert.Contains(t, err.Error(), path+": main: ")
}
