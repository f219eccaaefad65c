package describe

import (
	"fmt"
	"reflect"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types/ref"
	"github.com/shopspring/decimal"

	"github.com/go-drift/semkit/pkg/errors"
	"github.com/go-drift/semkit/pkg/model"
	"github.com/go-drift/semkit/pkg/validate"
)

// newEnv declares every variable of app for use in expressions.
func newEnv(app *App) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(app.varOrder))
	for _, name := range app.varOrder {
		opts = append(opts, cel.Variable(name, celType(app.vars[name].Type())))
	}
	return cel.NewEnv(opts...)
}

// compile checks src and, when want is not nil, its result type.
func (b *builder) compile(path, src string, want *cel.Type) (cel.Program, error) {
	ast, iss := b.env.Compile(src)
	if iss != nil && iss.Err() != nil {
		return nil, b.fail(path, "%v", iss.Err())
	}
	if want != nil {
		out := ast.OutputType()
		if !out.IsExactType(want) && !out.IsExactType(cel.DynType) {
			return nil, b.fail(path, "expression has type %s, want %s", out, want)
		}
	}
	prg, err := b.env.Program(ast)
	if err != nil {
		return nil, b.fail(path, "%v", err)
	}
	return prg, nil
}

type celTyper struct{ t *cel.Type }

func celType(t model.Type) *cel.Type {
	c := &celTyper{t: cel.DynType}
	model.Visit(t, c)
	return c.t
}

func (c *celTyper) VisitUntyped(*model.UntypedType) {}

func (c *celTyper) VisitStandard(t *model.StandardType) {
	switch t.Primitive() {
	case model.Bool:
		c.t = cel.BoolType
	case model.Int:
		c.t = cel.IntType
	case model.Float, model.Decimal:
		c.t = cel.DoubleType
	case model.Text:
		c.t = cel.StringType
	}
}

func (c *celTyper) VisitEnum(*model.EnumType) {}

func (c *celTyper) VisitRange(*model.RangeType) { c.t = cel.IntType }

func (c *celTyper) VisitRecord(*model.RecordType) {
	c.t = cel.MapType(cel.StringType, cel.DynType)
}

func (c *celTyper) VisitCollection(*model.CollectionType) {
	c.t = cel.ListType(cel.DynType)
}

// eval runs prg over the current values of the variables of app.
func eval(prg cel.Program, app *App) (ref.Val, error) {
	act := make(map[string]any, len(app.vars))
	for name, v := range app.vars {
		act[name] = toCEL(v.Get())
	}
	out, _, err := prg.Eval(act)
	return out, err
}

func toCEL(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case decimal.Decimal:
		return x.InexactFloat64()
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = toCEL(e)
		}
		return m
	case []any:
		l := make([]any, len(x))
		for i, e := range x {
			l[i] = toCEL(e)
		}
		return l
	}
	return v
}

var (
	anyMap   = reflect.TypeOf(map[string]any{})
	anySlice = reflect.TypeOf([]any{})
)

// fromCEL converts an expression result to a value of type t.
func fromCEL(t model.Type, out ref.Val) (any, error) {
	var native any
	switch {
	case t.IsRecord():
		m, err := out.ConvertToNative(anyMap)
		if err != nil {
			return nil, err
		}
		native = m
	case t.IsCollect():
		l, err := out.ConvertToNative(anySlice)
		if err != nil {
			return nil, err
		}
		native = l
	default:
		native = out.Value()
	}
	return coerce(t, native)
}

func checkFunc(app *App, label string, prg cel.Program) func() bool {
	return func() bool {
		out, err := eval(prg, app)
		if err == nil {
			if ok, isBool := out.Value().(bool); isBool {
				return ok
			}
			err = fmt.Errorf("check returned %T, not bool", out.Value())
		}
		errors.Report(&errors.ModelError{Op: "describe.check", Kind: errors.KindCheck, Entity: label, Err: err})
		return false
	}
}

func setEffect(app *App, target model.AbstractVar, prg cel.Program) func(con any) {
	return func(any) {
		out, err := eval(prg, app)
		if err == nil {
			var val any
			if val, err = fromCEL(target.Type(), out); err == nil {
				err = validate.Set(target, val)
			}
		}
		if err != nil {
			errors.Report(&errors.ModelError{Op: "describe.set", Kind: errors.KindApply, Entity: target.Label(), Err: err})
		}
	}
}
