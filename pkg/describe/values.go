package describe

import (
	"fmt"

	"github.com/google/cel-go/common/types/ref"
	"github.com/shopspring/decimal"

	"github.com/go-drift/semkit/pkg/model"
)

// coerce converts a decoded value (from YAML or an expression) to the Go
// representation the model uses for t. Values that cannot be converted are
// returned unchanged for validation to reject.
func coerce(t model.Type, v any) (any, error) {
	if rv, ok := v.(ref.Val); ok {
		v = rv.Value()
	}
	c := &coercer{in: v, out: v}
	model.Visit(t, c)
	return c.out, c.err
}

type coercer struct {
	in  any
	out any
	err error
}

func (c *coercer) VisitUntyped(*model.UntypedType) {}

func (c *coercer) VisitStandard(t *model.StandardType) {
	switch t.Primitive() {
	case model.Int:
		c.toInt()
	case model.Float:
		switch n := c.in.(type) {
		case int:
			c.out = float64(n)
		case int64:
			c.out = float64(n)
		}
	case model.Decimal:
		switch n := c.in.(type) {
		case string:
			c.out, c.err = decimal.NewFromString(n)
		case int:
			c.out = decimal.NewFromInt(int64(n))
		case int64:
			c.out = decimal.NewFromInt(n)
		case float64:
			c.out = decimal.NewFromFloat(n)
		}
	}
}

func (c *coercer) toInt() {
	switch n := c.in.(type) {
	case int64:
		c.out = int(n)
	case uint64:
		c.out = int(n)
	}
}

// VisitEnum maps a value onto the payload with the same text, so that an
// expression yielding 2 selects a payload decoded as int 2.
func (c *coercer) VisitEnum(t *model.EnumType) {
	if t.IndexOf(c.in) >= 0 {
		return
	}
	text := fmt.Sprint(c.in)
	for _, ev := range t.Values() {
		if fmt.Sprint(ev.Value()) == text {
			c.out = ev.Value()
			return
		}
	}
}

func (c *coercer) VisitRange(*model.RangeType) { c.toInt() }

func (c *coercer) VisitRecord(t *model.RecordType) {
	m, ok := c.in.(map[string]any)
	if !ok {
		return
	}
	out := make(map[string]any, len(m))
	for k, fv := range m {
		out[k] = fv
		if f, ok := t.Field(k); ok {
			cv, err := coerce(f.Type, fv)
			if err != nil {
				c.err = fmt.Errorf("field %s: %w", k, err)
				return
			}
			out[k] = cv
		}
	}
	c.out = out
}

func (c *coercer) VisitCollection(t *model.CollectionType) {
	l, ok := c.in.([]any)
	if !ok {
		return
	}
	out := make([]any, len(l))
	for i, e := range l {
		cv, err := coerce(t.Elem(), e)
		if err != nil {
			c.err = fmt.Errorf("element %d: %w", i, err)
			return
		}
		out[i] = cv
	}
	c.out = out
}
