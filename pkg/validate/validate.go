// Package validate checks values against model types before they are
// stored. The model never validates on its own; input layers call Set or
// Parse here instead of writing variables directly.
package validate

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/go-drift/semkit/pkg/errors"
	"github.com/go-drift/semkit/pkg/model"
)

// Value reports whether v conforms to t. The error, if any, is a
// *errors.ValidationError.
func Value(t model.Type, v any) error {
	c := &checker{value: v}
	model.Visit(t, c)
	if c.reason == "" {
		return nil
	}
	label := ""
	if t != nil {
		label = t.Label()
	}
	return &errors.ValidationError{Label: label, Value: v, Reason: c.reason}
}

// Set validates x against the type of v and stores it on success.
// On failure v is left untouched and its observers are not notified.
func Set(v model.AbstractVar, x any) error {
	if err := Value(v.Type(), x); err != nil {
		if ve, ok := err.(*errors.ValidationError); ok && v.Label() != "" {
			ve.Label = v.Label()
		}
		return err
	}
	v.Set(x)
	return nil
}

type checker struct {
	value  any
	reason string
}

func (c *checker) fail(format string, args ...any) {
	c.reason = fmt.Sprintf(format, args...)
}

func (c *checker) VisitUntyped(*model.UntypedType) {}

func (c *checker) VisitStandard(t *model.StandardType) {
	switch t.Primitive() {
	case model.Bool:
		if _, ok := c.value.(bool); !ok {
			c.fail("expected bool, got %T", c.value)
		}
	case model.Int:
		if _, ok := asInt(c.value); !ok {
			if p, ok := model.PrimitiveOf(c.value); ok && p == model.Int {
				c.fail("integer %v does not fit", c.value)
				return
			}
			c.fail("expected integer, got %T", c.value)
		}
	case model.Float:
		switch c.value.(type) {
		case float32, float64:
		default:
			c.fail("expected float, got %T", c.value)
		}
	case model.Text:
		if _, ok := c.value.(string); !ok {
			c.fail("expected text, got %T", c.value)
		}
	case model.Decimal:
		if _, ok := c.value.(decimal.Decimal); !ok {
			c.fail("expected decimal, got %T", c.value)
		}
	}
}

func (c *checker) VisitEnum(t *model.EnumType) {
	if t.IndexOf(c.value) >= 0 {
		return
	}
	names := make([]string, 0, len(t.Values()))
	for _, ev := range t.Values() {
		names = append(names, t.AsText(ev.Value()))
	}
	c.fail("not one of [%s]", strings.Join(names, ", "))
}

func (c *checker) VisitRange(t *model.RangeType) {
	n, ok := asInt(c.value)
	if !ok {
		c.fail("expected integer, got %T", c.value)
		return
	}
	if !t.Contains(n) {
		c.fail("out of range [%d, %d]", t.Low(), t.High())
	}
}

func (c *checker) VisitRecord(t *model.RecordType) {
	m, ok := c.value.(map[string]any)
	if !ok {
		c.fail("expected record, got %T", c.value)
		return
	}
	known := make(map[string]bool, len(t.Fields()))
	for _, f := range t.Fields() {
		known[f.Name] = true
		fv, present := m[f.Name]
		if !present {
			c.fail("field %s: missing", f.Name)
			return
		}
		if err := Value(f.Type, fv); err != nil {
			c.fail("field %s: %s", f.Name, reasonOf(err))
			return
		}
	}
	var extra []string
	for k := range m {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		c.fail("unknown fields %s", strings.Join(extra, ", "))
	}
}

func (c *checker) VisitCollection(t *model.CollectionType) {
	rv := reflect.ValueOf(c.value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		c.fail("expected collection, got %T", c.value)
		return
	}
	for i := 0; i < rv.Len(); i++ {
		if err := Value(t.Elem(), rv.Index(i).Interface()); err != nil {
			c.fail("element %d: %s", i, reasonOf(err))
			return
		}
	}
}

func reasonOf(err error) string {
	if ve, ok := err.(*errors.ValidationError); ok {
		return ve.Reason
	}
	return err.Error()
}

// asInt accepts every integer kind the model classifies as Int, as long as
// the value fits in an int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return fromUint(uint64(n))
	case uint:
		return fromUint(uint64(n))
	case uint64:
		return fromUint(n)
	}
	return 0, false
}

func fromUint(n uint64) (int, bool) {
	if n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

// Parse converts user text into a value of type t and validates it.
// Records and collections cannot be parsed from a single text.
func Parse(t model.Type, text string) (any, error) {
	p := &parser{text: strings.TrimSpace(text), raw: text}
	model.Visit(t, p)
	if p.err != nil {
		label := ""
		if t != nil {
			label = t.Label()
		}
		return nil, &errors.ValidationError{Label: label, Value: text, Reason: p.err.Error()}
	}
	if err := Value(t, p.value); err != nil {
		return nil, err
	}
	return p.value, nil
}

type parser struct {
	text  string
	raw   string
	value any
	err   error
}

func (p *parser) VisitUntyped(*model.UntypedType) { p.value = p.raw }

func (p *parser) VisitStandard(t *model.StandardType) {
	switch t.Primitive() {
	case model.Bool:
		p.value, p.err = parseBool(p.text)
	case model.Int:
		p.value, p.err = strconv.Atoi(p.text)
	case model.Float:
		p.value, p.err = strconv.ParseFloat(p.text, 64)
	case model.Decimal:
		p.value, p.err = decimal.NewFromString(p.text)
	default:
		p.value = p.raw
	}
	if p.err != nil {
		p.err = fmt.Errorf("cannot read %q as %s", p.text, t.Primitive())
	}
}

func (p *parser) VisitEnum(t *model.EnumType) {
	for _, ev := range t.Values() {
		if strings.EqualFold(ev.Label(), p.text) || t.AsText(ev.Value()) == p.text || fmt.Sprint(ev.Value()) == p.text {
			p.value = ev.Value()
			return
		}
	}
	p.err = fmt.Errorf("unknown choice %q", p.text)
}

func (p *parser) VisitRange(t *model.RangeType) {
	n, err := strconv.Atoi(p.text)
	if err != nil {
		p.err = fmt.Errorf("cannot read %q as integer", p.text)
		return
	}
	p.value = n
}

func (p *parser) VisitRecord(*model.RecordType) {
	p.err = fmt.Errorf("records cannot be read from text")
}

func (p *parser) VisitCollection(*model.CollectionType) {
	p.err = fmt.Errorf("collections cannot be read from text")
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}
