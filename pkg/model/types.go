package model

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TypeKind is the tag of a [Type].
type TypeKind int

const (
	// NoType tags the untyped placeholder.
	NoType TypeKind = iota
	Standard
	Enum
	Range
	Record
	Collection
)

func (k TypeKind) String() string {
	switch k {
	case Standard:
		return "standard"
	case Enum:
		return "enum"
	case Range:
		return "range"
	case Record:
		return "record"
	case Collection:
		return "collection"
	default:
		return "none"
	}
}

// Primitive is the kind of value wrapped by a [StandardType].
type Primitive int

const (
	// AnyPrimitive matches every standard type in [Type.IsStandard].
	AnyPrimitive Primitive = iota
	Bool
	Int
	Float
	Text
	Decimal
)

func (p Primitive) String() string {
	switch p {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Text:
		return "text"
	case Decimal:
		return "decimal"
	default:
		return "any"
	}
}

// ParsePrimitive returns the primitive with the given name.
func ParsePrimitive(name string) (Primitive, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bool", "boolean":
		return Bool, true
	case "int", "integer":
		return Int, true
	case "float", "double":
		return Float, true
	case "text", "string", "str":
		return Text, true
	case "decimal":
		return Decimal, true
	}
	return AnyPrimitive, false
}

// Type describes the shape and the default value of a piece of data.
//
// Exactly one of the predicates is true for a given type, or none for the
// untyped placeholder. Consumers meeting a type they cannot handle treat it
// as unsupported; [Visit] gives exhaustive matching instead.
//
// Types are immutable once built and are usually shared by many variables.
// Composite types are built from already constructed components, so type
// graphs cannot be cyclic.
type Type interface {
	Object

	Kind() TypeKind

	// IsStandard reports whether the type is standard and, unless p is
	// AnyPrimitive, whether it wraps p.
	IsStandard(p Primitive) bool
	IsEnum() bool
	IsRange() bool
	IsRecord() bool
	IsCollect() bool

	// Default returns the default value. It never fails and depends only on
	// the type.
	Default() any

	// AsText renders a value of the type's shape.
	AsText(v any) string

	sealed()
}

type typeBase struct {
	Entity
}

func (*typeBase) Kind() TypeKind           { return NoType }
func (*typeBase) IsStandard(Primitive) bool { return false }
func (*typeBase) IsEnum() bool             { return false }
func (*typeBase) IsRange() bool            { return false }
func (*typeBase) IsRecord() bool           { return false }
func (*typeBase) IsCollect() bool          { return false }
func (*typeBase) sealed()                  {}

// UntypedType is the placeholder for data with no known shape.
type UntypedType struct {
	typeBase
}

// NewUntypedType creates an untyped placeholder.
func NewUntypedType(opts ...Option) *UntypedType {
	t := &UntypedType{}
	t.Init(t, opts...)
	return t
}

// Default returns nil.
func (*UntypedType) Default() any { return nil }

// AsText renders v with its natural formatting.
func (*UntypedType) AsText(v any) string { return formatValue(v) }

// DefaultResolver supplies the default value of each primitive.
type DefaultResolver interface {
	DefaultOf(p Primitive) any
}

// DefaultTable is a DefaultResolver backed by a map. Missing primitives
// resolve to nil.
type DefaultTable map[Primitive]any

// DefaultOf implements DefaultResolver.
func (t DefaultTable) DefaultOf(p Primitive) any {
	return t[p]
}

// StandardDefaults returns a fresh table with the usual zero values.
func StandardDefaults() DefaultTable {
	return DefaultTable{
		Bool:    false,
		Int:     0,
		Float:   0.0,
		Text:    "",
		Decimal: decimal.Zero,
	}
}

var builtinDefaults DefaultResolver = StandardDefaults()

// StandardType wraps a primitive kind.
type StandardType struct {
	typeBase
	prim     Primitive
	resolver DefaultResolver
}

// NewStandardType creates a standard type for p. Its default comes from the
// resolver given with [WithResolver], or from [StandardDefaults].
func NewStandardType(p Primitive, opts ...Option) *StandardType {
	t := &StandardType{prim: p}
	t.Init(t, opts...)
	t.resolver = collect(opts).resolver
	if t.resolver == nil {
		t.resolver = builtinDefaults
	}
	return t
}

// Primitive returns the wrapped primitive.
func (t *StandardType) Primitive() Primitive { return t.prim }

func (*StandardType) Kind() TypeKind { return Standard }

func (t *StandardType) IsStandard(p Primitive) bool {
	return p == AnyPrimitive || p == t.prim
}

func (t *StandardType) Default() any {
	return t.resolver.DefaultOf(t.prim)
}

func (t *StandardType) AsText(v any) string {
	return formatValue(v)
}

// EnumValue is one value of an [EnumType]: an entity carrying a payload.
type EnumValue struct {
	Entity
	value any
}

// NewEnumValue creates an enumerated value with the given payload.
func NewEnumValue(value any, opts ...Option) *EnumValue {
	ev := &EnumValue{value: value}
	ev.Init(ev, opts...)
	return ev
}

// Value returns the payload.
func (ev *EnumValue) Value() any { return ev.value }

// EnumType is an ordered set of [EnumValue]s. Values are compared by payload.
type EnumType struct {
	typeBase
	values []*EnumValue
}

// NewEnumType creates an enumerated type.
func NewEnumType(values []*EnumValue, opts ...Option) *EnumType {
	t := &EnumType{values: append([]*EnumValue(nil), values...)}
	t.Init(t, opts...)
	return t
}

// Values returns the values in declaration order.
func (t *EnumType) Values() []*EnumValue {
	return append([]*EnumValue(nil), t.values...)
}

// Find returns the value whose payload equals v.
func (t *EnumType) Find(v any) (*EnumValue, bool) {
	if i := t.IndexOf(v); i >= 0 {
		return t.values[i], true
	}
	return nil, false
}

// IndexOf returns the position of the value whose payload equals v, or -1.
func (t *EnumType) IndexOf(v any) int {
	for i, ev := range t.values {
		if EqualValues(ev.value, v) {
			return i
		}
	}
	return -1
}

func (*EnumType) Kind() TypeKind { return Enum }
func (*EnumType) IsEnum() bool   { return true }

// Default returns the payload of the first value, or nil for an empty enum.
func (t *EnumType) Default() any {
	if len(t.values) == 0 {
		return nil
	}
	return t.values[0].value
}

// AsText returns the label of the value whose payload is v. Unknown payloads
// and unlabelled values render as the payload itself.
func (t *EnumType) AsText(v any) string {
	if ev, ok := t.Find(v); ok && ev.Label() != "" {
		return ev.Label()
	}
	return formatValue(v)
}

// RangeType is a sub-range of integers, bounds included.
type RangeType struct {
	typeBase
	low, high int
}

// NewRangeType creates the range [low, high].
func NewRangeType(low, high int, opts ...Option) *RangeType {
	t := &RangeType{low: low, high: high}
	t.Init(t, opts...)
	return t
}

// Low returns the lower bound.
func (t *RangeType) Low() int { return t.low }

// High returns the upper bound.
func (t *RangeType) High() int { return t.high }

// Contains reports whether n lies in the range.
func (t *RangeType) Contains(n int) bool {
	return n >= t.low && n <= t.high
}

func (*RangeType) Kind() TypeKind { return Range }
func (*RangeType) IsRange() bool  { return true }

// Default returns the lower bound.
func (t *RangeType) Default() any { return t.low }

func (t *RangeType) AsText(v any) string { return formatValue(v) }

// Field is a named component of a [RecordType].
type Field struct {
	Name string
	Type Type
}

// RecordType is an ordered sequence of named fields. Its values are
// map[string]any keyed by field name.
type RecordType struct {
	typeBase
	fields []Field
}

// NewRecordType creates a record type.
func NewRecordType(fields []Field, opts ...Option) *RecordType {
	t := &RecordType{fields: append([]Field(nil), fields...)}
	t.Init(t, opts...)
	return t
}

// Fields returns the fields in declaration order.
func (t *RecordType) Fields() []Field {
	return append([]Field(nil), t.fields...)
}

// Field returns the field with the given name.
func (t *RecordType) Field(name string) (Field, bool) {
	for _, f := range t.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (*RecordType) Kind() TypeKind { return Record }
func (*RecordType) IsRecord() bool { return true }

// Default returns a new map holding the default of every field.
func (t *RecordType) Default() any {
	m := make(map[string]any, len(t.fields))
	for _, f := range t.fields {
		m[f.Name] = typeDefault(f.Type)
	}
	return m
}

// AsText renders the record as "{name: value, ...}" in field order. Fields
// missing from v render their default.
func (t *RecordType) AsText(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return formatValue(v)
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range t.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fv, present := m[f.Name]
		if !present {
			fv = typeDefault(f.Type)
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(typeText(f.Type, fv))
	}
	b.WriteByte('}')
	return b.String()
}

// CollectionType is a homogeneous sequence of elements.
type CollectionType struct {
	typeBase
	elem Type
}

// NewCollectionType creates a collection of elem.
func NewCollectionType(elem Type, opts ...Option) *CollectionType {
	t := &CollectionType{elem: elem}
	t.Init(t, opts...)
	return t
}

// Elem returns the element type.
func (t *CollectionType) Elem() Type { return t.elem }

func (*CollectionType) Kind() TypeKind  { return Collection }
func (*CollectionType) IsCollect() bool { return true }

// Default returns a new empty sequence.
func (t *CollectionType) Default() any { return []any{} }

// AsText renders the elements as "[a, b, c]". Any slice or array is accepted.
func (t *CollectionType) AsText(v any) string {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return "[]"
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return formatValue(v)
	}
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(typeText(t.elem, rv.Index(i).Interface()))
	}
	b.WriteByte(']')
	return b.String()
}

// TypeVisitor receives the concrete type in [Visit]. Implementing it
// requires handling every kind.
type TypeVisitor interface {
	VisitUntyped(t *UntypedType)
	VisitStandard(t *StandardType)
	VisitEnum(t *EnumType)
	VisitRange(t *RangeType)
	VisitRecord(t *RecordType)
	VisitCollection(t *CollectionType)
}

// Visit dispatches t to the matching method of v. A nil type is visited as
// untyped with a nil argument.
func Visit(t Type, v TypeVisitor) {
	switch t := t.(type) {
	case *StandardType:
		v.VisitStandard(t)
	case *EnumType:
		v.VisitEnum(t)
	case *RangeType:
		v.VisitRange(t)
	case *RecordType:
		v.VisitRecord(t)
	case *CollectionType:
		v.VisitCollection(t)
	case *UntypedType:
		v.VisitUntyped(t)
	default:
		v.VisitUntyped(nil)
	}
}

// PrimitiveOf returns the primitive kind of a raw value.
func PrimitiveOf(v any) (Primitive, bool) {
	switch v.(type) {
	case bool:
		return Bool, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int, true
	case float32, float64:
		return Float, true
	case string:
		return Text, true
	case decimal.Decimal:
		return Decimal, true
	}
	return AnyPrimitive, false
}

// InferType returns a standard type for the primitive kind of v, or an
// untyped placeholder when v is not a primitive.
func InferType(v any) Type {
	if p, ok := PrimitiveOf(v); ok {
		return NewStandardType(p)
	}
	return NewUntypedType()
}

// EqualValues compares two values of the model.
func EqualValues(a, b any) bool {
	if da, ok := a.(decimal.Decimal); ok {
		db, ok := b.(decimal.Decimal)
		return ok && da.Equal(db)
	}
	return reflect.DeepEqual(a, b)
}

func typeDefault(t Type) any {
	if t == nil {
		return nil
	}
	return t.Default()
}

func typeText(t Type, v any) string {
	if t == nil {
		return formatValue(v)
	}
	return t.AsText(v)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case decimal.Decimal:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
