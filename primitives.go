package modelcheck

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind identifies how a *Type converts raw values.
type Kind int

const (
	KindCustom Kind = iota
	KindString
	KindNumber
	KindBigInt
	KindSymbol
	KindBoolean
	KindObject
	KindArray
)

// Type is a constructible type. Built-in scalar kinds use a fixed conversion
// table; custom types call their constructor.
type Type struct {
	name string
	kind Kind
	ctor func(v any) (any, error)
}

// Name returns the type name used in diagnostics.
func (t *Type) Name() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

// Kind reports the conversion kind of t.
func (t *Type) Kind() Kind { return t.kind }

func (t *Type) String() string { return t.Name() }

// NewType returns a custom type. ctor receives the raw value and returns the
// constructed value or an error; panics inside ctor are reported as coercion
// errors too.
func NewType(name string, ctor func(v any) (any, error)) *Type {
	return &Type{name: name, kind: KindCustom, ctor: ctor}
}

// Built-in types.
var (
	String  = &Type{name: "String", kind: KindString}
	Number  = &Type{name: "Number", kind: KindNumber}
	BigInt  = &Type{name: "BigInt", kind: KindBigInt}
	Symbol  = &Type{name: "Symbol", kind: KindSymbol}
	Boolean = &Type{name: "Boolean", kind: KindBoolean}

	// Object passes values through unchanged in short form. In long form it
	// introduces a nested model via Decl.Fields.
	Object = &Type{name: "Object", kind: KindObject}
	// Array is only valid as Decl.Type together with Decl.Item.
	Array = &Type{name: "Array", kind: KindArray}

	// Date constructs a UTC time.Time from RFC3339 text, a date, or epoch
	// milliseconds.
	Date = NewType("Date", newDate)
	// UUID constructs a uuid.UUID from its textual form.
	UUID = NewType("UUID", newUUID)
)

// Sym is the value produced by the Symbol type. Every conversion yields a
// distinct *Sym.
type Sym struct {
	Description string
}

func (s *Sym) String() string { return "Symbol(" + s.Description + ")" }

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func newDate(v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts.UTC(), nil
			}
		}
		return nil, fmt.Errorf("invalid date %q", t)
	}
	if isNumeric(v) {
		f := toFloat(v)
		if f != f || f > maxDateMillis || f < -maxDateMillis {
			return nil, fmt.Errorf("invalid date %v", v)
		}
		return time.UnixMilli(int64(f)).UTC(), nil
	}
	return nil, fmt.Errorf("cannot construct date from %T", v)
}

// maxDateMillis is the ECMAScript time value range.
const maxDateMillis = 8.64e15

func newUUID(v any) (any, error) {
	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		return uuid.Parse(t)
	case []byte:
		return uuid.ParseBytes(t)
	}
	return nil, fmt.Errorf("cannot construct uuid from %T", v)
}
