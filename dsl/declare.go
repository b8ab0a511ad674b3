package dsl

import (
	"fmt"

	"github.com/reoring/modelcheck"
)

// DeclOpt modifies a long-form declaration.
type DeclOpt func(*modelcheck.Decl)

// Optional allows the field to be absent.
func Optional() DeclOpt { return func(d *modelcheck.Decl) { d.Optional = true } }

// Default makes the field optional and substitutes v when it is absent.
func Default(v any) DeclOpt {
	return func(d *modelcheck.Decl) {
		d.Optional = true
		d.Default = v
	}
}

// From sets the external key of the field.
func From(key string) DeclOpt { return func(d *modelcheck.Decl) { d.From = key } }

// Typed wraps a short-form declaration in long form.
func Typed(t modelcheck.Declaration, opts ...DeclOpt) (modelcheck.Decl, error) {
	switch tt := t.(type) {
	case nil:
		return modelcheck.Decl{}, modelcheck.NewDeclarationError("typed", "missing type")
	case *modelcheck.Type:
		if tt == nil {
			return modelcheck.Decl{}, modelcheck.NewDeclarationError("typed", "missing type")
		}
		if tt == modelcheck.Array {
			return modelcheck.Decl{}, modelcheck.NewDeclarationError("typed", "use ArrayOf for open arrays")
		}
	case modelcheck.Decl, *modelcheck.Decl:
		return modelcheck.Decl{}, modelcheck.NewDeclarationError("typed", "type is already a long-form declaration")
	}
	return apply(modelcheck.Decl{Type: t}, opts), nil
}

// ArrayOf declares an open array. item is either the element declaration or
// a Model, which declares an array of objects with those fields.
func ArrayOf(item any, opts ...DeclOpt) (modelcheck.Decl, error) {
	var it modelcheck.Declaration
	switch t := item.(type) {
	case modelcheck.Model:
		if t == nil {
			return modelcheck.Decl{}, modelcheck.NewDeclarationError("arrayOf", "missing item")
		}
		it = modelcheck.Decl{Type: modelcheck.Object, Fields: t}
	case modelcheck.Declaration:
		if isNilDecl(t) {
			return modelcheck.Decl{}, modelcheck.NewDeclarationError("arrayOf", "missing item")
		}
		it = t
	default:
		return modelcheck.Decl{}, modelcheck.NewDeclarationError("arrayOf", fmt.Sprintf("item must be a declaration or a model, got %T", item))
	}
	return apply(modelcheck.Decl{Type: modelcheck.Array, Item: it}, opts), nil
}

// ObjectOf declares a nested object with the given fields.
func ObjectOf(fields any, opts ...DeclOpt) (modelcheck.Decl, error) {
	m, ok := fields.(modelcheck.Model)
	if !ok || m == nil {
		return modelcheck.Decl{}, modelcheck.NewDeclarationError("objectOf", fmt.Sprintf("fields must be a model, got %T", fields))
	}
	return apply(modelcheck.Decl{Type: modelcheck.Object, Fields: m}, opts), nil
}

// MustTyped is like Typed but panics on error.
func MustTyped(t modelcheck.Declaration, opts ...DeclOpt) modelcheck.Decl {
	return must(Typed(t, opts...))
}

// MustArrayOf is like ArrayOf but panics on error.
func MustArrayOf(item any, opts ...DeclOpt) modelcheck.Decl { return must(ArrayOf(item, opts...)) }

// MustObjectOf is like ObjectOf but panics on error.
func MustObjectOf(fields any, opts ...DeclOpt) modelcheck.Decl {
	return must(ObjectOf(fields, opts...))
}

// OneOf declares an enum of literal values and *modelcheck.Type members.
func OneOf(members ...any) modelcheck.Enum { return modelcheck.Enum(members) }

// TupleOf declares a fixed-length array.
func TupleOf(elems ...modelcheck.Declaration) modelcheck.Tuple { return modelcheck.Tuple(elems) }

func apply(d modelcheck.Decl, opts []DeclOpt) modelcheck.Decl {
	for _, o := range opts {
		if o != nil {
			o(&d)
		}
	}
	return d
}

func must(d modelcheck.Decl, err error) modelcheck.Decl {
	if err != nil {
		panic(err)
	}
	return d
}

func isNilDecl(d modelcheck.Declaration) bool {
	switch t := d.(type) {
	case *modelcheck.Type:
		return t == nil
	case *modelcheck.Decl:
		return t == nil
	}
	return d == nil
}

// Model builds a model from alternating key and declaration arguments:
//
//	dsl.Model("id", modelcheck.Number, "name", modelcheck.String)
func Model(kv ...any) (modelcheck.Model, error) {
	if len(kv)%2 != 0 {
		return nil, modelcheck.NewDeclarationError("model", "odd number of arguments")
	}
	m := make(modelcheck.Model, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, modelcheck.NewDeclarationError("model", fmt.Sprintf("argument %d must be a key, got %T", i, kv[i]))
		}
		d, ok := kv[i+1].(modelcheck.Declaration)
		if !ok || isNilDecl(d) {
			return nil, modelcheck.NewDeclarationError("<object>."+key, fmt.Sprintf("missing declaration, got %T", kv[i+1]))
		}
		m = append(m, modelcheck.Field{Key: key, Decl: d})
	}
	return m, nil
}

// MustModel is like Model but panics on error.
func MustModel(kv ...any) modelcheck.Model {
	m, err := Model(kv...)
	if err != nil {
		panic(err)
	}
	return m
}
