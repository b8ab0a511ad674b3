package dsl

import (
	"github.com/reoring/modelcheck"
)

// ObjectBuilder accumulates an ordered model.
type ObjectBuilder struct {
	model modelcheck.Model
}

// FieldStep modifies the field added last.
type FieldStep struct {
	b   *ObjectBuilder
	idx int
}

// Object creates a new model builder.
func Object() *ObjectBuilder { return &ObjectBuilder{model: modelcheck.Model{}} }

// Field appends a field. Keys keep their insertion order.
func (b *ObjectBuilder) Field(key string, d modelcheck.Declaration) *FieldStep {
	b.model = append(b.model, modelcheck.Field{Key: key, Decl: d})
	return &FieldStep{b: b, idx: len(b.model) - 1}
}

// Build compiles the model to surface declaration errors and returns it.
func (b *ObjectBuilder) Build() (modelcheck.Model, error) {
	if _, err := modelcheck.Compile(b.model); err != nil {
		return nil, err
	}
	return b.model, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder) MustBuild() modelcheck.Model {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

// Optional marks the current field optional.
func (f *FieldStep) Optional() *FieldStep { return f.modify(Optional()) }

// Default marks the current field optional with a default value.
func (f *FieldStep) Default(v any) *FieldStep { return f.modify(Default(v)) }

// From sets the external key of the current field.
func (f *FieldStep) From(key string) *FieldStep { return f.modify(From(key)) }

func (f *FieldStep) Field(key string, d modelcheck.Declaration) *FieldStep {
	return f.b.Field(key, d)
}
func (f *FieldStep) Build() (modelcheck.Model, error) { return f.b.Build() }
func (f *FieldStep) MustBuild() modelcheck.Model      { return f.b.MustBuild() }

// modify promotes a short-form declaration to long form before applying opt.
func (f *FieldStep) modify(opt DeclOpt) *FieldStep {
	fd := &f.b.model[f.idx]
	var d modelcheck.Decl
	switch t := fd.Decl.(type) {
	case modelcheck.Decl:
		d = t
	case *modelcheck.Decl:
		if t != nil {
			d = *t
		}
	default:
		d = modelcheck.Decl{Type: t}
	}
	opt(&d)
	fd.Decl = d
	return f
}
