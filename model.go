package modelcheck

// Declaration describes how to interpret one field of a model. It is
// implemented by *Type, Tuple, Enum and Decl (also *Decl).
type Declaration interface {
	isDeclaration()
}

// Tuple is a fixed-length array declaration. Element i of the input is
// resolved against element i of the tuple; extra input elements are dropped.
type Tuple []Declaration

// Enum is a finite set of allowed values. Members are either literal values
// (string, number, bool) or *Type markers that accept any value coercible to
// that type.
type Enum []any

// Decl is the long form of a declaration.
type Decl struct {
	// Type is required. It is a short-form declaration, Array or Object.
	Type Declaration
	// Optional fields may be absent from the input.
	Optional bool
	// Default replaces an absent optional field. nil means no default.
	Default any
	// From is the external key of the field. Reverse validation writes to it.
	From string
	// Item describes elements when Type is Array.
	Item Declaration
	// Fields describes the nested object when Type is Object. A nil Fields
	// accepts any object verbatim.
	Fields Model
}

func (*Type) isDeclaration() {}
func (Tuple) isDeclaration() {}
func (Enum) isDeclaration()  {}
func (Decl) isDeclaration()  {}

// Field binds a declared key to its declaration.
type Field struct {
	Key  string
	Decl Declaration
}

// Model is an ordered list of declared fields. Fields are resolved in order.
type Model []Field

// Lookup returns the declaration for key.
func (m Model) Lookup(key string) (Declaration, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Decl, true
		}
	}
	return nil, false
}

// Keys returns the declared keys in declaration order.
func (m Model) Keys() []string {
	out := make([]string, 0, len(m))
	for _, f := range m {
		out = append(out, f.Key)
	}
	return out
}

// longForm normalizes a declaration into its long form. ok is false for
// short-form declarations.
func longForm(d Declaration) (Decl, bool) {
	switch t := d.(type) {
	case Decl:
		return t, true
	case *Decl:
		if t == nil {
			return Decl{}, false
		}
		return *t, true
	}
	return Decl{}, false
}
