package modelcheck

import (
	"fmt"
	"strconv"
)

// nodeKind tags the resolution strategy of a compiled declaration.
type nodeKind int

const (
	nodePrimitive nodeKind = iota
	nodeTuple
	nodeOpenArray
	nodeEnum
	nodeNested
	nodeAnyObject
)

// node is a declaration whose shape was decided once by Compile.
type node struct {
	kind     nodeKind
	expected string // human readable type for diagnostics

	typ    *Type           // nodePrimitive
	elems  []*node         // nodeTuple
	item   *compiledField  // nodeOpenArray
	enum   Enum            // nodeEnum
	fields []compiledField // nodeNested
}

// compiledField carries presence policy and key mapping for one node.
type compiledField struct {
	key      string
	from     string
	optional bool
	def      any
	node     *node
}

// keys returns the key read from the input and the key written to the result.
func (f *compiledField) keys(dir Direction) (read, write string) {
	external := f.key
	if f.from != "" {
		external = f.from
	}
	if dir == Reverse {
		return f.key, external
	}
	return external, f.key
}

// Compiled is a validated model ready for repeated use. It is immutable and
// safe for concurrent use.
type Compiled struct {
	model  Model
	fields []compiledField
	opts   Options
}

// Model returns the model c was compiled from.
func (c *Compiled) Model() Model { return c.model }

// Compile checks every declaration of m and decides its resolution strategy.
// Malformed declarations fail with an ErrDeclaration issue.
func Compile(m Model, opts ...Option) (*Compiled, error) {
	if m == nil {
		return nil, argumentIssue(`First argument "model" must be Object`, nil)
	}
	o := buildOptions(opts)
	cc := compiler{maxDepth: o.MaxModelDepth}
	fields, err := cc.model(m, rootPath, 1)
	if err != nil {
		return nil, err
	}
	return &Compiled{model: m, fields: fields, opts: o}, nil
}

// MustCompile is like Compile but panics on error. It suits package-level models.
func MustCompile(m Model, opts ...Option) *Compiled {
	c, err := Compile(m, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

type compiler struct {
	maxDepth int
}

func (cc compiler) model(m Model, path string, depth int) ([]compiledField, error) {
	if depth > cc.maxDepth {
		return nil, declarationIssue(path, fmt.Sprintf("model nesting exceeds %d levels", cc.maxDepth))
	}
	seen := make(map[string]struct{}, len(m))
	out := make([]compiledField, 0, len(m))
	for _, f := range m {
		fp := path + "." + f.Key
		if _, dup := seen[f.Key]; dup {
			return nil, declarationIssue(fp, "duplicate key")
		}
		seen[f.Key] = struct{}{}
		cf, err := cc.field(f.Decl, fp, depth)
		if err != nil {
			return nil, err
		}
		cf.key = f.Key
		out = append(out, cf)
	}
	return out, nil
}

// field compiles d together with its long-form modifiers.
func (cc compiler) field(d Declaration, path string, depth int) (compiledField, error) {
	n, err := cc.node(d, path, depth)
	if err != nil {
		return compiledField{}, err
	}
	cf := compiledField{node: n}
	if ld, ok := longForm(d); ok {
		cf.optional = ld.Optional
		cf.def = ld.Default
		cf.from = ld.From
	}
	return cf, nil
}

func (cc compiler) node(d Declaration, path string, depth int) (*node, error) {
	switch t := d.(type) {
	case nil:
		return nil, declarationIssue(path, "missing declaration")
	case *Type:
		return cc.short(t, path)
	case Tuple:
		return cc.tuple(t, path, depth)
	case Enum:
		return cc.enum(t, path)
	case *Decl:
		if t == nil {
			return nil, declarationIssue(path, "missing declaration")
		}
		return cc.long(*t, path, depth)
	case Decl:
		return cc.long(t, path, depth)
	}
	return nil, declarationIssue(path, fmt.Sprintf("unsupported declaration %T", d))
}

func (cc compiler) short(t *Type, path string) (*node, error) {
	if t == nil {
		return nil, declarationIssue(path, "missing type")
	}
	if t.kind == KindArray {
		return nil, declarationIssue(path, "open array requires an item declaration")
	}
	if t.kind == KindCustom && t.ctor == nil {
		return nil, declarationIssue(path, "type "+t.name+" has no constructor")
	}
	return &node{kind: nodePrimitive, typ: t, expected: t.Name()}, nil
}

func (cc compiler) tuple(t Tuple, path string, depth int) (*node, error) {
	if depth+1 > cc.maxDepth {
		return nil, declarationIssue(path, fmt.Sprintf("model nesting exceeds %d levels", cc.maxDepth))
	}
	n := &node{kind: nodeTuple, expected: describeDecl(t), elems: make([]*node, len(t))}
	for i, e := range t {
		en, err := cc.node(e, path+"["+strconv.Itoa(i)+"]", depth+1)
		if err != nil {
			return nil, err
		}
		n.elems[i] = en
	}
	return n, nil
}

func (cc compiler) enum(t Enum, path string) (*node, error) {
	for i, m := range t {
		switch mv := m.(type) {
		case *Type:
			if mv == nil || mv.kind == KindArray {
				return nil, declarationIssue(path, fmt.Sprintf("enum member %d is not a usable type", i))
			}
		case nil, string, bool:
		default:
			if !isNumeric(m) && !isJSONNumber(m) {
				return nil, declarationIssue(path, fmt.Sprintf("enum member %d has unsupported literal %T", i, m))
			}
		}
	}
	return &node{kind: nodeEnum, enum: t, expected: describeDecl(t)}, nil
}

func (cc compiler) long(ld Decl, path string, depth int) (*node, error) {
	switch t := ld.Type.(type) {
	case nil:
		return nil, declarationIssue(path, "long-form declaration without type")
	case Decl, *Decl:
		return nil, declarationIssue(path, "long-form type must be a short-form declaration")
	case *Type:
		if t == nil {
			return nil, declarationIssue(path, "long-form declaration without type")
		}
		switch t.kind {
		case KindArray:
			if ld.Item == nil {
				return nil, declarationIssue(path, "open array requires an item declaration")
			}
			if depth+1 > cc.maxDepth {
				return nil, declarationIssue(path, fmt.Sprintf("model nesting exceeds %d levels", cc.maxDepth))
			}
			item, err := cc.field(ld.Item, path+"[]", depth+1)
			if err != nil {
				return nil, err
			}
			return &node{kind: nodeOpenArray, item: &item, expected: describeDecl(ld)}, nil
		case KindObject:
			if ld.Fields == nil {
				return &node{kind: nodeAnyObject, expected: t.Name()}, nil
			}
			fields, err := cc.model(ld.Fields, path, depth+1)
			if err != nil {
				return nil, err
			}
			return &node{kind: nodeNested, fields: fields, expected: t.Name()}, nil
		}
	}
	return cc.node(ld.Type, path, depth)
}
