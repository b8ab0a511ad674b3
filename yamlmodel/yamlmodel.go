// Package yamlmodel loads and writes modelcheck models as YAML documents.
//
// A document is a mapping from declared keys to declarations. Key order is
// preserved. Declarations take these forms:
//
//	id: uuid                      # short form: a type name
//	point: [number, number]       # short form: tuple
//	role: {enum: [admin, member, {type: number}]}
//	tags:                         # long form
//	  type: array
//	  item: string
//	  optional: true
//	  default: []
//	address:
//	  type: object
//	  from: postal_address
//	  fields:
//	    city: string
package yamlmodel

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/reoring/modelcheck"
)

// Builtins maps YAML type names to the built-in types.
var Builtins = map[string]*modelcheck.Type{
	"string":  modelcheck.String,
	"number":  modelcheck.Number,
	"bigint":  modelcheck.BigInt,
	"symbol":  modelcheck.Symbol,
	"boolean": modelcheck.Boolean,
	"date":    modelcheck.Date,
	"uuid":    modelcheck.UUID,
	"object":  modelcheck.Object,
	"array":   modelcheck.Array,
}

// Loader decodes models, resolving type names through Types and Builtins.
type Loader struct {
	// Types registers custom type names. They shadow Builtins.
	Types map[string]*modelcheck.Type
}

// Load decodes a model with the built-in types only.
func Load(data []byte) (modelcheck.Model, error) { return Loader{}.Load(data) }

// Load decodes the first YAML document of data into a model.
func (l Loader) Load(data []byte) (modelcheck.Model, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, modelcheck.NewDeclarationError("<object>", "empty model document")
		}
		return nil, fmt.Errorf("yamlmodel: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, modelcheck.NewDeclarationError("<object>", "empty model document")
	}
	return l.model(doc.Content[0], "<object>")
}

func (l Loader) model(n *yaml.Node, path string) (modelcheck.Model, error) {
	if n.Kind != yaml.MappingNode {
		return nil, declErr(path, n, "model must be a mapping")
	}
	m := make(modelcheck.Model, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		d, err := l.decl(n.Content[i+1], path+"."+key)
		if err != nil {
			return nil, err
		}
		m = append(m, modelcheck.Field{Key: key, Decl: d})
	}
	return m, nil
}

func (l Loader) decl(n *yaml.Node, path string) (modelcheck.Declaration, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return l.typeNamed(n, path)
	case yaml.SequenceNode:
		return l.tuple(n, path)
	case yaml.MappingNode:
		entries := mappingEntries(n)
		if en, ok := entries["enum"]; ok && len(entries) == 1 {
			return l.enum(en, path)
		}
		if tn, ok := entries["tuple"]; ok && len(entries) == 1 {
			return l.tuple(tn, path)
		}
		return l.long(entries, n, path)
	case yaml.AliasNode:
		return l.decl(n.Alias, path)
	}
	return nil, declErr(path, n, "unsupported declaration")
}

func (l Loader) long(entries map[string]*yaml.Node, n *yaml.Node, path string) (modelcheck.Declaration, error) {
	tn, ok := entries["type"]
	if !ok {
		return nil, declErr(path, n, "long-form declaration without type")
	}
	t, err := l.decl(tn, path)
	if err != nil {
		return nil, err
	}
	d := modelcheck.Decl{Type: t}
	for key, v := range entries {
		switch key {
		case "type":
		case "optional":
			if err := v.Decode(&d.Optional); err != nil {
				return nil, declErr(path, v, "optional must be a boolean")
			}
		case "default":
			var dv any
			if err := v.Decode(&dv); err != nil {
				return nil, declErr(path, v, err.Error())
			}
			d.Default = normalize(dv)
		case "from":
			if v.Kind != yaml.ScalarNode {
				return nil, declErr(path, v, "from must be a string")
			}
			d.From = v.Value
		case "item":
			if d.Item, err = l.decl(v, path+"[]"); err != nil {
				return nil, err
			}
		case "fields":
			if d.Fields, err = l.model(v, path); err != nil {
				return nil, err
			}
		default:
			return nil, declErr(path, v, "unknown declaration key "+strconv.Quote(key))
		}
	}
	return d, nil
}

func (l Loader) typeNamed(n *yaml.Node, path string) (*modelcheck.Type, error) {
	if t, ok := l.Types[n.Value]; ok {
		return t, nil
	}
	if t, ok := Builtins[n.Value]; ok {
		return t, nil
	}
	return nil, declErr(path, n, "unknown type "+strconv.Quote(n.Value))
}

func (l Loader) tuple(n *yaml.Node, path string) (modelcheck.Tuple, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, declErr(path, n, "tuple must be a sequence")
	}
	t := make(modelcheck.Tuple, 0, len(n.Content))
	for i, e := range n.Content {
		d, err := l.decl(e, path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		t = append(t, d)
	}
	return t, nil
}

// enum decodes members; scalars are literals and {type: name} mappings are
// type members.
func (l Loader) enum(n *yaml.Node, path string) (modelcheck.Enum, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, declErr(path, n, "enum must be a sequence")
	}
	e := make(modelcheck.Enum, 0, len(n.Content))
	for _, m := range n.Content {
		if m.Kind == yaml.MappingNode {
			tn, ok := mappingEntries(m)["type"]
			if !ok || tn.Kind != yaml.ScalarNode {
				return nil, declErr(path, m, "enum type member must be {type: name}")
			}
			t, err := l.typeNamed(tn, path)
			if err != nil {
				return nil, err
			}
			e = append(e, t)
			continue
		}
		var v any
		if err := m.Decode(&v); err != nil {
			return nil, declErr(path, m, err.Error())
		}
		e = append(e, normalize(v))
	}
	return e, nil
}

func mappingEntries(n *yaml.Node) map[string]*yaml.Node {
	out := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out[n.Content[i].Value] = n.Content[i+1]
	}
	return out
}

// normalize converts YAML integers to float64 and map[any]any to
// map[string]any so defaults look like decoded JSON.
func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	}
	return v
}

func declErr(path string, n *yaml.Node, reason string) error {
	return modelcheck.NewDeclarationError(path, fmt.Sprintf("line %d: %s", n.Line, reason))
}
