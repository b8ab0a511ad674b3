package yamlmodel

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/reoring/modelcheck"
)

// Marshal writes m as YAML using the built-in type names.
func Marshal(m modelcheck.Model) ([]byte, error) { return Loader{}.Marshal(m) }

// Marshal writes m as YAML. Output loads back into an equivalent model with
// the same Loader.
func (l Loader) Marshal(m modelcheck.Model) ([]byte, error) {
	names := make(map[*modelcheck.Type]string, len(Builtins)+len(l.Types))
	for n, t := range Builtins {
		names[t] = n
	}
	for n, t := range l.Types {
		names[t] = n
	}
	root, err := marshalModel(m, names)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalModel(m modelcheck.Model, names map[*modelcheck.Type]string) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range m {
		v, err := marshalDecl(f.Decl, names)
		if err != nil {
			return nil, fmt.Errorf("yamlmodel: field %q: %w", f.Key, err)
		}
		n.Content = append(n.Content, scalar(f.Key), v)
	}
	return n, nil
}

func marshalDecl(d modelcheck.Declaration, names map[*modelcheck.Type]string) (*yaml.Node, error) {
	switch t := d.(type) {
	case *modelcheck.Type:
		return typeNode(t, names)
	case modelcheck.Tuple:
		n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, e := range t {
			en, err := marshalDecl(e, names)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, en)
		}
		return n, nil
	case modelcheck.Enum:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, member := range t {
			if mt, ok := member.(*modelcheck.Type); ok {
				tn, err := typeNode(mt, names)
				if err != nil {
					return nil, err
				}
				seq.Content = append(seq.Content, &yaml.Node{
					Kind:    yaml.MappingNode,
					Style:   yaml.FlowStyle,
					Content: []*yaml.Node{scalar("type"), tn},
				})
				continue
			}
			var mn yaml.Node
			if err := mn.Encode(member); err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, &mn)
		}
		return &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle, Content: []*yaml.Node{scalar("enum"), seq}}, nil
	case *modelcheck.Decl:
		if t == nil {
			return nil, fmt.Errorf("nil declaration")
		}
		return marshalLong(*t, names)
	case modelcheck.Decl:
		return marshalLong(t, names)
	}
	return nil, fmt.Errorf("unsupported declaration %T", d)
}

func marshalLong(d modelcheck.Decl, names map[*modelcheck.Type]string) (*yaml.Node, error) {
	tn, err := marshalDecl(d.Type, names)
	if err != nil {
		return nil, err
	}
	n := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{scalar("type"), tn}}
	if d.Optional {
		n.Content = append(n.Content, scalar("optional"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	}
	if d.Default != nil {
		var dn yaml.Node
		if err := dn.Encode(d.Default); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, scalar("default"), &dn)
	}
	if d.From != "" {
		n.Content = append(n.Content, scalar("from"), scalar(d.From))
	}
	if d.Item != nil {
		in, err := marshalDecl(d.Item, names)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, scalar("item"), in)
	}
	if d.Fields != nil {
		fn, err := marshalModel(d.Fields, names)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, scalar("fields"), fn)
	}
	return n, nil
}

func typeNode(t *modelcheck.Type, names map[*modelcheck.Type]string) (*yaml.Node, error) {
	name, ok := names[t]
	if !ok {
		return nil, fmt.Errorf("type %s has no registered name", t.Name())
	}
	return scalar(name), nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
