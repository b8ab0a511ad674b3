package modelcheck

import "reflect"

// walker resolves compiled models against raw data trees. A walker carries no
// per-call state beyond its configuration.
type walker struct {
	dir Direction
	log Logger
}

// walkObject resolves every declared field of fields against raw, in
// declaration order. Keys of raw that are not declared are dropped.
func (w walker) walkObject(fields []compiledField, raw map[string]any, pc pathCtx) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for i := range fields {
		f := &fields[i]
		readKey, writeKey := f.keys(w.dir)
		v, ok, err := w.resolveField(raw[readKey], f, pc.key(f.key, readKey))
		if err != nil {
			return nil, err
		}
		if ok {
			out[writeKey] = v
		}
	}
	return out, nil
}

// resolveField applies presence policy and then resolves raw against f.node.
// ok is false when an optional field without default is absent.
func (w walker) resolveField(raw any, f *compiledField, pc pathCtx) (v any, ok bool, err error) {
	if raw == nil {
		switch {
		case !f.optional:
			return nil, false, missingIssue(pc, f.node.expected)
		case f.def == nil:
			w.log.Debug("optional field absent", "path", pc.declared)
			return nil, false, nil
		}
		w.log.Debug("default applied", "path", pc.declared)
		raw = f.def
	}
	v, err = w.resolveNode(raw, f.node, pc)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (w walker) resolveNode(raw any, n *node, pc pathCtx) (any, error) {
	switch n.kind {
	case nodePrimitive:
		v, err := coerce(raw, n.typ)
		if err != nil {
			return nil, typeIssue(pc, n.typ.Name(), raw, err)
		}
		return v, nil
	case nodeTuple:
		return w.resolveTuple(raw, n, pc)
	case nodeOpenArray:
		return w.resolveOpenArray(raw, n, pc)
	case nodeEnum:
		return resolveEnum(raw, n.enum, pc)
	case nodeNested:
		obj, ok := asObject(raw)
		if !ok {
			return nil, typeIssue(pc, n.expected, raw, nil)
		}
		return w.walkObject(n.fields, obj, pc)
	case nodeAnyObject:
		obj, ok := asObject(raw)
		if !ok {
			return nil, typeIssue(pc, n.expected, raw, nil)
		}
		return cloneValue(obj), nil
	}
	return nil, declarationIssue(pc.declared, "unknown node")
}

// asObject accepts map[string]any and any other map keyed by strings.
func asObject(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// asList accepts []any and any other slice or array.
func asList(v any) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		// []byte is text, not a list
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
