package modelcheck

// resolveTuple resolves element i of raw against element i of the tuple.
// Extra trailing input elements are dropped; missing elements are required.
func (w walker) resolveTuple(raw any, n *node, pc pathCtx) ([]any, error) {
	list, ok := asList(raw)
	if !ok {
		return nil, typeIssue(pc, n.expected, raw, nil)
	}
	out := make([]any, len(n.elems))
	for i, en := range n.elems {
		ipc := pc.index(i)
		var ev any
		if i < len(list) {
			ev = list[i]
		}
		if ev == nil {
			return nil, missingIssue(ipc, en.expected)
		}
		v, err := w.resolveNode(ev, en, ipc)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// resolveOpenArray resolves every element of raw against the item
// declaration. An absent optional item without default keeps its position as nil.
func (w walker) resolveOpenArray(raw any, n *node, pc pathCtx) ([]any, error) {
	list, ok := asList(raw)
	if !ok {
		return nil, typeIssue(pc, n.expected, raw, nil)
	}
	out := make([]any, len(list))
	for i, ev := range list {
		v, _, err := w.resolveField(ev, n.item, pc.index(i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
