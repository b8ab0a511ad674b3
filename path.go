package modelcheck

import "strconv"

// rootPath names the top-level object in diagnostics.
const rootPath = "<object>"

// pathCtx is the traversal context: the declared key chain and the key chain
// read from the input. It is passed by value and extended per descent.
type pathCtx struct {
	declared string
	source   string
}

func rootCtx() pathCtx { return pathCtx{declared: rootPath, source: rootPath} }

func (p pathCtx) key(declared, source string) pathCtx {
	return pathCtx{declared: p.declared + "." + declared, source: p.source + "." + source}
}

func (p pathCtx) index(i int) pathCtx {
	s := "[" + strconv.Itoa(i) + "]"
	return pathCtx{declared: p.declared + s, source: p.source + s}
}

// messageData merges path information into translator data. The source path
// is only mentioned when a rename made it differ.
func (p pathCtx) messageData(extra map[string]string) map[string]string {
	data := map[string]string{"path": p.declared}
	if p.source != p.declared {
		data["source"] = p.source
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
