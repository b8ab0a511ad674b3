package modelcheck

import "github.com/reoring/modelcheck/internal/naming"

// RewriteKeys returns a sibling model whose declarations read each field from
// rename(key). Declared keys are unchanged. A short-form declaration becomes
// long form only when the renamed key differs; long-form declarations are
// shallow-copied with From overwritten and their Item and Fields rewritten
// recursively. The input model is not modified.
func RewriteKeys(m Model, rename func(key string) string) Model {
	if m == nil {
		return nil
	}
	out := make(Model, len(m))
	for i, f := range m {
		out[i] = Field{Key: f.Key, Decl: rewriteDecl(f.Decl, f.Key, rename(f.Key), rename)}
	}
	return out
}

// ToSnakeCaseModel rewrites a camelCase model to read snake_case input keys.
func ToSnakeCaseModel(m Model) Model { return RewriteKeys(m, naming.ToSnakeCase) }

// ToCamelCaseModel rewrites a snake_case model to read camelCase input keys.
func ToCamelCaseModel(m Model) Model { return RewriteKeys(m, naming.ToCamelCase) }

func rewriteDecl(d Declaration, key, newKey string, rename func(string) string) Declaration {
	ld, ok := longForm(d)
	if !ok {
		if newKey == key {
			return d
		}
		return Decl{Type: d, From: newKey}
	}
	if newKey != key {
		ld.From = newKey
	}
	if ld.Item != nil {
		// items are not keyed
		ld.Item = rewriteDecl(ld.Item, "", "", rename)
	}
	if ld.Fields != nil {
		ld.Fields = RewriteKeys(ld.Fields, rename)
	}
	return ld
}
