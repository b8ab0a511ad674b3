// Package modelcheck validates and coerces loosely typed data against a
// declarative model.
//
// - A Model is an ordered list of fields; each field has a Declaration: a *Type,
//   a Tuple, an Enum or a long-form Decl (optional, default, from, item, fields).
// - Validation returns a fresh object holding only declared keys, with every value
//   converted to its declared type. Undeclared input keys are dropped.
// - Fields can be read from a different input key (Decl.From). ReverseValidate maps
//   an internal object back to its external keys.
// - ToSnakeCaseModel/ToCamelCaseModel derive models that read differently cased input.
// - Errors are a single *Issue carrying a code, the declared and source paths, and
//   a localized message; match them with errors.Is against the Err* sentinels.
//
// Design policy:
// - Keep only public APIs in the root package; put token decoding under internal/.
// - Place builders under dsl/, YAML model files under yamlmodel/, JSON drivers under
//   source/, and the CLI under cmd/modelcheck.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	c := modelcheck.MustCompile(modelcheck.Model{
//	    {Key: "id", Decl: modelcheck.UUID},
//	    {Key: "name", Decl: modelcheck.Decl{Type: modelcheck.String, From: "user_name"}},
//	})
//	out, err := c.ValidateText(ctx, body)
//	wire, err := c.Reverse(ctx, out)
package modelcheck
