// Package dsl provides builders for modelcheck models.
//
// Overview
//   - Typed/ArrayOf/ObjectOf: long-form declarations with options (Optional, Default, From).
//   - Object(): a chaining model builder; Field(...) followed by per-field modifiers, then Build/MustBuild.
//   - OneOf/TupleOf: short-form enum and tuple declarations.
//
// Builders validate their arguments and fail with an error matching
// modelcheck.ErrDeclaration instead of deferring the problem to validation.
//
// Example
//
//	user := dsl.Object().
//	    Field("id", modelcheck.UUID).
//	    Field("displayName", modelcheck.String).From("display_name").
//	    Field("tags", dsl.MustArrayOf(modelcheck.String)).Optional().Default([]any{}).
//	    Field("role", dsl.OneOf("admin", "member")).
//	    MustBuild()
//
//	out, err := modelcheck.Validate(ctx, user, payload)
package dsl
