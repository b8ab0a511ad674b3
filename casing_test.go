package modelcheck_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mc "github.com/reoring/modelcheck"
)

var sameType = cmp.Comparer(func(a, b *mc.Type) bool { return a == b })

func diffModel(t *testing.T, want, got mc.Model) {
	t.Helper()
	if diff := cmp.Diff(want, got, sameType); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestToSnakeCaseModel_Short(t *testing.T) {
	got := mc.ToSnakeCaseModel(mc.Model{
		{Key: "fieldOne", Decl: mc.String},
		{Key: "field1One10", Decl: mc.Number},
		{Key: "fieldONETwo", Decl: mc.String},
		{Key: "FIELD_TWO_ONE", Decl: mc.Number},
	})
	diffModel(t, mc.Model{
		{Key: "fieldOne", Decl: mc.Decl{Type: mc.String, From: "field_one"}},
		{Key: "field1One10", Decl: mc.Decl{Type: mc.Number, From: "field_1_one_10"}},
		{Key: "fieldONETwo", Decl: mc.Decl{Type: mc.String, From: "field_one_two"}},
		{Key: "FIELD_TWO_ONE", Decl: mc.Decl{Type: mc.Number, From: "field_two_one"}},
	}, got)
}

func TestToSnakeCaseModel_NoEffects(t *testing.T) {
	m := mc.Model{{Key: "field_1", Decl: mc.String}, {Key: "field_2", Decl: mc.Number}}
	diffModel(t, m, mc.ToSnakeCaseModel(m))
}

func TestToSnakeCaseModel_DifferentTypes(t *testing.T) {
	got := mc.ToSnakeCaseModel(mc.Model{
		{Key: "field1", Decl: mc.Tuple{mc.String, mc.Number}},
		{Key: "field2", Decl: mc.Enum{"some_string", 123}},
		{Key: "field3", Decl: mc.Decl{Type: mc.String, Optional: true}},
		{Key: "field4", Decl: mc.Decl{Type: mc.Array, Item: mc.String}},
		{Key: "field5", Decl: mc.Decl{Type: mc.Object}},
	})
	diffModel(t, mc.Model{
		{Key: "field1", Decl: mc.Decl{Type: mc.Tuple{mc.String, mc.Number}, From: "field_1"}},
		{Key: "field2", Decl: mc.Decl{Type: mc.Enum{"some_string", 123}, From: "field_2"}},
		{Key: "field3", Decl: mc.Decl{Type: mc.String, Optional: true, From: "field_3"}},
		{Key: "field4", Decl: mc.Decl{Type: mc.Array, Item: mc.String, From: "field_4"}},
		{Key: "field5", Decl: mc.Decl{Type: mc.Object, From: "field_5"}},
	}, got)
}

func TestToSnakeCaseModel_NestedObjectsInArrays(t *testing.T) {
	got := mc.ToSnakeCaseModel(mc.Model{
		{Key: "field1", Decl: mc.Decl{Type: mc.Array, Item: mc.Decl{Type: mc.Object, Fields: mc.Model{
			{Key: "field11", Decl: mc.String},
			{Key: "field12", Decl: mc.Decl{Type: mc.Object, Fields: mc.Model{
				{Key: "field121", Decl: mc.Number},
			}}},
		}}}},
	})
	diffModel(t, mc.Model{
		{Key: "field1", Decl: mc.Decl{Type: mc.Array, From: "field_1", Item: mc.Decl{Type: mc.Object, Fields: mc.Model{
			{Key: "field11", Decl: mc.Decl{Type: mc.String, From: "field_11"}},
			{Key: "field12", Decl: mc.Decl{Type: mc.Object, From: "field_12", Fields: mc.Model{
				{Key: "field121", Decl: mc.Decl{Type: mc.Number, From: "field_121"}},
			}}},
		}}}},
	}, got)
}

func TestToCamelCaseModel(t *testing.T) {
	got := mc.ToCamelCaseModel(mc.Model{
		{Key: "field_one", Decl: mc.String},
		{Key: "field_1_one_10", Decl: &mc.Decl{Type: mc.Number, Optional: true}},
		{Key: "plain", Decl: mc.Boolean},
	})
	diffModel(t, mc.Model{
		{Key: "field_one", Decl: mc.Decl{Type: mc.String, From: "fieldOne"}},
		{Key: "field_1_one_10", Decl: mc.Decl{Type: mc.Number, Optional: true, From: "field1One10"}},
		{Key: "plain", Decl: mc.Boolean},
	}, got)
}

func TestToCamelCaseModel_AfterSnake(t *testing.T) {
	m := mc.Model{
		{Key: "fieldOne", Decl: mc.String},
		{Key: "field1One10", Decl: mc.Decl{Type: mc.Number, Optional: true}},
		{Key: "homeAddress", Decl: mc.Decl{Type: mc.Object, Fields: mc.Model{
			{Key: "zipCode", Decl: mc.Number},
		}}},
		{Key: "plain", Decl: mc.Boolean},
	}

	// camelCase keys survive the camel pass, so the snake From is kept
	got := mc.ToCamelCaseModel(mc.ToSnakeCaseModel(m))
	diffModel(t, mc.Model{
		{Key: "fieldOne", Decl: mc.Decl{Type: mc.String, From: "field_one"}},
		{Key: "field1One10", Decl: mc.Decl{Type: mc.Number, Optional: true, From: "field_1_one_10"}},
		{Key: "homeAddress", Decl: mc.Decl{Type: mc.Object, From: "home_address", Fields: mc.Model{
			{Key: "zipCode", Decl: mc.Decl{Type: mc.Number, From: "zip_code"}},
		}}},
		{Key: "plain", Decl: mc.Boolean},
	}, got)
	assert.Equal(t, m.Keys(), got.Keys())
	diffModel(t, mc.ToSnakeCaseModel(m), got)
}

func TestRewriteKeys_InputUntouched(t *testing.T) {
	inner := mc.Model{{Key: "zipCode", Decl: mc.String}}
	m := mc.Model{{Key: "postalAddress", Decl: mc.Decl{Type: mc.Object, Fields: inner}}}

	_ = mc.ToSnakeCaseModel(m)
	diffModel(t, mc.Model{{Key: "postalAddress", Decl: mc.Decl{Type: mc.Object, Fields: mc.Model{{Key: "zipCode", Decl: mc.String}}}}}, m)
	assert.Nil(t, mc.RewriteKeys(nil, func(s string) string { return s }))
}

func TestToSnakeCaseModel_ValidatesSnakeInput(t *testing.T) {
	m := mc.ToSnakeCaseModel(mc.Model{
		{Key: "userName", Decl: mc.String},
		{Key: "homeAddress", Decl: mc.Decl{Type: mc.Object, Fields: mc.Model{{Key: "zipCode", Decl: mc.Number}}}},
	})
	ctx := context.Background()

	out, err := mc.Validate(ctx, m, map[string]any{
		"user_name":    "ann",
		"home_address": map[string]any{"zip_code": "100"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"userName":    "ann",
		"homeAddress": map[string]any{"zipCode": float64(100)},
	}, out)

	back, err := mc.ReverseValidate(ctx, m, out)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"user_name":    "ann",
		"home_address": map[string]any{"zip_code": float64(100)},
	}, back)
}
