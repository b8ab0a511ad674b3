package modelcheck_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mc "github.com/reoring/modelcheck"
)

func TestValidate_DropsUndeclaredKeys(t *testing.T) {
	m := mc.Model{{Key: "a", Decl: mc.Number}}

	out, err := mc.Validate(context.Background(), m, map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, out)
}

func TestValidate_RequiredFieldMissing(t *testing.T) {
	m := mc.Model{{Key: "a", Decl: mc.String}}

	for name, data := range map[string]map[string]any{
		"absent": {},
		"null":   {"a": nil},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := mc.Validate(context.Background(), m, data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, mc.ErrFieldMissing))
			iss, ok := mc.AsIssue(err)
			require.True(t, ok)
			assert.Equal(t, "<object>.a", iss.Path)
			assert.Equal(t, "String", iss.Expected)
			assert.Equal(t, "Field <object>.a not exists in provided data. Expecting type: String", iss.Message)
		})
	}
}

func TestValidate_OptionalDefault(t *testing.T) {
	m := mc.Model{{Key: "a", Decl: mc.Decl{Type: mc.Number, Optional: true, Default: "5"}}}

	out, err := mc.Validate(context.Background(), m, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(5)}, out, "default goes through conversion")

	out, err = mc.Validate(context.Background(), m, map[string]any{"a": 9})
	require.NoError(t, err)
	assert.Equal(t, float64(9), out["a"])
}

func TestValidate_OptionalOmitted(t *testing.T) {
	m := mc.Model{{Key: "a", Decl: mc.Decl{Type: mc.Number, Optional: true}}}

	out, err := mc.Validate(context.Background(), m, map[string]any{"a": nil})
	require.NoError(t, err)
	assert.NotContains(t, out, "a")
	assert.Empty(t, out)
}

func TestValidate_RenameRoundTrip(t *testing.T) {
	m := mc.Model{
		{Key: "firstName", Decl: mc.Decl{Type: mc.String, From: "first_name"}},
		{Key: "age", Decl: mc.Number},
	}
	ctx := context.Background()

	internal, err := mc.Validate(ctx, m, map[string]any{"first_name": "Ann", "age": "41", "firstName": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"firstName": "Ann", "age": float64(41)}, internal)

	external, err := mc.ReverseValidate(ctx, m, internal)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"first_name": "Ann", "age": float64(41)}, external)

	again, err := mc.Validate(ctx, m, external)
	require.NoError(t, err)
	assert.Equal(t, internal, again)
}

func TestValidate_RenamedPathInMessage(t *testing.T) {
	m := mc.Model{{Key: "a", Decl: mc.Decl{Type: mc.Number, From: "b"}}}

	_, err := mc.Validate(context.Background(), m, map[string]any{"b": "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mc.ErrTypeCoercion))
	assert.EqualError(t, err, `Field <object>.a searched in <object>.b doesn't match type in declared model. Expected type: Number. Gotten: "x"`)

	iss, _ := mc.AsIssue(err)
	assert.Equal(t, "<object>.a", iss.Path)
	assert.Equal(t, "<object>.b", iss.SourcePath)
	assert.Equal(t, "x", iss.Got)
}

func TestValidate_TupleTruncation(t *testing.T) {
	m := mc.Model{{Key: "p", Decl: mc.Tuple{mc.Number, mc.String}}}

	out, err := mc.Validate(context.Background(), m, map[string]any{"p": []any{"1", 2, true, "extra"}})
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), "2"}, out["p"])

	_, err = mc.Validate(context.Background(), m, map[string]any{"p": []any{1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mc.ErrFieldMissing))
	iss, _ := mc.AsIssue(err)
	assert.Equal(t, "<object>.p[1]", iss.Path)

	_, err = mc.Validate(context.Background(), m, map[string]any{"p": "1,2"})
	assert.True(t, errors.Is(err, mc.ErrTypeCoercion), "tuples require a list")
}

func TestValidate_OpenArray(t *testing.T) {
	m := mc.Model{{Key: "tags", Decl: mc.Decl{Type: mc.Array, Item: mc.String}}}

	out, err := mc.Validate(context.Background(), m, map[string]any{"tags": []int{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, []any{"1", "2"}, out["tags"])

	_, err = mc.Validate(context.Background(), m, map[string]any{"tags": []any{"a", nil}})
	require.Error(t, err)
	iss, _ := mc.AsIssue(err)
	assert.Equal(t, "<object>.tags[1]", iss.Path)

	holes := mc.Model{{Key: "tags", Decl: mc.Decl{Type: mc.Array, Item: mc.Decl{Type: mc.String, Optional: true}}}}
	out, err = mc.Validate(context.Background(), holes, map[string]any{"tags": []any{"a", nil, 3}})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", nil, "3"}, out["tags"])
}

func TestValidate_EnumDualResolution(t *testing.T) {
	m := mc.Model{{Key: "v", Decl: mc.Enum{"a", 5, mc.Number}}}
	ctx := context.Background()

	cases := []struct {
		in   any
		want any
	}{
		{in: "a", want: "a"},
		{in: 5, want: 5},
		{in: "5", want: float64(5)},
		{in: 12.5, want: 12.5},
	}
	for _, tc := range cases {
		out, err := mc.Validate(ctx, m, map[string]any{"v": tc.in})
		require.NoError(t, err, "input %#v", tc.in)
		assert.Equal(t, tc.want, out["v"], "input %#v", tc.in)
	}

	_, err := mc.Validate(ctx, m, map[string]any{"v": "7"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mc.ErrEnum))
	iss, _ := mc.AsIssue(err)
	assert.Equal(t, []any{"a", 5, mc.Number}, iss.Allowed)
	assert.Equal(t, `Field <object>.v value not allowed in Enum. Allowed one of this values: ["a",5,"Number"]. Gotten: "7"`, iss.Message)

	// only string input may coerce onto a literal member of another kind
	for _, in := range []any{true, false} {
		_, err = mc.Validate(ctx, mc.Model{{Key: "v", Decl: mc.Enum{1, mc.Number}}}, map[string]any{"v": in})
		assert.True(t, errors.Is(err, mc.ErrEnum), "input %v", in)
	}
	out, err := mc.Validate(ctx, mc.Model{{Key: "v", Decl: mc.Enum{1, mc.Number}}}, map[string]any{"v": "1"})
	require.NoError(t, err)
	assert.Equal(t, float64(1), out["v"])
}

func TestValidate_NaNPolicy(t *testing.T) {
	m := mc.Model{{Key: "n", Decl: mc.Number}}
	ctx := context.Background()

	_, err := mc.Validate(ctx, m, map[string]any{"n": "abc"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mc.ErrTypeCoercion))

	out, err := mc.Validate(ctx, m, map[string]any{"n": math.NaN()})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out["n"].(float64)))
}

func TestValidate_NestedModel(t *testing.T) {
	m := mc.Model{
		{Key: "user", Decl: mc.Decl{Type: mc.Object, Fields: mc.Model{
			{Key: "name", Decl: mc.String},
			{Key: "roles", Decl: mc.Decl{Type: mc.Array, Item: mc.Decl{Type: mc.Object, Fields: mc.Model{
				{Key: "id", Decl: mc.Number},
			}}}},
		}}},
		{Key: "meta", Decl: mc.Object},
	}
	data := map[string]any{
		"user": map[string]any{
			"name":  "Ann",
			"extra": 1,
			"roles": []any{map[string]any{"id": "1", "x": 2}},
		},
		"meta": map[string]any{"k": []any{1}},
	}

	out, err := mc.Validate(context.Background(), m, data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"user": map[string]any{
			"name":  "Ann",
			"roles": []any{map[string]any{"id": float64(1)}},
		},
		"meta": map[string]any{"k": []any{1}},
	}, out)

	// result never aliases input
	out["meta"].(map[string]any)["k"].([]any)[0] = 2
	assert.Equal(t, 1, data["meta"].(map[string]any)["k"].([]any)[0])

	type labels map[string]string
	typed := map[string]any{
		"user": map[string]any{"name": "Ann", "roles": []any{}},
		"meta": map[string]any{"l": labels{"k": "v"}, "ids": [2]int{1, 2}},
		"tags": []string{"a"},
	}
	withTags := append(mc.Model{{Key: "tags", Decl: mc.Object}}, m...)
	out, err = mc.Validate(context.Background(), withTags, typed)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"l": map[string]any{"k": "v"}, "ids": []any{1, 2}}, out["meta"])
	assert.Equal(t, []any{"a"}, out["tags"])
	out["meta"].(map[string]any)["l"].(map[string]any)["k"] = "mutated"
	out["tags"].([]any)[0] = "mutated"
	assert.Equal(t, labels{"k": "v"}, typed["meta"].(map[string]any)["l"])
	assert.Equal(t, []string{"a"}, typed["tags"])

	data["user"].(map[string]any)["roles"] = []any{map[string]any{}}
	_, err = mc.Validate(context.Background(), m, data)
	iss, ok := mc.AsIssue(err)
	require.True(t, ok)
	assert.Equal(t, "<object>.user.roles[0].id", iss.Path)
}

func TestValidate_AnyStringKeyedMap(t *testing.T) {
	type labels map[string]string
	m := mc.Model{{Key: "a", Decl: mc.String}}

	out, err := mc.Validate(context.Background(), m, labels{"a": "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", out["a"])
}

func TestValidate_BadArguments(t *testing.T) {
	ctx := context.Background()
	m := mc.Model{{Key: "a", Decl: mc.String}}

	for name, data := range map[string]any{
		"nil":    nil,
		"number": 5,
		"list":   []any{1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := mc.Validate(ctx, m, data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, mc.ErrArgument))
		})
	}

	_, err := mc.Validate(ctx, nil, map[string]any{})
	assert.True(t, errors.Is(err, mc.ErrArgument))

	_, err = mc.ReverseValidate(ctx, m, `{"a":"x"}`)
	assert.True(t, errors.Is(err, mc.ErrArgument), "reverse validation does not decode text")
}

func TestValidate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mc.Validate(ctx, mc.Model{{Key: "a", Decl: mc.String}}, map[string]any{"a": "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate_CustomTypes(t *testing.T) {
	even := mc.NewType("Even", func(v any) (any, error) {
		n, ok := v.(float64)
		if !ok || int(n)%2 != 0 {
			return nil, errors.New("not even")
		}
		return int(n), nil
	})
	boom := mc.NewType("Boom", func(any) (any, error) { panic("boom") })
	ctx := context.Background()

	out, err := mc.Validate(ctx, mc.Model{{Key: "n", Decl: even}}, map[string]any{"n": 4.0})
	require.NoError(t, err)
	assert.Equal(t, 4, out["n"])

	_, err = mc.Validate(ctx, mc.Model{{Key: "n", Decl: even}}, map[string]any{"n": 3.0})
	require.Error(t, err)
	iss, _ := mc.AsIssue(err)
	assert.EqualError(t, iss.Cause, "not even")

	_, err = mc.Validate(ctx, mc.Model{{Key: "n", Decl: boom}}, map[string]any{"n": 1})
	assert.True(t, errors.Is(err, mc.ErrTypeCoercion))
}

func TestCompiled_Reuse(t *testing.T) {
	c := mc.MustCompile(mc.Model{{Key: "id", Decl: mc.Decl{Type: mc.Number, From: "ID"}}})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		out, err := c.Validate(ctx, map[string]any{"ID": i})
		require.NoError(t, err)
		assert.Equal(t, float64(i), out["id"])
	}

	out, err := c.Reverse(ctx, map[string]any{"id": 7})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ID": float64(7)}, out)

	rc := mc.MustCompile(c.Model(), mc.WithDirection(mc.Reverse))
	out, err = rc.Validate(ctx, map[string]any{"id": 8})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ID": float64(8)}, out)

	_, err = rc.Validate(ctx, `{"id":9}`)
	assert.True(t, errors.Is(err, mc.ErrArgument), "reverse models reject text, got %v", err)
	_, err = rc.ValidateText(ctx, []byte(`{"id":9}`))
	assert.True(t, errors.Is(err, mc.ErrArgument))
}
