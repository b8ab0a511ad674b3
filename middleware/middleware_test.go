package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/modelcheck"
	"github.com/reoring/modelcheck/middleware"
)

func userModel() *modelcheck.Compiled {
	return modelcheck.MustCompile(modelcheck.Model{
		{Key: "name", Decl: modelcheck.Decl{Type: modelcheck.String, From: "user_name"}},
		{Key: "age", Decl: modelcheck.Number},
	}, middleware.DefaultOptions()...)
}

func TestHandler_StoresResult(t *testing.T) {
	var got map[string]any
	h := middleware.Handler(userModel(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = middleware.ResultFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"user_name":"Ann","age":"41"}`)))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, map[string]any{"name": "Ann", "age": float64(41)}, got)
}

func TestHandler_RejectsInvalidBody(t *testing.T) {
	h := middleware.Handler(userModel(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"user_name":"Ann","age":"x"}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, modelcheck.CodeInvalidType, body["issue"]["code"])
	assert.Equal(t, "<object>.age", body["issue"]["path"])
	assert.Equal(t, "Number", body["issue"]["expected"])
}

func TestHandler_DuplicateKeysAreErrors(t *testing.T) {
	h := middleware.Handler(userModel(), http.NotFoundHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"user_name":"a","user_name":"b","age":1}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), modelcheck.CodeInvalidArgument)
}

func TestHandler_RejectsDeepBody(t *testing.T) {
	h := middleware.Handler(userModel(), http.NotFoundHandler())
	n := middleware.DefaultMaxBodyDepth + 1
	body := `{"user_name":"a","age":1,"x":` + strings.Repeat("[", n) + strings.Repeat("]", n) + `}`

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), modelcheck.CodeInvalidArgument)
}

func TestValidateBody_SizeLimit(t *testing.T) {
	c := userModel()
	ctx := context.Background()
	pad := strings.Repeat(" ", int(middleware.DefaultMaxBodyBytes))

	_, err := middleware.ValidateBody(ctx, c, strings.NewReader(`{"user_name":"a","age":1}`+pad))
	assert.ErrorIs(t, err, middleware.ErrBodyTooLarge)

	out, err := middleware.ValidateBody(ctx, c, strings.NewReader(`{"user_name":"a","age":1}`+pad[:100]))
	require.NoError(t, err)
	assert.Equal(t, "a", out["name"])

	h := middleware.Handler(c, http.NotFoundHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"user_name":"a","age":1}`+pad)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "request body too large")
}

func TestErrorPayload_PlainError(t *testing.T) {
	assert.Equal(t, map[string]any{"error": "boom"}, middleware.ErrorPayload(errors.New("boom")))
}
