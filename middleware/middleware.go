// Package middleware holds the framework-neutral pieces of the HTTP
// integrations: the context key for validated payloads, recommended options
// for JSON request bodies, the error payload, and a net/http handler.
// Framework adapters live in the middleware/gin and middleware/echo modules.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/reoring/modelcheck"
)

type ctxKeyResult struct{}

// ContextWithResult attaches a validated object to the context.
func ContextWithResult(ctx context.Context, out map[string]any) context.Context {
	return context.WithValue(ctx, ctxKeyResult{}, out)
}

// ResultFromContext retrieves the validated object stored by ContextWithResult.
func ResultFromContext(ctx context.Context) (map[string]any, bool) {
	v, ok := ctx.Value(ctxKeyResult{}).(map[string]any)
	return v, ok
}

const (
	// DefaultMaxBodyBytes caps the request body read by ValidateBody.
	DefaultMaxBodyBytes int64 = 1 << 20
	// DefaultMaxBodyDepth caps the nesting depth of decoded request bodies.
	DefaultMaxBodyDepth = 64
)

// ErrBodyTooLarge is returned by ValidateBody when the body exceeds
// DefaultMaxBodyBytes.
var ErrBodyTooLarge = errors.New("request body too large")

// DefaultOptions returns a recommended default for HTTP JSON boundaries:
// duplicate keys are errors and nesting is capped at DefaultMaxBodyDepth.
func DefaultOptions() []modelcheck.Option {
	return []modelcheck.Option{
		modelcheck.WithStrictness(modelcheck.Strictness{
			OnDuplicateKey: modelcheck.Error,
			MaxDataDepth:   DefaultMaxBodyDepth,
		}),
	}
}

// ErrorPayload shapes a validation error for JSON responses.
func ErrorPayload(err error) map[string]any {
	iss, ok := modelcheck.AsIssue(err)
	if !ok {
		return map[string]any{"error": err.Error()}
	}
	body := map[string]any{"code": iss.Code, "message": iss.Message}
	if iss.Path != "" {
		body["path"] = iss.Path
	}
	if iss.SourcePath != "" && iss.SourcePath != iss.Path {
		body["sourcePath"] = iss.SourcePath
	}
	if iss.Expected != "" {
		body["expected"] = iss.Expected
	}
	return map[string]any{"issue": body}
}

// ValidateBody reads at most DefaultMaxBodyBytes of the request body and
// validates it with c.
func ValidateBody(ctx context.Context, c *modelcheck.Compiled, body io.Reader) (map[string]any, error) {
	b, err := io.ReadAll(io.LimitReader(body, DefaultMaxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > DefaultMaxBodyBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, DefaultMaxBodyBytes)
	}
	return c.ValidateText(ctx, b)
}

// Handler validates JSON request bodies with c. On success the result is
// stored in the request context; on failure it answers 400 with ErrorPayload.
func Handler(c *modelcheck.Compiled, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out, err := ValidateBody(r.Context(), c, r.Body)
		if err != nil {
			WriteJSON(w, http.StatusBadRequest, ErrorPayload(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithResult(r.Context(), out)))
	})
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
