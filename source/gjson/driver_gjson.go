// Package gjson provides a JSON driver backed by github.com/tidwall/gjson.
// The document is validated up front and then replayed as tokens in document
// order, so duplicate keys remain visible to enforcement.
package gjson

import (
	"errors"
	"io"

	tg "github.com/tidwall/gjson"

	"github.com/reoring/modelcheck"
	eng "github.com/reoring/modelcheck/internal/engine"
)

// ErrInvalidJSON is returned by the first NextToken call for malformed input.
var ErrInvalidJSON = errors.New("gjson: invalid json")

// Driver returns a modelcheck.JSONDriver backed by gjson.
func Driver() modelcheck.JSONDriver { return driverGJSON{} }

type driverGJSON struct{}

func (driverGJSON) NewBytes(b []byte) modelcheck.Source { return NewBytes(b) }
func (driverGJSON) Name() string                       { return "gjson" }

// NewBytes materializes the tokens of b.
func NewBytes(b []byte) eng.TokenSource {
	if !tg.ValidBytes(b) {
		return &source{err: ErrInvalidJSON}
	}
	var tz eng.Tokenizer
	return &source{tokens: appendTokens(make([]eng.Token, 0, 64), &tz, tg.ParseBytes(b))}
}

type source struct {
	tokens []eng.Token
	idx    int
	err    error
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.idx >= len(s.tokens) {
		return eng.Token{}, io.EOF
	}
	t := s.tokens[s.idx]
	s.idx++
	return t, nil
}

func (s *source) Location() int64 { return -1 }

func appendTokens(out []eng.Token, tz *eng.Tokenizer, r tg.Result) []eng.Token {
	switch r.Type {
	case tg.String:
		return append(out, tz.String(r.Str, int64(r.Index)))
	case tg.Number:
		return append(out, tz.Number(r.Raw, int64(r.Index)))
	case tg.True, tg.False:
		return append(out, tz.Bool(r.Type == tg.True, int64(r.Index)))
	case tg.JSON:
		if r.IsObject() {
			out = append(out, tz.Delim('{', int64(r.Index)))
			r.ForEach(func(k, v tg.Result) bool {
				out = append(out, tz.String(k.Str, int64(k.Index)))
				out = appendTokens(out, tz, v)
				return true
			})
			return append(out, tz.Delim('}', -1))
		}
		out = append(out, tz.Delim('[', int64(r.Index)))
		r.ForEach(func(_, v tg.Result) bool {
			out = appendTokens(out, tz, v)
			return true
		})
		return append(out, tz.Delim(']', -1))
	}
	return append(out, tz.Null(int64(r.Index)))
}
