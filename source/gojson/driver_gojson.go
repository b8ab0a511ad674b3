// Package gojson provides a JSON driver backed by github.com/goccy/go-json.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/modelcheck"
	eng "github.com/reoring/modelcheck/internal/engine"
)

// Driver returns a modelcheck.JSONDriver backed by goccy/go-json.
func Driver() modelcheck.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewBytes(b []byte) modelcheck.Source { return NewBytes(b) }
func (driverGoJSON) Name() string                       { return "go-json" }

type source struct {
	dec *j.Decoder
	tz  eng.Tokenizer
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		return s.tz.Delim(rune(v), -1), nil
	case string:
		return s.tz.String(v, -1), nil
	case bool:
		return s.tz.Bool(v, -1), nil
	case j.Number:
		return s.tz.Number(string(v), -1), nil
	case float64:
		return s.tz.Number(strconv.FormatFloat(v, 'g', -1, 64), -1), nil
	}
	return s.tz.Null(-1), nil
}

func (s *source) Location() int64 { return -1 }
