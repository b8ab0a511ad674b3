// Package json provides the encoding/json backed token source.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/reoring/modelcheck/internal/engine"
)

type jsonSource struct {
	dec        *json.Decoder
	tz         eng.Tokenizer
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		return s.tz.Delim(rune(v), s.lastOffset), nil
	case string:
		return s.tz.String(v, s.lastOffset), nil
	case bool:
		return s.tz.Bool(v, s.lastOffset), nil
	case json.Number:
		return s.tz.Number(string(v), s.lastOffset), nil
	case float64:
		return s.tz.Number(strconv.FormatFloat(v, 'g', -1, 64), s.lastOffset), nil
	}
	return s.tz.Null(s.lastOffset), nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
