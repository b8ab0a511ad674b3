package engine

// Tokenizer turns the flat token stream of a decoder (delimiters, strings,
// numbers, bools, nulls) into engine tokens, telling object keys apart from
// string values.
type Tokenizer struct {
	stack []tokFrame
}

type tokFrame struct {
	object       bool
	expectingKey bool
}

// Delim converts one of '{', '}', '[' or ']'.
func (t *Tokenizer) Delim(d rune, offset int64) Token {
	switch d {
	case '{':
		t.stack = append(t.stack, tokFrame{object: true, expectingKey: true})
		return Token{Kind: KindBeginObject, Offset: offset}
	case '[':
		t.stack = append(t.stack, tokFrame{})
		return Token{Kind: KindBeginArray, Offset: offset}
	}
	if n := len(t.stack); n > 0 {
		t.stack = t.stack[:n-1]
	}
	t.valueDone()
	if d == '}' {
		return Token{Kind: KindEndObject, Offset: offset}
	}
	return Token{Kind: KindEndArray, Offset: offset}
}

// String converts a string token, which is a key when an object expects one.
func (t *Tokenizer) String(s string, offset int64) Token {
	if n := len(t.stack); n > 0 {
		top := &t.stack[n-1]
		if top.object && top.expectingKey {
			top.expectingKey = false
			return Token{Kind: KindKey, String: s, Offset: offset}
		}
	}
	t.valueDone()
	return Token{Kind: KindString, String: s, Offset: offset}
}

// Number converts a number token given as text.
func (t *Tokenizer) Number(text string, offset int64) Token {
	t.valueDone()
	return Token{Kind: KindNumber, Number: text, Offset: offset}
}

// Bool converts a boolean token.
func (t *Tokenizer) Bool(b bool, offset int64) Token {
	t.valueDone()
	return Token{Kind: KindBool, Bool: b, Offset: offset}
}

// Null converts a null token.
func (t *Tokenizer) Null(offset int64) Token {
	t.valueDone()
	return Token{Kind: KindNull, Offset: offset}
}

func (t *Tokenizer) valueDone() {
	if n := len(t.stack); n > 0 {
		top := &t.stack[n-1]
		if top.object && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
