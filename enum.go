package modelcheck

import (
	"encoding/json"
	"math"
)

// resolveEnum matches raw against the members of e. Exact literal membership
// wins; otherwise *Type members are tried in declaration order and the first
// successful coercion is accepted when it keeps the raw runtime kind, or when
// raw is a string and the coerced value is a literal member.
func resolveEnum(raw any, e Enum, pc pathCtx) (any, error) {
	if enumHas(e, raw) {
		return cloneValue(raw), nil
	}
	rawKind := valueKind(raw)
	for _, m := range e {
		t, ok := m.(*Type)
		if !ok {
			continue
		}
		v, err := coerce(raw, t)
		if err != nil {
			continue
		}
		if valueKind(v) == rawKind || (rawKind == "string" && enumHas(e, v)) {
			return v, nil
		}
	}
	return nil, enumIssue(pc, e, raw)
}

// enumHas reports literal membership using SameValueZero semantics: numbers
// compare by value across Go numeric types and NaN equals NaN.
func enumHas(e Enum, v any) bool {
	for _, m := range e {
		if _, isType := m.(*Type); isType {
			continue
		}
		if sameValueZero(m, v) {
			return true
		}
	}
	return false
}

func sameValueZero(a, b any) bool {
	if isNumberLike(a) && isNumberLike(b) {
		fa, fb := toFloat(a), toFloat(b)
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return false
}

func isNumberLike(v any) bool { return isNumeric(v) || isJSONNumber(v) }

func isJSONNumber(v any) bool {
	_, ok := v.(json.Number)
	return ok
}
