package modelcheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// errNaN marks a conversion that produced NaN from a non-NaN input.
var errNaN = errors.New("conversion produced NaN")

// conversions is the value-conversion table for built-in scalar kinds.
var conversions = map[Kind]func(v any) (any, error){
	KindString:  func(v any) (any, error) { return toText(v), nil },
	KindNumber:  func(v any) (any, error) { return toNumber(v), nil },
	KindBigInt:  toBigInt,
	KindSymbol:  func(v any) (any, error) { return &Sym{Description: toText(v)}, nil },
	KindBoolean: func(v any) (any, error) { return truthy(v), nil },
	KindObject:  func(v any) (any, error) { return cloneValue(v), nil },
}

// coerce converts raw to t. A NaN result is accepted only when raw itself was NaN.
func coerce(raw any, t *Type) (out any, err error) {
	if t == nil {
		return nil, errors.New("nil type")
	}
	if conv, ok := conversions[t.kind]; ok {
		out, err = conv(raw)
	} else if t.ctor != nil {
		out, err = construct(raw, t)
	} else {
		return nil, fmt.Errorf("type %s is not constructible", t.name)
	}
	if err != nil {
		return nil, err
	}
	if f, ok := out.(float64); ok && math.IsNaN(f) && !isNaNValue(raw) {
		return nil, errNaN
	}
	return out, nil
}

func construct(raw any, t *Type) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%s constructor panicked: %v", t.name, r)
		}
	}()
	return t.ctor(raw)
}

// ---- number ----

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func toNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		return numberFromText(t)
	case json.Number:
		return numberFromText(string(t))
	case *big.Int:
		f, _ := new(big.Float).SetInt(t).Float64()
		return f
	case time.Time:
		return float64(t.UnixMilli())
	case []any:
		switch len(t) {
		case 0:
			return 0
		case 1:
			return numberFromText(toText(t[0]))
		}
		return math.NaN()
	}
	if isNumeric(v) {
		return toFloat(v)
	}
	return math.NaN()
}

func numberFromText(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, ok := new(big.Int).SetString(s[2:], base)
			if !ok {
				return math.NaN()
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	}
	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// ---- text ----

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case json.Number:
		return formatNumber(numberFromText(string(t)))
	case *big.Int:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			if e != nil {
				parts[i] = toText(e)
			}
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	case fmt.Stringer:
		return t.String()
	}
	if isNumeric(v) {
		return formatNumber(toFloat(v))
	}
	return fmt.Sprint(v)
}

// formatNumber renders f the way ECMAScript Number::toString does.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expText, _ := strings.Cut(e, "e")
	digits := strings.Replace(mant, ".", "", 1)
	exp, _ := strconv.Atoi(expText)
	n := exp + 1
	k := len(digits)
	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}
	expSign := "+"
	if n-1 < 0 {
		expSign = "-"
	}
	m := digits[:1]
	if k > 1 {
		m += "." + digits[1:]
	}
	return sign + m + "e" + expSign + strconv.Itoa(abs(n-1))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ---- bigint ----

func toBigInt(v any) (any, error) {
	switch t := v.(type) {
	case *big.Int:
		return new(big.Int).Set(t), nil
	case bool:
		if t {
			return big.NewInt(1), nil
		}
		return big.NewInt(0), nil
	case string:
		return bigIntFromText(t)
	case json.Number:
		if n, ok := new(big.Int).SetString(string(t), 10); ok {
			return n, nil
		}
		return bigIntFromFloat(numberFromText(string(t)))
	case nil:
		return nil, errors.New("cannot convert null to a BigInt")
	}
	if isNumeric(v) {
		return bigIntFromFloat(toFloat(v))
	}
	return nil, fmt.Errorf("cannot convert %T to a BigInt", v)
}

func bigIntFromText(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return big.NewInt(0), nil
	}
	base := 10
	digits := s
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base, digits = 16, s[2:]
		case 'o', 'O':
			base, digits = 8, s[2:]
		case 'b', 'B':
			base, digits = 2, s[2:]
		}
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok || (base != 10 && (digits[0] == '+' || digits[0] == '-')) {
		return nil, fmt.Errorf("cannot convert %q to a BigInt", s)
	}
	return n, nil
}

func bigIntFromFloat(f float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("%s is not an integer", formatNumber(f))
	}
	n, _ := big.NewFloat(f).Int(nil)
	return n, nil
}

// ---- boolean ----

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f := numberFromText(string(t))
		return f != 0 && !math.IsNaN(f)
	case *big.Int:
		return t.Sign() != 0
	}
	if isNumeric(v) {
		f := toFloat(v)
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// ---- value helpers ----

func isNumeric(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case json.Number:
		return numberFromText(string(t))
	}
	return math.NaN()
}

func isNaNValue(v any) bool {
	switch t := v.(type) {
	case float64:
		return math.IsNaN(t)
	case float32:
		return math.IsNaN(float64(t))
	}
	return false
}

// valueKind reports the runtime kind of v in the vocabulary of the Enum
// resolver: string, number, bigint, boolean, symbol or object.
func valueKind(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case json.Number:
		return "number"
	case *big.Int:
		return "bigint"
	case bool:
		return "boolean"
	case *Sym:
		return "symbol"
	}
	if isNumeric(v) {
		return "number"
	}
	return "object"
}

// cloneValue deep-copies JSON-like containers so results never alias input.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case *big.Int:
		return new(big.Int).Set(t)
	case []byte:
		return append([]byte(nil), t...)
	case nil:
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = cloneValue(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = cloneValue(rv.Index(i).Interface())
		}
		return out
	}
	return v
}
