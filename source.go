package modelcheck

import (
	"sync"

	eng "github.com/reoring/modelcheck/internal/engine"
	jsonsrc "github.com/reoring/modelcheck/source/json"
)

// Token, TokenKind and Source expose the engine token stream so drivers can
// live outside this package.
type (
	Token     = eng.Token
	TokenKind = eng.Kind
	Source    = eng.TokenSource
)

const (
	TokenBeginObject = eng.KindBeginObject
	TokenEndObject   = eng.KindEndObject
	TokenBeginArray  = eng.KindBeginArray
	TokenEndArray    = eng.KindEndArray
	TokenKey         = eng.KindKey
	TokenString      = eng.KindString
	TokenNumber      = eng.KindNumber
	TokenBool        = eng.KindBool
	TokenNull        = eng.KindNull
)

// JSONDriver turns JSON text into a token Source. It is the pluggable
// "decode text to an untyped value tree" step of Validate. The default
// implementation is based on encoding/json and may be swapped with
// SetJSONDriver (see the source/gojson and source/gjson packages).
type JSONDriver interface {
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the driver used for text payloads.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type defaultJSONDriver struct{}

func (defaultJSONDriver) NewBytes(b []byte) Source { return jsonsrc.NewBytes(b) }
func (defaultJSONDriver) Name() string             { return "encoding/json" }

// DecodeText decodes JSON text into an untyped tree using the current driver
// and the decode settings of opts. Failures are ErrArgument issues.
func DecodeText(b []byte, opts ...Option) (any, error) {
	return decodeText(b, buildOptions(opts))
}

func decodeText(b []byte, o Options) (any, error) {
	d := CurrentJSONDriver()
	src := eng.WrapWithEnforcement(d.NewBytes(b), eng.EnforceOptions{
		OnDuplicate: toEngineDup(o.Strictness.OnDuplicateKey),
		MaxDepth:    o.Strictness.MaxDataDepth,
		IssueSink: func(si eng.SimpleIssue) {
			o.Logger.Warn("json decode", "code", si.Code, "path", si.Path, "message", si.Message, "driver", d.Name())
		},
	})
	conv := eng.Float64Numbers
	if o.NumberMode == NumberJSONNumber {
		conv = eng.JSONNumbers
	}
	v, err := eng.DecodeDocument(src, conv)
	if err != nil {
		return nil, argumentIssue(`Second argument "data" cannot be parsed from string`, err)
	}
	return v, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
