package modelcheck

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/modelcheck/i18n"
)

// Issue codes.
const (
	CodeDeclaration     = "declaration"      // The model itself is malformed.
	CodeRequired        = "required"         // A required field is absent or null.
	CodeInvalidType     = "invalid_type"     // A value could not be coerced to its declared type.
	CodeInvalidEnum     = "invalid_enum"     // A value matched no enum member.
	CodeInvalidArgument = "invalid_argument" // Top-level arguments are unusable or text failed to decode.
)

// Sentinel errors matched by errors.Is against an *Issue of the same code.
var (
	ErrDeclaration  = errors.New("modelcheck: invalid model declaration")
	ErrFieldMissing = errors.New("modelcheck: required field missing")
	ErrTypeCoercion = errors.New("modelcheck: type coercion failed")
	ErrEnum         = errors.New("modelcheck: value not allowed in enum")
	ErrArgument     = errors.New("modelcheck: invalid argument")
)

var sentinelByCode = map[string]error{
	CodeDeclaration:     ErrDeclaration,
	CodeRequired:        ErrFieldMissing,
	CodeInvalidType:     ErrTypeCoercion,
	CodeInvalidEnum:     ErrEnum,
	CodeInvalidArgument: ErrArgument,
}

// Issue is the error returned by every failing operation. Validation stops at
// the first issue.
type Issue struct {
	Code       string
	Path       string // Declared key chain, e.g. <object>.user.tags[2].
	SourcePath string // Key chain actually read from the input.
	Expected   string // Expected type name, when relevant.
	Got        any    // Offending value, when relevant.
	Allowed    []any  // Enum members for invalid_enum.
	Message    string
	Cause      error
}

func (i *Issue) Error() string { return i.Message }

func (i *Issue) Unwrap() error { return i.Cause }

// Is reports whether target is the sentinel for the issue code.
func (i *Issue) Is(target error) bool {
	s, ok := sentinelByCode[i.Code]
	return ok && s == target
}

// AsIssue extracts an *Issue from err.
func AsIssue(err error) (*Issue, bool) {
	if err == nil {
		return nil, false
	}
	var iss *Issue
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ---- constructors used by the walker ----

func missingIssue(pc pathCtx, expected string) *Issue {
	iss := &Issue{Code: CodeRequired, Path: pc.declared, SourcePath: pc.source, Expected: expected}
	iss.Message = i18n.T(CodeRequired, pc.messageData(map[string]string{"expected": expected}))
	return iss
}

func typeIssue(pc pathCtx, expected string, got any, cause error) *Issue {
	iss := &Issue{Code: CodeInvalidType, Path: pc.declared, SourcePath: pc.source, Expected: expected, Got: got, Cause: cause}
	iss.Message = i18n.T(CodeInvalidType, pc.messageData(map[string]string{
		"expected": expected,
		"got":      renderValue(got),
	}))
	return iss
}

func enumIssue(pc pathCtx, allowed Enum, got any) *Issue {
	members := make([]any, len(allowed))
	copy(members, allowed)
	iss := &Issue{Code: CodeInvalidEnum, Path: pc.declared, SourcePath: pc.source, Got: got, Allowed: members}
	iss.Message = i18n.T(CodeInvalidEnum, pc.messageData(map[string]string{
		"allowed": renderValue(members),
		"got":     renderValue(got),
	}))
	return iss
}

func declarationIssue(path, reason string) *Issue {
	return &Issue{
		Code:    CodeDeclaration,
		Path:    path,
		Message: i18n.T(CodeDeclaration, map[string]string{"path": path, "reason": reason}),
	}
}

func argumentIssue(reason string, cause error) *Issue {
	data := map[string]string{"reason": reason}
	if cause != nil {
		data["cause"] = cause.Error()
	}
	return &Issue{Code: CodeInvalidArgument, Message: i18n.T(CodeInvalidArgument, data), Cause: cause}
}

// renderValue renders v as JSON for diagnostics, falling back to text for
// values JSON cannot express.
func renderValue(v any) string {
	b, err := json.Marshal(diagnosticValue(v))
	if err != nil {
		return toText(v)
	}
	return string(b)
}

func diagnosticValue(v any) any {
	switch t := v.(type) {
	case *Type:
		return t.Name()
	case *big.Int:
		return t.String() + "n"
	case *Sym:
		return t.String()
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return formatNumber(t)
		}
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = diagnosticValue(e)
		}
		return out
	case Enum:
		return diagnosticValue([]any(t))
	}
	return v
}

// describeDecl names a declaration for missing-field diagnostics.
func describeDecl(d Declaration) string {
	switch t := d.(type) {
	case *Type:
		return t.Name()
	case Tuple:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = describeDecl(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Enum:
		return "Enum" + renderValue([]any(t))
	}
	if ld, ok := longForm(d); ok {
		if ld.Item != nil {
			return "Array<" + describeDecl(ld.Item) + ">"
		}
		return describeDecl(ld.Type)
	}
	return fmt.Sprintf("%T", d)
}

// NewDeclarationError reports a malformed declaration at path. Declaration
// builders outside this package use it so their failures match ErrDeclaration.
func NewDeclarationError(path, reason string) error {
	return declarationIssue(path, reason)
}
