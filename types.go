package modelcheck

// Direction selects which side of a field mapping is read and which is written.
type Direction int

const (
	Forward Direction = iota // Read From (or the key), write the declared key.
	Reverse                  // Read the declared key, write From (or the key).
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// NumberMode dictates how numbers in decoded text are represented.
type NumberMode int

const (
	NumberFloat64    NumberMode = iota // float64, matching JSON number semantics.
	NumberJSONNumber                   // Preserve json.Number so BigInt fields keep full precision.
)

// Severity expresses the severity level for decode-time findings.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures decode-time enforcement.
type Strictness struct {
	OnDuplicateKey Severity // Ignore keeps the last value, like JSON.parse.
	MaxDataDepth   int      // 0 disables the nesting cap for decoded text.
}

// DefaultMaxModelDepth bounds model nesting. Deeper models are rejected by
// Compile instead of exhausting the stack during a walk.
const DefaultMaxModelDepth = 64

// Options bundles validation options.
type Options struct {
	Direction     Direction
	MaxModelDepth int
	NumberMode    NumberMode
	Strictness    Strictness
	Logger        Logger
}

// Option mutates Options.
type Option func(*Options)

// WithDirection selects forward or reverse key mapping.
func WithDirection(d Direction) Option { return func(o *Options) { o.Direction = d } }

// WithMaxModelDepth overrides DefaultMaxModelDepth. Values <= 0 restore the default.
func WithMaxModelDepth(n int) Option { return func(o *Options) { o.MaxModelDepth = n } }

// WithNumberMode controls how numbers in text payloads are decoded.
func WithNumberMode(m NumberMode) Option { return func(o *Options) { o.NumberMode = m } }

// WithStrictness sets decode-time enforcement for text payloads.
func WithStrictness(s Strictness) Option { return func(o *Options) { o.Strictness = s } }

// WithLogger routes debug output of the walk to l.
func WithLogger(l Logger) Option { return func(o *Options) { o.Logger = l } }

func buildOptions(opts []Option) Options {
	o := Options{MaxModelDepth: DefaultMaxModelDepth}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.MaxModelDepth <= 0 {
		o.MaxModelDepth = DefaultMaxModelDepth
	}
	if o.Logger == nil {
		o.Logger = NopLogger{}
	}
	return o
}
