package modelcheck

import "context"

// Validate resolves data against model in the forward direction and returns
// a fresh object holding only the declared keys. data may be a decoded object
// (map[string]any or any string-keyed map), or JSON text as string or []byte.
// The model is compiled on every call; use Compile for repeated validation.
func Validate(ctx context.Context, model Model, data any, opts ...Option) (map[string]any, error) {
	c, err := Compile(model, opts...)
	if err != nil {
		return nil, err
	}
	return c.Validate(ctx, data)
}

// ValidateText decodes text with the current JSON driver and validates it.
func ValidateText(ctx context.Context, model Model, text string, opts ...Option) (map[string]any, error) {
	return Validate(ctx, model, text, opts...)
}

// ReverseValidate resolves internal-shaped data and writes each field under
// its external key (From). Text input is not accepted.
func ReverseValidate(ctx context.Context, model Model, data any, opts ...Option) (map[string]any, error) {
	c, err := Compile(model, opts...)
	if err != nil {
		return nil, err
	}
	return c.Reverse(ctx, data)
}

// Validate resolves data with the direction c was compiled with (Forward by
// default).
func (c *Compiled) Validate(ctx context.Context, data any) (map[string]any, error) {
	if c.opts.Direction == Reverse {
		return c.Reverse(ctx, data)
	}
	switch t := data.(type) {
	case string:
		return c.ValidateText(ctx, []byte(t))
	case []byte:
		return c.ValidateText(ctx, t)
	}
	return c.walk(ctx, data, c.opts.Direction)
}

// ValidateText decodes b and validates the resulting object. Models compiled
// for the reverse direction reject text.
func (c *Compiled) ValidateText(ctx context.Context, b []byte) (map[string]any, error) {
	if c.opts.Direction == Reverse {
		return nil, errReverseText()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, err := decodeText(b, c.opts)
	if err != nil {
		return nil, err
	}
	return c.walk(ctx, v, c.opts.Direction)
}

// Reverse resolves data in the reverse direction.
func (c *Compiled) Reverse(ctx context.Context, data any) (map[string]any, error) {
	switch data.(type) {
	case string, []byte:
		return nil, errReverseText()
	}
	return c.walk(ctx, data, Reverse)
}

func errReverseText() *Issue {
	return argumentIssue(`Second argument "data" must be Object for reverse validation`, nil)
}

func (c *Compiled) walk(ctx context.Context, data any, dir Direction) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	obj, ok := asObject(data)
	if !ok || data == nil {
		return nil, argumentIssue(`Second argument "data" is not valid type. Must be Object or String`, nil)
	}
	w := walker{dir: dir, log: c.opts.Logger}
	w.log.Debug("walk", "direction", dir.String(), "fields", len(c.fields))
	return w.walkObject(c.fields, obj, rootCtx())
}
