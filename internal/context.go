package internal

// Context is a key for values provided by an owner and inherited by its descendants.
type Context struct {
	defaultValue any
}

func NewContext(initial any) *Context {
	return &Context{defaultValue: initial}
}

// Value returns the value provided by the closest owner, or the default outside of any.
func (c *Context) Value(r *Runtime) any {
	if owner := r.CurrentOwner(); owner != nil {
		if v, ok := owner.Lookup(c); ok {
			return v
		}
	}

	return c.defaultValue
}

// Set provides v on the current owner. Without an owner there is nowhere to keep it.
func (c *Context) Set(r *Runtime, v any) {
	if owner := r.CurrentOwner(); owner != nil {
		owner.Provide(c, v)
	}
}
