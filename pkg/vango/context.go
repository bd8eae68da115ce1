package vango

import (
	"fmt"

	vangoerrors "github.com/vango-dev/showcase/internal/errors"
)

// Context provides dependency injection through the owner tree.
// Create a context with CreateContext, provide values with Provide,
// and consume values with Use.
//
// Example:
//
//	var ThemeContext = vango.CreateContext[string]("Theme")
//
//	func App(o *vango.Owner) *vdom.VNode {
//	    ThemeContext.Provide(o, "dark")
//	    return Button(o.Child("button"))
//	}
//
//	func Button(o *vango.Owner) *vdom.VNode {
//	    theme := ThemeContext.MustUse(o)
//	    return vdom.Button(vdom.Class("btn-" + theme))
//	}
type Context[T any] struct {
	// key uniquely identifies this context in the owner value map
	key  *contextKey
	name string
}

// contextKey is allocated per context so keys never collide.
type contextKey struct {
	name string
}

// CreateContext creates a new context. The name appears in errors.
func CreateContext[T any](name string) *Context[T] {
	return &Context[T]{key: &contextKey{name: name}, name: name}
}

// Name returns the context name.
func (c *Context[T]) Name() string {
	return c.name
}

// Provide stores value in o. Descendant scopes of o (and o itself) see it
// through Use.
func (c *Context[T]) Provide(o *Owner, value T) {
	o.SetValue(c.key, value)
}

// Use retrieves the value from the nearest providing scope at or above o.
// Without a provider it returns the zero value and an error matching
// ErrNoProvider.
func (c *Context[T]) Use(o *Owner) (T, error) {
	var zero T
	if o != nil {
		if value, ok := o.GetValue(c.key); ok {
			if typed, ok := value.(T); ok {
				return typed, nil
			}
			return zero, fmt.Errorf("vango: context %s holds %T", c.name, value)
		}
	}
	return zero, vangoerrors.New("E001").
		WithDetailf("%s read outside its provider", c.name).
		WithSuggestion(fmt.Sprintf("Render this component below a %s provider", c.name))
}

// MustUse is like Use but panics when no provider is found.
func (c *Context[T]) MustUse(o *Owner) T {
	v, err := c.Use(o)
	if err != nil {
		panic(err)
	}
	return v
}
