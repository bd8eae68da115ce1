package router

import (
	"github.com/vango-dev/showcase/pkg/vango"
	"github.com/vango-dev/showcase/pkg/vdom"
)

// Handler renders a page into its scope.
type Handler func(o *vango.Owner) *vdom.VNode

// Layout wraps the outlet of a mounted router.
type Layout func(o *vango.Owner, outlet *vdom.VNode) *vdom.VNode

// Params maps parameter names to decoded segment values. A catch-all is
// stored under its name, or "*" when it has none.
type Params map[string]string

// Get returns the value of a parameter, or "".
func (p Params) Get(name string) string {
	return p[name]
}

// clone returns a copy of p merged with extra.
func (p Params) clone(extra Params) Params {
	out := make(Params, len(p)+len(extra))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Match is the result of matching a path against one router level.
type Match struct {
	// Pattern is the matched pattern as registered.
	Pattern string

	// Handler renders the matched route, or the not-found page.
	Handler Handler

	// Params are the parameters captured at this level.
	Params Params

	// Base is the portion of the path consumed by this level, rooted at "/".
	Base string

	// Rest is the remainder captured by a catch-all, without a leading "/".
	Rest string

	// NotFound is set when no pattern matched.
	NotFound bool
}

// State describes the route a scope was rendered for.
type State struct {
	// Path is the full location path being rendered.
	Path string

	// Base is the absolute path consumed by this level and its parents.
	// Relative links resolve against it.
	Base string

	// Pattern is the pattern that matched at this level.
	Pattern string

	// Params holds the parameters of this level merged over its parents'.
	Params Params

	// Rest is what a nested router at this level receives.
	Rest string

	// NotFound is set when this level rendered its not-found page.
	NotFound bool
}

// StateContext carries the State of the nearest enclosing route.
var StateContext = vango.CreateContext[State]("router.State")

// UseState returns the State of the nearest enclosing route.
func UseState(o *vango.Owner) (State, error) {
	return StateContext.Use(o)
}

// Param returns a parameter of the nearest enclosing route, or "".
func Param(o *vango.Owner, name string) string {
	st, err := StateContext.Use(o)
	if err != nil {
		return ""
	}
	return st.Params.Get(name)
}
