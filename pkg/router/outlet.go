package router

import (
	"github.com/vango-dev/showcase/pkg/routepath"
	"github.com/vango-dev/showcase/pkg/vango"
	"github.com/vango-dev/showcase/pkg/vdom"
)

// notFoundKey is the scope key of the not-found page.
const notFoundKey = "route:!notfound"

// Routes renders the route of r that matches the current location.
//
// Inside an enclosing route it matches the parent's Rest and inherits its
// Base and Params. At the top level it reads the path from the Navigator in
// NavigatorContext and records whether the not-found page was rendered.
// Without either it renders the root path.
func Routes(o *vango.Owner, r *Router) *vdom.VNode {
	parent, err := StateContext.Use(o)
	nested := err == nil

	var nav *Navigator
	if !nested {
		nav, _ = NavigatorContext.Use(o)
		parent = State{Path: "/", Base: "/", Params: Params{}}
		if nav != nil {
			parent.Path = nav.Path()
		}
		parent.Rest = parent.Path
	}

	m, _ := r.Match("/" + parent.Rest)
	if nav != nil {
		nav.setNotFound(m.NotFound)
	}
	if m.Handler == nil {
		return nil
	}

	state := State{
		Path:     parent.Path,
		Base:     routepath.Join(parent.Base, m.Base),
		Pattern:  m.Pattern,
		Params:   parent.Params.clone(m.Params),
		Rest:     m.Rest,
		NotFound: m.NotFound,
	}

	key := notFoundKey
	if !m.NotFound {
		key = "route:" + m.Pattern
	}
	scope := o.Child(key)
	StateContext.Provide(scope, state)
	return m.Handler(scope)
}
