package router

import (
	"github.com/vango-dev/showcase/pkg/routepath"
	"github.com/vango-dev/showcase/pkg/vango"
	"github.com/vango-dev/showcase/pkg/vdom"
)

// Link creates an anchor for in-app navigation. A relative to resolves
// against the Base of the enclosing route, so Link(o, "settings") inside
// the dashboard points at /dashboard/settings. The thin client intercepts
// clicks on data-link anchors; without it the anchor is a plain link.
//
// The link whose target is the current path gets class "active" and
// aria-current="page".
func Link(o *vango.Owner, to string, children ...any) *vdom.VNode {
	base := "/"
	if st, err := StateContext.Use(o); err == nil {
		base = st.Base
	}

	href := to
	if res, err := routepath.Resolve(base, to); err == nil {
		href = res.String()
	}

	args := []any{
		vdom.Href(href),
		vdom.Data("link", "true"),
	}
	if nav, err := NavigatorContext.Use(o); err == nil && nav.Path() == href {
		args = append(args, vdom.Class("active"), vdom.AriaCurrent("page"))
	}
	args = append(args, children...)
	return vdom.A(args...)
}
