package components

import (
	"github.com/vango-dev/showcase/pkg/router"
	"github.com/vango-dev/showcase/pkg/vango"
	. "github.com/vango-dev/showcase/pkg/vdom"
)

// NavBar is the navigation shell rendered above every page.
func NavBar(o *vango.Owner) *VNode {
	return Nav(Class("navbar"), AriaLabel("Main"),
		Div(Class("container"),
			router.Link(o, "/", Class("navbar-brand"), "Showcase"),
			Ul(Class("navbar-nav"),
				Li(Class("nav-item"), router.Link(o, "/", Class("nav-link"), "Home")),
				Li(Class("nav-item"), router.Link(o, "/about", Class("nav-link"), "About")),
				Li(Class("nav-item"), router.Link(o, "/contact", Class("nav-link"), "Contact")),
				Li(Class("nav-item"), router.Link(o, "/dashboard", Class("nav-link"), "Dashboard")),
			),
		),
	)
}
