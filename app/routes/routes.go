// Package routes holds the page components and the route table.
package routes

import (
	"github.com/vango-dev/showcase/app/components"
	"github.com/vango-dev/showcase/pkg/router"
	"github.com/vango-dev/showcase/pkg/vango"
	. "github.com/vango-dev/showcase/pkg/vdom"
)

// Dashboard returns the router nested under /dashboard.
func Dashboard() *router.Router {
	return router.New().
		Page("profile/:username", ProfilePage).
		Page("settings", SettingsPage)
}

// Router returns the top-level route table.
func Router() *router.Router {
	return router.New().
		Page("/", HomePage).
		Page("/about", AboutPage).
		Page("/contact", ContactPage).
		Mount("/dashboard", Dashboard(), DashboardLayout).
		NotFound(NotFoundPage)
}

// App returns the root component: the navigation shell above the routes.
// The Navigator must be provided on o or an ancestor.
func App(r *router.Router) func(o *vango.Owner) *VNode {
	return func(o *vango.Owner) *VNode {
		return Div(Class("app"),
			components.NavBar(o.Child("navbar")),
			Main(Class("container"),
				router.Routes(o.Child("routes"), r),
			),
		)
	}
}

