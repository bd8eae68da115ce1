package routes

import (
	"github.com/vango-dev/showcase/app/components"
	"github.com/vango-dev/showcase/app/store"
	"github.com/vango-dev/showcase/pkg/router"
	"github.com/vango-dev/showcase/pkg/vango"
	. "github.com/vango-dev/showcase/pkg/vdom"
)

// HomePage mounts a fresh UserProvider around the profile. Leaving the page
// drops the provider, and with it the session and history.
func HomePage(o *vango.Owner) *VNode {
	return Div(
		H1("Home"),
		store.UserProvider(o.Child("provider"), func(c *vango.Owner) *VNode {
			return components.UserProfile(c.Child("profile"))
		}),
	)
}

func AboutPage(o *vango.Owner) *VNode {
	return Div(
		H1("About"),
		P("This is the about page."),
	)
}

func ContactPage(o *vango.Owner) *VNode {
	return Div(
		H1("Contact"),
		P("Get in touch with us."),
	)
}

// DashboardLayout wraps the dashboard's nested routes.
func DashboardLayout(o *vango.Owner, outlet *VNode) *VNode {
	return Div(
		H1("Dashboard"),
		Nav(
			Ul(
				Li(router.Link(o, "profile", "Profile")),
				Li(router.Link(o, "settings", "Settings")),
			),
		),
		outlet,
	)
}

// ProfilePage greets the user named in the path, verbatim.
func ProfilePage(o *vango.Owner) *VNode {
	return H1(Textf("Welcome, %s!", router.Param(o, "username")))
}

func SettingsPage(o *vango.Owner) *VNode {
	return Div(
		H1("Settings"),
		P("Manage your account settings here."),
	)
}

func NotFoundPage(o *vango.Owner) *VNode {
	return H1("404 - Page Not Found")
}
