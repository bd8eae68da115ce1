package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/showcase/app/components"
	"github.com/vango-dev/showcase/pkg/vango"
	. "github.com/vango-dev/showcase/pkg/vdom"
	"github.com/vango-dev/showcase/pkg/vtest"
)

func mountApp(t *testing.T, path string) *vtest.Harness {
	t.Helper()
	return vtest.Mount(t, App(Router()), path)
}

func TestRouteTable(t *testing.T) {
	assert.Equal(t, []string{
		"/",
		"/about",
		"/contact",
		"/dashboard/*",
		"/dashboard/profile/:username",
		"/dashboard/settings",
	}, Router().Patterns())
}

func TestStaticPages(t *testing.T) {
	tests := []struct {
		path    string
		heading string
		line    string
	}{
		{"/about", "About", "This is the about page."},
		{"/contact", "Contact", "Get in touch with us."},
		{"/dashboard/settings", "Settings", "Manage your account settings here."},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			h := mountApp(t, tt.path)
			assert.Contains(t, h.Texts("h1"), tt.heading)
			h.ExpectText(tt.line)
			assert.False(t, h.NotFound())
		})
	}
}

func TestPageComponents(t *testing.T) {
	o := vango.NewOwner(nil)
	defer o.Dispose()

	vtest.ExpectContains(t, AboutPage(o), "<h1>About</h1>")
	vtest.ExpectContains(t, ContactPage(o), "<p>Get in touch with us.</p>")
	vtest.ExpectNotContains(t, ContactPage(o), "<form")
	vtest.ExpectElement(t, SettingsPage(o), "p")
	vtest.ExpectContains(t, NotFoundPage(o), "<h1>404 - Page Not Found</h1>")

	layout := DashboardLayout(o, P("outlet"))
	vtest.ExpectContains(t, layout, "<h1>Dashboard</h1>")
	vtest.ExpectContains(t, layout, "<p>outlet</p>")
	vtest.ExpectElement(t, layout, "nav")
}

func TestNavBarComponent(t *testing.T) {
	o := vango.NewOwner(nil)
	defer o.Dispose()

	nav := components.NavBar(o)
	vtest.ExpectAttribute(t, nav, "aria-label", "Main")
	vtest.ExpectAttribute(t, nav, "href", "/contact")
	vtest.ExpectNotContains(t, nav, "aria-current")
}

func TestNavBarOnEveryPage(t *testing.T) {
	for _, path := range []string{"/", "/about", "/dashboard/settings", "/nonexistent"} {
		h := mountApp(t, path)
		assert.Equal(t, []string{"Showcase", "Home", "About", "Contact", "Dashboard"}, h.Texts("a")[:5], path)
		h.ExpectHTML(`href="/dashboard"`)
	}
}

func TestNavBarMarksCurrentPage(t *testing.T) {
	h := mountApp(t, "/about")
	h.ExpectHTML(`<a aria-current="page" class="active nav-link" data-link="true" href="/about">About</a>`)
}

func TestNotFound(t *testing.T) {
	for _, path := range []string{"/nonexistent", "/about/more", "/dashboard-x"} {
		h := mountApp(t, path)
		assert.Contains(t, h.Texts("h1"), "404 - Page Not Found", path)
		assert.True(t, h.NotFound(), path)
	}
}

func TestDashboardProfileGreeting(t *testing.T) {
	h := mountApp(t, "/dashboard/profile/alice")

	assert.Equal(t, []string{"Dashboard", "Welcome, alice!"}, h.Texts("h1"))
	h.ExpectNoText("Manage your account settings here.")
}

func TestDashboardProfileParamIsLiteral(t *testing.T) {
	h := mountApp(t, "/dashboard/profile/O'Neil")
	h.ExpectText("Welcome, O'Neil!")
	h.ExpectHTML("Welcome, O&#39;Neil!")
}

func TestDashboardSettingsIsNotProfile(t *testing.T) {
	h := mountApp(t, "/dashboard/settings")

	h.ExpectText("Settings")
	h.ExpectNoText("Welcome,")
}

func TestDashboardNestedLinks(t *testing.T) {
	h := mountApp(t, "/dashboard")

	assert.Equal(t, []string{"Dashboard"}, h.Texts("h1"))
	h.ExpectHTML(`href="/dashboard/profile"`)
	h.ExpectHTML(`href="/dashboard/settings"`)

	// A dashboard path the nested router does not know leaves the outlet empty.
	h.Navigate("/dashboard/unknown")
	assert.Equal(t, []string{"Dashboard"}, h.Texts("h1"))
	assert.False(t, h.NotFound())
}

func TestHomeLoginFlow(t *testing.T) {
	h := mountApp(t, "/")

	// Anonymous: placeholder card and the login form.
	h.ExpectText("No Previous Logins")
	h.ExpectText("No login history available.")
	h.ExpectText("Check me out")
	h.ExpectNoText("Modal title")

	h.Submit(map[string]string{
		"email":    "bodonnell@gmail.com",
		"name":     "Brian O'Donnell",
		"age":      "43",
		"password": "hunter2",
	})

	h.ExpectText("Modal title")
	h.ExpectText("Name: Brian O'Donnell")
	h.ExpectText("Age: 43")
	h.ExpectText("Email: bodonnell@gmail.com")
	h.ExpectHTML("Brian O&#39;Donnell")
	h.ExpectNoText("No Previous Logins")
	h.ExpectNoText("Check me out")

	// The history card lists the session.
	cards := h.Texts("p")
	assert.Contains(t, cards, "Brian O'Donnell")
	assert.Contains(t, cards, "bodonnell@gmail.com")
	assert.Contains(t, cards, "43")

	// Close logs out; history stays.
	h.Click("Close")
	h.ExpectNoText("Modal title")
	h.ExpectText("Check me out")
	h.ExpectText("Brian O'Donnell")
	h.ExpectNoText("No Previous Logins")
}

func TestHomeHistoryOrder(t *testing.T) {
	h := mountApp(t, "/")

	for _, name := range []string{"Ann", "Bob", "Cy"} {
		h.Submit(map[string]string{"name": name, "email": name + "@example.com", "age": "1"})
		h.Click("Close")
	}

	var names []string
	for _, p := range h.Texts("p") {
		switch p {
		case "Ann", "Bob", "Cy":
			names = append(names, p)
		}
	}
	assert.Equal(t, []string{"Ann", "Bob", "Cy"}, names)
}

func TestHomeHideKeepsSession(t *testing.T) {
	h := mountApp(t, "/")
	h.Submit(map[string]string{"name": "Ann", "email": "ann@example.com", "age": "30"})

	h.Click("×")
	h.ExpectNoText("Modal title")
	// Still logged in: the form stays hidden.
	h.ExpectNoText("Check me out")
}

func TestHomeAgeCoercion(t *testing.T) {
	h := mountApp(t, "/")
	h.Submit(map[string]string{"name": "Ann", "email": "a@b.c", "age": "abc"})
	h.ExpectText("Age: NaN")

	h.Click("Close")
	h.Submit(map[string]string{"name": "Bob", "email": "b@b.c", "age": " 0x1F "})
	h.ExpectText("Age: 31")
}

func TestHomeRemountStartsFresh(t *testing.T) {
	h := mountApp(t, "/")
	h.Submit(map[string]string{"name": "Ann", "email": "ann@example.com", "age": "30"})
	h.ExpectText("Name: Ann")

	h.Navigate("/about")
	h.Navigate("/")

	h.ExpectText("No Previous Logins")
	h.ExpectNoText("Ann")
}

func TestHomeStatePersistsWhileMounted(t *testing.T) {
	h := mountApp(t, "/")
	h.Submit(map[string]string{"name": "Ann", "email": "ann@example.com", "age": "30"})

	// Re-navigating to the mounted page keeps the provider.
	h.Navigate("/")
	h.ExpectText("Name: Ann")
}

func TestNavigateRelative(t *testing.T) {
	h := mountApp(t, "/dashboard/settings")

	h.Navigate("../profile/bob")
	require.Equal(t, "/dashboard/profile/bob", h.Location())
	h.ExpectText("Welcome, bob!")
}
