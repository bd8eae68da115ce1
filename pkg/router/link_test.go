package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/showcase/pkg/vango"
	"github.com/vango-dev/showcase/pkg/vdom"
)

func TestLinkAbsolute(t *testing.T) {
	root := vango.NewOwner(nil)
	a := Link(root, "/about", "About")

	assert.Equal(t, "a", a.Tag)
	assert.Equal(t, "/about", a.Props["href"])
	assert.Equal(t, "true", a.Props["data-link"])
	assert.Equal(t, "About", vdom.TextContent(a))
	assert.NotContains(t, a.Props, "aria-current")
}

func TestLinkRelativeToRouteBase(t *testing.T) {
	root := vango.NewOwner(nil)
	scope := root.Child("dash")
	StateContext.Provide(scope, State{Path: "/dashboard", Base: "/dashboard"})

	assert.Equal(t, "/dashboard/profile", Link(scope, "profile", "Profile").Props["href"])
	assert.Equal(t, "/dashboard/settings", Link(scope.Child("nav"), "settings").Props["href"])
	assert.Equal(t, "/", Link(scope, "..").Props["href"])
}

func TestLinkActive(t *testing.T) {
	root := vango.NewOwner(nil)
	nav, err := NewNavigator(root, "/contact")
	require.NoError(t, err)
	NavigatorContext.Provide(root, nav)

	active := Link(root, "/contact", "Contact")
	assert.Equal(t, "page", active.Props["aria-current"])
	assert.Equal(t, "active", active.Props["class"])

	other := Link(root, "/about", "About")
	assert.NotContains(t, other.Props, "aria-current")
}

func TestLinkInvalidTargetKeptVerbatim(t *testing.T) {
	root := vango.NewOwner(nil)
	assert.Equal(t, "https://example.com", Link(root, "https://example.com").Props["href"])
}
