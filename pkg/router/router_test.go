package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vangoerrors "github.com/vango-dev/showcase/internal/errors"
	"github.com/vango-dev/showcase/pkg/vango"
	"github.com/vango-dev/showcase/pkg/vdom"
)

// page returns a handler rendering a paragraph with text.
func page(text string) Handler {
	return func(o *vango.Owner) *vdom.VNode { return vdom.P(text) }
}

func TestRouterMatchStatic(t *testing.T) {
	r := New().
		Page("/", page("home")).
		Page("/about", page("about")).
		Page("/contact", page("contact"))

	tests := []struct {
		path    string
		pattern string
	}{
		{"/", "/"},
		{"/about", "/about"},
		{"/contact", "/contact"},
		{"/About", "/about"},
		{"/contact?x=1", "/contact"},
	}
	for _, tt := range tests {
		m, ok := r.Match(tt.path)
		require.True(t, ok, tt.path)
		assert.Equal(t, tt.pattern, m.Pattern, tt.path)
		assert.False(t, m.NotFound)
	}
}

func TestRouterMatchParams(t *testing.T) {
	r := New().Page("profile/:username", page("p"))

	m, ok := r.Match("/profile/alice")
	require.True(t, ok)
	assert.Equal(t, "alice", m.Params.Get("username"))
	assert.Equal(t, "/profile/alice", m.Base)
	assert.Empty(t, m.Rest)

	m, ok = r.Match("/profile/a%20b")
	require.True(t, ok)
	assert.Equal(t, "a b", m.Params.Get("username"))

	_, ok = r.Match("/profile")
	assert.False(t, ok)
	_, ok = r.Match("/profile/alice/extra")
	assert.False(t, ok)
}

func TestRouterMatchCatchAll(t *testing.T) {
	r := New().Page("/dashboard/*", page("dash"))

	m, ok := r.Match("/dashboard/profile/alice")
	require.True(t, ok)
	assert.Equal(t, "profile/alice", m.Rest)
	assert.Equal(t, "profile/alice", m.Params.Get("*"))
	assert.Equal(t, "/dashboard", m.Base)

	m, ok = r.Match("/dashboard")
	require.True(t, ok, "a catch-all matches the empty remainder")
	assert.Empty(t, m.Rest)
	assert.Equal(t, "/dashboard", m.Base)
}

func TestRouterNamedCatchAll(t *testing.T) {
	r := New().Page("/files/*path", page("files"))

	m, ok := r.Match("/files/a/b.txt")
	require.True(t, ok)
	assert.Equal(t, "a/b.txt", m.Params.Get("path"))
}

func TestRouterSpecificity(t *testing.T) {
	r := New().
		Page("/users/*", page("wild")).
		Page("/users/:id", page("param")).
		Page("/users/new", page("static"))

	m, _ := r.Match("/users/new")
	assert.Equal(t, "/users/new", m.Pattern)

	m, _ = r.Match("/users/42")
	assert.Equal(t, "/users/:id", m.Pattern)
	assert.Equal(t, "42", m.Params.Get("id"))

	m, _ = r.Match("/users/42/posts")
	assert.Equal(t, "/users/*", m.Pattern)
	assert.Equal(t, "42/posts", m.Rest)
	assert.Empty(t, m.Params.Get("id"), "params of a failed branch are dropped")
}

func TestRouterBacktracking(t *testing.T) {
	r := New().
		Page("/a/b/c", page("static")).
		Page("/a/:x/d", page("param"))

	m, ok := r.Match("/a/b/d")
	require.True(t, ok)
	assert.Equal(t, "/a/:x/d", m.Pattern)
	assert.Equal(t, "b", m.Params.Get("x"))
}

func TestRouterNoMatch(t *testing.T) {
	nf := page("404")
	r := New().Page("/about", page("about")).NotFound(nf)

	m, ok := r.Match("/nope")
	assert.False(t, ok)
	assert.True(t, m.NotFound)
	require.NotNil(t, m.Handler)

	bare := New().Page("/about", page("about"))
	m, ok = bare.Match("/nope")
	assert.False(t, ok)
	assert.Nil(t, m.Handler)
}

func TestRouterInvalidPatterns(t *testing.T) {
	assert.Panics(t, func() { New().Page("/a/*/b", page("x")) })
	assert.Panics(t, func() { New().Page("/a/:", page("x")) })
	assert.Panics(t, func() { New().Page("/a/:id", page("x")).Page("/a/:name/b", page("y")) })
	assert.Panics(t, func() { New().Page("/a", page("x")).Page("/a", page("y")) })
	assert.Panics(t, func() { New().Page("/a", nil) })
}

func TestRouterPagePanicsWithCode(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok, "panic value %T", r)
		assert.Equal(t, "E101", vangoerrors.Code(err))
		assert.Contains(t, err.Error(), `duplicate pattern "/a/:name"`)
	}()
	New().Page("/a/:name", page("x")).Page("/a/:name", page("y"))
}

func TestRouterWalk(t *testing.T) {
	dash := New().
		Page("profile/:username", page("profile")).
		Page("settings", page("settings"))
	r := New().
		Page("/", page("home")).
		Page("/about", page("about")).
		Mount("/dashboard", dash, nil)

	var depths []int
	r.Walk(func(_ string, depth int) { depths = append(depths, depth) })

	assert.Equal(t, []string{
		"/",
		"/about",
		"/dashboard/*",
		"/dashboard/profile/:username",
		"/dashboard/settings",
	}, r.Patterns())
	assert.Equal(t, []int{0, 0, 0, 1, 1}, depths)
}
