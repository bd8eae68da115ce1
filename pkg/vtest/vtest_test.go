package vtest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/showcase/pkg/router"
	"github.com/vango-dev/showcase/pkg/vango"
	"github.com/vango-dev/showcase/pkg/vdom"
)

func TestRenderToString(t *testing.T) {
	node := vdom.Div(vdom.Class("card"), vdom.H5("Title"), vdom.P("O'Brien"))

	html := RenderToString(node)
	assert.Equal(t, `<div class="card"><h5>Title</h5><p>O&#39;Brien</p></div>`, html)

	ExpectContains(t, node, "<h5>Title</h5>")
	ExpectNotContains(t, node, "<button")
	ExpectElement(t, node, "p")
	ExpectAttribute(t, node, "class", "card")
}

func counter(o *vango.Owner) *vdom.VNode {
	count := vango.Slot(o, "count", func() *vango.Signal[int] { return vango.NewSignal(o, 0) })
	greeting := vango.Slot(o, "greeting", func() *vango.Signal[string] { return vango.NewSignal(o, "") })

	return vdom.Div(
		vdom.P(fmt.Sprintf("Count: %d", count.Get())),
		vdom.P("Hello, ", vdom.Strong(greeting.Get()), "!"),
		vdom.Button(vdom.OnClick(func() { count.Update(func(n int) int { return n + 1 }) }), "Add"),
		vdom.Button(vdom.OnClick(func() { count.Set(0) }), "Reset"),
		vdom.Form(
			vdom.OnSubmit(func(fd vdom.FormData) {
				greeting.Set(fd.Get("first") + fd.Get("last"))
			}),
			vdom.Input(vdom.Name("first")),
			vdom.Input(vdom.Name("last")),
		),
	)
}

func TestHarnessClick(t *testing.T) {
	h := MountComponent(t, counter)
	h.ExpectText("Count: 0")

	h.Click("Add").Click("Add")
	h.ExpectText("Count: 2")

	h.Click("Reset").ExpectText("Count: 0")
}

func TestHarnessSubmit(t *testing.T) {
	h := MountComponent(t, counter)

	h.Submit(map[string]string{"first": "Ann"})
	h.ExpectText("Hello, Ann!")
	h.ExpectHTML("<strong>Ann</strong>")
}

func TestHarnessTexts(t *testing.T) {
	h := MountComponent(t, counter)

	assert.Equal(t, []string{"Count: 0", "Hello, !"}, h.Texts("p"))
	assert.Equal(t, []string{"Add", "Reset"}, h.Texts("button"))
}

func TestHarnessNavigate(t *testing.T) {
	r := router.New().
		Page("/", func(o *vango.Owner) *vdom.VNode { return vdom.H1("Home") }).
		Page("/users/:name", func(o *vango.Owner) *vdom.VNode {
			return vdom.H1(fmt.Sprintf("User %s", router.Param(o, "name")))
		}).
		NotFound(func(o *vango.Owner) *vdom.VNode { return vdom.H1("Nope") })
	root := func(o *vango.Owner) *vdom.VNode { return router.Routes(o.Child("routes"), r) }

	h := Mount(t, root, "/")
	h.ExpectText("Home")
	assert.False(t, h.NotFound())

	h.Navigate("/users/bob").ExpectText("User bob")
	assert.Equal(t, "/users/bob", h.Location())

	h.Navigate("../ann").ExpectText("User ann")
	assert.Equal(t, "/users/ann", h.Location())

	h.Navigate("/missing").ExpectText("Nope")
	assert.True(t, h.NotFound())
	require.NotNil(t, h.Instance())
}

func TestTextContentSeparatesBlocks(t *testing.T) {
	h := MountComponent(t, func(o *vango.Owner) *vdom.VNode {
		return vdom.Div(vdom.H1("Home"), vdom.P("About"), vdom.A(vdom.Href("/"), "x"), vdom.Span("y"))
	})
	assert.Equal(t, "Home About xy", h.Text())
	h.ExpectNoText("HomeAbout")
}
