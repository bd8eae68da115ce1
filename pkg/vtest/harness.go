package vtest

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/showcase/pkg/render"
	"github.com/vango-dev/showcase/pkg/server"
	"github.com/vango-dev/showcase/pkg/vango"
	"github.com/vango-dev/showcase/pkg/vdom"
)

// Harness drives one mounted instance. Every step renders, and a failing
// step stops the test.
type Harness struct {
	t    testing.TB
	inst *server.Instance
	html string
}

// Mount creates an instance of root at path and renders it. The instance is
// closed when the test ends.
func Mount(t testing.TB, root server.Root, path string) *Harness {
	t.Helper()
	inst, err := server.NewInstance("vtest", root, path, render.RendererConfig{EventPath: server.EventPath})
	if err != nil {
		t.Fatalf("vtest: mount %s: %v", path, err)
	}
	t.Cleanup(inst.Close)

	h := &Harness{t: t, inst: inst}
	html, err := inst.Render()
	if err != nil {
		t.Fatalf("vtest: render %s: %v", path, err)
	}
	h.html = html
	return h
}

// MountComponent mounts a single component at "/".
func MountComponent(t testing.TB, component func(o *vango.Owner) *vdom.VNode) *Harness {
	t.Helper()
	return Mount(t, component, "/")
}

// Instance returns the underlying instance.
func (h *Harness) Instance() *server.Instance {
	return h.inst
}

// Navigate moves to to, which may be relative to the current path.
func (h *Harness) Navigate(to string) *Harness {
	h.t.Helper()
	html, err := h.inst.Navigate(to)
	if err != nil {
		h.t.Fatalf("vtest: navigate %s: %v", to, err)
	}
	h.html = html
	return h
}

// Click runs the click handler of the first element whose text is label.
func (h *Harness) Click(label string) *Harness {
	h.t.Helper()
	hid := h.find(func(n *html.Node) bool {
		return hasAttr(n, "data-on-click") && textContent(n) == label
	})
	if hid == "" {
		h.t.Fatalf("vtest: no clickable element with text %q in:\n%s", label, truncate(h.html, 2000))
	}
	return h.dispatch(hid, "click", nil)
}

// Submit fills and submits the first form that has a submit handler.
// Fields not given are submitted empty.
func (h *Harness) Submit(fields map[string]string) *Harness {
	h.t.Helper()
	var form *html.Node
	walk(h.doc(), func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "form" && hasAttr(n, "data-on-submit") {
			form = n
			return false
		}
		return true
	})
	if form == nil {
		h.t.Fatalf("vtest: no form with a submit handler in:\n%s", truncate(h.html, 2000))
	}

	data := vdom.FormData{}
	walk(form, func(n *html.Node) bool {
		if n.Type == html.ElementNode && (n.Data == "input" || n.Data == "textarea" || n.Data == "select") {
			if name, ok := getAttr(n, "name"); ok {
				data[name] = ""
			}
		}
		return true
	})
	for k, v := range fields {
		data[k] = v
	}

	hid, _ := getAttr(form, "data-hid")
	return h.dispatch(hid, "submit", data)
}

func (h *Harness) dispatch(hid, event string, data vdom.FormData) *Harness {
	h.t.Helper()
	html, _, err := h.inst.Dispatch(hid, event, data)
	if err != nil {
		h.t.Fatalf("vtest: %s on %s: %v", event, hid, err)
	}
	h.html = html
	return h
}

// HTML returns the last rendered body.
func (h *Harness) HTML() string {
	return h.html
}

// Text returns the visible text of the last render with whitespace
// collapsed and entities decoded.
func (h *Harness) Text() string {
	return textContent(h.doc())
}

// Texts returns the text of every element with tag, in document order.
func (h *Harness) Texts(tag string) []string {
	var out []string
	walk(h.doc(), func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, textContent(n))
		}
		return true
	})
	return out
}

// Location returns the instance's current path and query.
func (h *Harness) Location() string {
	return h.inst.Location()
}

// NotFound reports whether the last render showed the not-found page.
func (h *Harness) NotFound() bool {
	return h.inst.NotFound()
}

// ExpectText asserts that the visible text contains s.
func (h *Harness) ExpectText(s string) *Harness {
	h.t.Helper()
	if text := h.Text(); !strings.Contains(text, s) {
		h.t.Errorf("expected text to contain %q, got:\n%s", s, truncate(text, 1000))
	}
	return h
}

// ExpectNoText asserts that the visible text does not contain s.
func (h *Harness) ExpectNoText(s string) *Harness {
	h.t.Helper()
	if text := h.Text(); strings.Contains(text, s) {
		h.t.Errorf("expected text to NOT contain %q, got:\n%s", s, truncate(text, 1000))
	}
	return h
}

// ExpectHTML asserts that the rendered HTML contains s.
func (h *Harness) ExpectHTML(s string) *Harness {
	h.t.Helper()
	if !strings.Contains(h.html, s) {
		h.t.Errorf("expected HTML to contain %q, got:\n%s", s, truncate(h.html, 1000))
	}
	return h
}

func (h *Harness) doc() *html.Node {
	h.t.Helper()
	doc, err := html.Parse(strings.NewReader(h.html))
	if err != nil {
		h.t.Fatalf("vtest: parse render: %v", err)
	}
	return doc
}

// find returns the data-hid of the first element matching pred.
func (h *Harness) find(pred func(*html.Node) bool) string {
	var hid string
	walk(h.doc(), func(n *html.Node) bool {
		if n.Type == html.ElementNode && pred(n) {
			hid, _ = getAttr(n, "data-hid")
			return false
		}
		return true
	})
	return hid
}

// walk visits n and its descendants depth first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := getAttr(n, key)
	return ok
}

// inline elements do not separate words in textContent.
var inline = map[string]bool{
	"a": true, "b": true, "code": true, "em": true, "i": true,
	"label": true, "small": true, "span": true, "strong": true,
}

// textContent returns the text under n roughly as a browser lays it out:
// block elements separate words, inline ones do not.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if !inline[n.Data] {
				sb.WriteByte(' ')
				defer sb.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
