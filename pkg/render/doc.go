// Package render provides server-side rendering of VNode trees to HTML.
//
// The renderer escapes all text and attribute values, assigns a hydration ID
// (data-hid) to every element that carries an event handler, and records the
// handlers in a registry keyed by "<hid>_<event>" so the server can dispatch
// client events back to the Go function that the last render produced.
//
// Forms with an onsubmit handler also get method="post" and an action that
// points at the event endpoint, so they keep working without JavaScript.
//
// Usage:
//
//	r := render.NewRenderer(render.RendererConfig{EventPath: "/_showcase/event"})
//	html, err := r.RenderToString(tree)
//	fn, ok := r.Handler("h1", "submit")
package render
