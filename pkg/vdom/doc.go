// Package vdom implements the virtual DOM used by showcase components.
//
// Components build a tree of *VNode values with the element constructors in
// this package; the render package turns that tree into HTML. Event handlers
// are attached as props (onsubmit, onclick) and are never rendered; the
// renderer assigns each interactive element a hydration ID (HID) instead so
// that client events can be routed back to the handler.
//
// Usage:
//
//	Div(Class("card"),
//	    H1(Text("Home")),
//	    Form(OnSubmit(func(f FormData) { ... }),
//	        Input(Type("text"), Name("name")),
//	        Button(Type("submit"), Text("Submit")),
//	    ),
//	)
package vdom
