package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler func()) EventHandler { return event("click", handler) }

// OnSubmit handles form submit events. The handler receives the submitted
// form fields.
func OnSubmit(handler func(FormData)) EventHandler { return event("submit", handler) }
