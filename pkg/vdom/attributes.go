package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
// Example: Data("nav", "true") → data-nav="true"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaModal sets the aria-modal attribute.
func AriaModal(modal bool) Attr { return attr("aria-modal", modal) }

// AriaCurrent sets the aria-current attribute.
func AriaCurrent(value string) Attr { return attr("aria-current", value) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Charset sets the charset attribute.
func Charset(cs string) Attr { return attr("charset", cs) }

// Content sets the content attribute of a meta element.
func Content(c string) Attr { return attr("content", c) }

// Defer sets the defer attribute on a script element.
func Defer() Attr { return attr("defer", true) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Value sets the value attribute.
func Value(v string) Attr { return attr("value", v) }

// Placeholder sets the placeholder attribute.
func Placeholder(p string) Attr { return attr("placeholder", p) }

// For sets the for attribute of a label.
func For(id string) Attr { return attr("for", id) }

// Method sets the method attribute of a form.
func Method(m string) Attr { return attr("method", m) }

// Action sets the action attribute of a form.
func Action(url string) Attr { return attr("action", url) }

// Autocomplete sets the autocomplete attribute.
func Autocomplete(v string) Attr { return attr("autocomplete", v) }

// Checked sets the checked attribute.
func Checked(c bool) Attr { return attr("checked", c) }

// Disabled sets the disabled attribute.
func Disabled(d bool) Attr { return attr("disabled", d) }

// Open sets the open attribute of a dialog.
func Open(o bool) Attr { return attr("open", o) }

// Key creates a key attribute for reconciliation.
func Key(key string) Attr { return attr("key", key) }
