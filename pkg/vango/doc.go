// Package vango provides the reactive core of the showcase runtime.
//
// # Owners
//
// An Owner is a scope in the component tree. Components receive their owner
// explicitly and create child scopes with Child, keyed by a name that is
// stable across renders:
//
//	func Page(o *vango.Owner) *vdom.VNode {
//	    nav := components.NavBar(o.Child("nav"))
//	    ...
//	}
//
// Between BeginRender and EndRender on the root, every keyed child that is
// visited survives; the rest are disposed. Disposing a scope runs its
// OnCleanup callbacks and drops its values, which is how a page that is
// navigated away from loses its state.
//
// # Signals
//
// Signal[T] is a value container bound to an owner. Setting a different value
// marks the root dirty. TakeDirty reads and clears the flag; an event whose
// handler changed nothing is not re-rendered:
//
//	count := vango.Slot(o, "count", func() *vango.Signal[int] {
//	    return vango.NewSignal(o, 0)
//	})
//	count.Update(func(n int) int { return n + 1 })
//
// # Contexts
//
// Context[T] passes a value down the owner tree. Use returns ErrNoProvider
// when no ancestor provided a value:
//
//	var Theme = vango.CreateContext[string]("Theme")
//
//	Theme.Provide(o, "dark")
//	theme, err := Theme.Use(o.Child("button"))
//
// # Thread Safety
//
// Owners and signals are safe for concurrent use, but a tree is meant to be
// driven by one event loop at a time. The server serializes each instance.
package vango
