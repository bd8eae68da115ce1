package vango

import (
	"sync"
	"sync/atomic"
)

// Owner represents a component scope. When an Owner is disposed, its child
// owners are disposed first (last created first), then its cleanups run in
// reverse registration order.
//
// Owners form a hierarchy that mirrors the component tree. The root owner
// belongs to one live instance and tracks whether any signal below it changed.
type Owner struct {
	id     uint64
	key    string
	parent *Owner

	mu       sync.Mutex
	children []*Owner
	byKey    map[string]*Owner
	cleanups []func()
	values   map[any]any
	slots    map[any]any

	// seen is the root epoch of the last render that visited this scope.
	seen atomic.Uint64

	disposed atomic.Bool

	// Root-only state.
	epoch     atomic.Uint64
	rendering atomic.Bool
	dirty     atomic.Bool
}

// NewOwner creates a new Owner with the given parent. Owners created this
// way are not subject to render sweeping; they live until they or their
// parent are disposed. If parent is nil, creates a root Owner.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{id: nextID(), parent: parent}
	if parent != nil {
		parent.addChild(o)
	}
	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Key returns the key this scope was created under, or "" for unkeyed scopes.
func (o *Owner) Key() string {
	return o.key
}

// Parent returns the parent Owner, or nil if this is a root Owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed returns true if this Owner has been disposed.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

// Child returns the child scope stored under key, creating it if needed.
// Calling Child during a render marks the scope as visited. A disposed
// owner hands out detached scopes that are already disposed.
func (o *Owner) Child(key string) *Owner {
	epoch := o.root().epoch.Load()

	o.mu.Lock()
	if o.disposed.Load() {
		o.mu.Unlock()
		c := &Owner{id: nextID(), key: key, parent: o}
		c.disposed.Store(true)
		return c
	}
	if c, ok := o.byKey[key]; ok && !c.disposed.Load() {
		c.seen.Store(epoch)
		o.mu.Unlock()
		return c
	}
	c := &Owner{id: nextID(), key: key, parent: o}
	c.seen.Store(epoch)
	if o.byKey == nil {
		o.byKey = make(map[string]*Owner)
	}
	o.byKey[key] = c
	o.children = append(o.children, c)
	o.mu.Unlock()
	return c
}

// Lookup returns the live child scope stored under key without marking it.
func (o *Owner) Lookup(key string) (*Owner, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	c, ok := o.byKey[key]
	if !ok || c.disposed.Load() {
		return nil, false
	}
	return c, true
}

// Children returns a snapshot of the live child scopes in creation order.
func (o *Owner) Children() []*Owner {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*Owner, 0, len(o.children))
	for _, c := range o.children {
		if !c.disposed.Load() {
			out = append(out, c)
		}
	}
	return out
}

// addChild registers an unkeyed child Owner.
func (o *Owner) addChild(child *Owner) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.children = append(o.children, child)
}

// removeChild removes a child Owner from this Owner's children.
func (o *Owner) removeChild(child *Owner) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			break
		}
	}
	if child.key != "" && o.byKey[child.key] == child {
		delete(o.byKey, child.key)
	}
}

// root walks up to the root Owner.
func (o *Owner) root() *Owner {
	r := o
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Root returns the root of this Owner's tree.
func (o *Owner) Root() *Owner {
	return o.root()
}

// OnCleanup registers a cleanup function to run when this Owner is disposed.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		// Already disposed, run cleanup immediately
		fn()
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// SetValue sets a value on this Owner.
func (o *Owner) SetValue(key, value any) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.values == nil {
		o.values = make(map[any]any)
	}
	o.values[key] = value
}

// GetValue retrieves a value from this Owner or its parents.
func (o *Owner) GetValue(key any) (any, bool) {
	for cur := o; cur != nil; cur = cur.parent {
		cur.mu.Lock()
		val, ok := cur.values[key]
		cur.mu.Unlock()
		if ok {
			return val, true
		}
	}
	return nil, false
}

// Slot returns the value stored in o under key, calling init to create it
// the first time. The value lives as long as the scope, which gives a
// component state that survives re-renders but not unmounting.
func Slot[T any](o *Owner, key any, init func() T) T {
	o.mu.Lock()
	if v, ok := o.slots[key]; ok {
		o.mu.Unlock()
		return v.(T)
	}
	o.mu.Unlock()

	// init runs unlocked so it may create signals or child scopes on o.
	v := init()

	o.mu.Lock()
	defer o.mu.Unlock()
	if existing, ok := o.slots[key]; ok {
		return existing.(T)
	}
	if o.slots == nil {
		o.slots = make(map[any]any)
	}
	o.slots[key] = v
	return v
}

// Dispose disposes this Owner and all its children and runs its cleanups.
// After disposal, the Owner cannot be used.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.mu.Lock()
	children := o.children
	o.children = nil
	o.byKey = nil
	o.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.mu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.values = nil
	o.slots = nil
	o.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// =============================================================================
// Render Cycle
// =============================================================================

// BeginRender starts a render pass on the root of o's tree. Keyed scopes
// that are not requested through Child before EndRender are disposed.
func (o *Owner) BeginRender() {
	r := o.root()
	r.epoch.Add(1)
	r.rendering.Store(true)
}

// EndRender finishes the render pass started by BeginRender and disposes
// the keyed scopes that were not visited.
func (o *Owner) EndRender() {
	r := o.root()
	if !r.rendering.Swap(false) {
		return
	}
	r.sweep(r.epoch.Load())
}

// AbortRender ends the current render pass without disposing anything.
// Used when a render fails part way and the visit marks are incomplete.
func (o *Owner) AbortRender() {
	o.root().rendering.Store(false)
}

// Rendering reports whether a render pass is in progress on o's tree.
func (o *Owner) Rendering() bool {
	return o.root().rendering.Load()
}

// sweep disposes keyed descendants whose last visit is older than epoch.
func (o *Owner) sweep(epoch uint64) {
	o.mu.Lock()
	children := append([]*Owner(nil), o.children...)
	o.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		if c.key != "" && c.seen.Load() != epoch {
			c.Dispose()
			continue
		}
		c.sweep(epoch)
	}
}

// =============================================================================
// Change Tracking
// =============================================================================

// markDirty flags the root as needing a render.
func (o *Owner) markDirty() {
	o.root().dirty.Store(true)
}

// TakeDirty reports whether a signal changed and clears the flag.
func (o *Owner) TakeDirty() bool {
	return o.root().dirty.Swap(false)
}
