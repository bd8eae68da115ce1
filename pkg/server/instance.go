package server

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	vangoerrors "github.com/vango-dev/showcase/internal/errors"
	"github.com/vango-dev/showcase/pkg/render"
	"github.com/vango-dev/showcase/pkg/router"
	"github.com/vango-dev/showcase/pkg/vango"
	"github.com/vango-dev/showcase/pkg/vdom"
)

// Root renders the whole application for one instance.
type Root func(o *vango.Owner) *vdom.VNode

// Instance is the live state of one browser: its owner tree, location and
// the handlers of the last render. All methods are safe for concurrent use;
// work is serialized.
type Instance struct {
	id string

	mu       sync.Mutex
	owner    *vango.Owner
	nav      *router.Navigator
	root     Root
	config   render.RendererConfig
	handlers map[string]any
	html     string
	rendered bool
	closed   bool

	connMu sync.Mutex
	conn   *websocket.Conn
}

// NewInstance creates an instance at location. Nothing is rendered until
// Render, Navigate or Dispatch is called.
func NewInstance(id string, root Root, location string, config render.RendererConfig) (*Instance, error) {
	owner := vango.NewOwner(nil)
	nav, err := router.NewNavigator(owner, location)
	if err != nil {
		owner.Dispose()
		return nil, err
	}
	router.NavigatorContext.Provide(owner, nav)

	return &Instance{
		id:       id,
		owner:    owner,
		nav:      nav,
		root:     root,
		config:   config,
		handlers: make(map[string]any),
	}, nil
}

// ID returns the instance ID.
func (i *Instance) ID() string {
	return i.id
}

// Owner returns the root of the instance's owner tree.
func (i *Instance) Owner() *vango.Owner {
	return i.owner
}

// Location returns the current path and query.
func (i *Instance) Location() string {
	return i.nav.Location()
}

// NotFound reports whether the last render showed the not-found page.
func (i *Instance) NotFound() bool {
	return i.nav.NotFound()
}

// HTML returns the body of the last render.
func (i *Instance) HTML() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.html
}

// Render renders the application at the current location.
func (i *Instance) Render() (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.renderLocked()
}

// Navigate moves to to and renders. Relative targets resolve against the
// current path.
func (i *Instance) Navigate(to string, opts ...router.NavigateOption) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return "", closedError(i.id)
	}
	if err := i.nav.Navigate(to, opts...); err != nil {
		return "", err
	}
	return i.renderLocked()
}

// Dispatch runs the handler registered for hid and event in the last render
// and renders again if the handler changed any signal. changed is false
// when it did not; html is then the previous render. Click handlers take no
// arguments; submit handlers get the form values.
func (i *Instance) Dispatch(hid, event string, form vdom.FormData) (html string, changed bool, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return "", false, closedError(i.id)
	}
	if !i.rendered {
		if _, err := i.renderLocked(); err != nil {
			return "", false, err
		}
	}

	h, ok := i.handlers[render.HandlerKey(hid, event)]
	if !ok {
		return "", false, vangoerrors.New("E009").
			WithDetailf("no %s handler for %s in the current render", event, hid).
			WithSuggestion("Reload the page; the element may have been removed by a later render.")
	}
	if err := invoke(h, form); err != nil {
		return "", false, err
	}
	if !i.owner.TakeDirty() {
		return i.html, false, nil
	}
	html, err = i.renderLocked()
	return html, err == nil, err
}

// Replaced reports whether the last navigation replaced the history entry
// instead of adding one.
func (i *Instance) Replaced() bool {
	return i.nav.Replaced()
}

// Close disposes the owner tree and drops the live connection. It is
// idempotent.
func (i *Instance) Close() {
	i.mu.Lock()
	if i.closed {
		i.mu.Unlock()
		return
	}
	i.closed = true
	i.handlers = nil
	i.mu.Unlock()

	i.owner.Dispose()

	i.connMu.Lock()
	conn := i.conn
	i.conn = nil
	i.connMu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}

// attach makes conn the instance's live connection, closing any previous one.
func (i *Instance) attach(conn *websocket.Conn) {
	i.connMu.Lock()
	prev := i.conn
	i.conn = conn
	i.connMu.Unlock()
	if prev != nil && prev != conn {
		_ = prev.Close()
	}
}

// detach clears conn if it is still the live connection.
func (i *Instance) detach(conn *websocket.Conn) {
	i.connMu.Lock()
	if i.conn == conn {
		i.conn = nil
	}
	i.connMu.Unlock()
}

func (i *Instance) renderLocked() (html string, err error) {
	if i.closed {
		return "", closedError(i.id)
	}

	i.owner.BeginRender()
	defer func() {
		if r := recover(); r != nil {
			html = ""
			err = vangoerrors.New("E002").WithDetailf("render of %s: %v", i.nav.Location(), r)
		}
		if err != nil {
			i.owner.AbortRender()
			return
		}
		i.owner.EndRender()
	}()

	node := i.root(i.owner)
	r := render.NewRenderer(i.config)
	out, err := r.RenderToString(node)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", i.nav.Location(), err)
	}

	i.handlers = r.Handlers()
	i.html = out
	i.rendered = true
	// Signals set while rendering are already reflected in out.
	i.owner.TakeDirty()
	return out, nil
}

// invoke calls a registered handler with the arguments its type accepts.
func invoke(h any, form vdom.FormData) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = vangoerrors.New("E003").WithDetailf("%v", r)
		}
	}()

	switch fn := h.(type) {
	case func():
		fn()
	case func(vdom.FormData):
		if form == nil {
			form = vdom.FormData{}
		}
		fn(form)
	case func() error:
		return fn()
	case func(vdom.FormData) error:
		if form == nil {
			form = vdom.FormData{}
		}
		return fn(form)
	default:
		return vangoerrors.New("E061").WithDetailf("handler of type %T", h)
	}
	return nil
}

func closedError(id string) error {
	return vangoerrors.New("E010").WithDetailf("instance %s is closed", id)
}
