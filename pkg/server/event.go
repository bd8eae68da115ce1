package server

import "context"

// EventKind classifies work done on an instance.
type EventKind string

const (
	// KindLoad is a full page render for a GET request.
	KindLoad EventKind = "load"
	// KindNavigate moves the instance to a new location.
	KindNavigate EventKind = "nav"
	// KindEvent runs a UI event handler.
	KindEvent EventKind = "event"
)

// Transport names how an event reached the server.
type Transport string

const (
	TransportHTTP      Transport = "http"
	TransportWebSocket Transport = "websocket"
	TransportLocal     Transport = "local"
)

// Event describes one unit of work passed through the middleware chain.
// Path, NotFound and Bytes are filled in once the work has run.
type Event struct {
	InstanceID string
	Kind       EventKind
	Transport  Transport

	// Target is the requested location for KindLoad and KindNavigate.
	Target string

	// HID and Name identify the handler for KindEvent.
	HID  string
	Name string

	// Path is the instance location after the work ran.
	Path string

	// NotFound reports that Path rendered the not-found page.
	NotFound bool

	// Bytes is the size of the rendered body.
	Bytes int
}

// Middleware wraps the handling of an Event. Implementations must call next
// to let the work run and should return its error.
type Middleware interface {
	Handle(ctx context.Context, ev *Event, next func(context.Context) error) error
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(ctx context.Context, ev *Event, next func(context.Context) error) error

// Handle calls f.
func (f MiddlewareFunc) Handle(ctx context.Context, ev *Event, next func(context.Context) error) error {
	return f(ctx, ev, next)
}

// chain composes mws around final; mws[0] runs outermost.
func chain(mws []Middleware, ev *Event, final func(context.Context) error) func(context.Context) error {
	next := final
	for i := len(mws) - 1; i >= 0; i-- {
		mw, inner := mws[i], next
		next = func(ctx context.Context) error {
			return mw.Handle(ctx, ev, inner)
		}
	}
	return next
}

// Observer is told about instance lifecycle and transport failures.
type Observer interface {
	InstanceCreated()
	InstanceClosed(reason string)
	WebSocketError(kind string)
}
