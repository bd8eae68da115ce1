package router

import (
	"sync/atomic"

	vangoerrors "github.com/vango-dev/showcase/internal/errors"
	"github.com/vango-dev/showcase/pkg/routepath"
	"github.com/vango-dev/showcase/pkg/vango"
)

// NavigateOptions configures navigation behavior.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// Navigator owns the current location of one instance. Its signal is the
// only place the location changes, and setting it marks the tree dirty.
type Navigator struct {
	loc      *vango.Signal[string]
	replace  atomic.Bool
	notFound atomic.Bool
}

// NavigatorContext carries the instance's Navigator.
var NavigatorContext = vango.CreateContext[*Navigator]("router.Navigator")

// NewNavigator creates a Navigator owned by o starting at initial.
func NewNavigator(o *vango.Owner, initial string) (*Navigator, error) {
	res, err := routepath.Resolve("/", initial)
	if err != nil {
		return nil, invalidPath(initial, err)
	}
	return &Navigator{loc: vango.NewSignal(o, res.String())}, nil
}

// UseNavigator returns the Navigator provided above o.
func UseNavigator(o *vango.Owner) (*Navigator, error) {
	return NavigatorContext.Use(o)
}

// Location returns the current path with its query string.
func (n *Navigator) Location() string {
	return n.loc.Get()
}

// Path returns the current path without the query string.
func (n *Navigator) Path() string {
	path, _ := routepath.SplitQuery(n.loc.Get())
	return path
}

// Navigate moves to to. A relative target resolves against the current
// path; the result is canonicalized. Navigating to the current location is
// a no-op.
func (n *Navigator) Navigate(to string, opts ...NavigateOption) error {
	var options NavigateOptions
	for _, opt := range opts {
		opt(&options)
	}

	res, err := routepath.Resolve(n.Path(), to)
	if err != nil {
		return invalidPath(to, err)
	}
	n.replace.Store(options.Replace)
	n.loc.Set(res.String())
	return nil
}

// Replaced reports whether the last navigation asked to replace the
// history entry.
func (n *Navigator) Replaced() bool {
	return n.replace.Load()
}

// NotFound reports whether the last top-level render fell through to the
// not-found page.
func (n *Navigator) NotFound() bool {
	return n.notFound.Load()
}

func (n *Navigator) setNotFound(v bool) {
	n.notFound.Store(v)
}

func invalidPath(path string, err error) error {
	return vangoerrors.New("E100").
		WithDetailf("cannot navigate to %q: %v", path, err).
		Wrap(err)
}
