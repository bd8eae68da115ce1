package router

import (
	"strings"

	vangoerrors "github.com/vango-dev/showcase/internal/errors"
	"github.com/vango-dev/showcase/pkg/routepath"
	"github.com/vango-dev/showcase/pkg/vango"
	"github.com/vango-dev/showcase/pkg/vdom"
)

// Router is one level of a route table. It is built once at startup and
// only read afterwards, so it is safe to share between instances.
type Router struct {
	root     *node
	notFound Handler
	routes   []route
}

// route records a registration for Walk.
type route struct {
	pattern string
	mount   *Router
}

// New creates an empty Router.
func New() *Router {
	return &Router{root: &node{}}
}

// Page registers handler for pattern. It panics with an E101 error on an
// invalid pattern or a parameter name that conflicts with an earlier
// registration.
func (r *Router) Page(pattern string, handler Handler) *Router {
	if handler == nil {
		panic(vangoerrors.New("E101").WithDetailf("nil handler for %q", pattern))
	}
	n, err := r.root.insert(pattern)
	if err != nil {
		panic(vangoerrors.New("E101").WithDetailf("pattern %q", pattern).Wrap(err))
	}
	if n.handler != nil {
		panic(vangoerrors.New("E101").WithDetailf("duplicate pattern %q (already %q)", pattern, n.pattern))
	}
	n.handler = handler
	n.pattern = pattern
	r.routes = append(r.routes, route{pattern: pattern})
	return r
}

// Mount registers child under prefix. Paths below prefix are matched by
// child against the remainder; layout, if not nil, wraps child's outlet.
func (r *Router) Mount(prefix string, child *Router, layout Layout) *Router {
	pattern := strings.TrimSuffix(prefix, "/") + "/*"
	r.Page(pattern, func(o *vango.Owner) *vdom.VNode {
		outlet := Routes(o.Child("outlet"), child)
		if layout == nil {
			return outlet
		}
		return layout(o, outlet)
	})
	r.routes[len(r.routes)-1].mount = child
	return r
}

// NotFound sets the handler rendered when nothing matches.
func (r *Router) NotFound(handler Handler) *Router {
	r.notFound = handler
	return r
}

// Match matches path against this level. The query string, if any, is
// ignored. When nothing matches it returns the not-found handler (which may
// be nil) and false.
func (r *Router) Match(path string) (Match, bool) {
	path, _, _ = strings.Cut(path, "?")
	segments := routepath.Split(path)

	params := make(Params)
	n, rest, ok := r.root.match(segments, params)
	if !ok {
		return Match{Handler: r.notFound, Params: Params{}, Base: "/", NotFound: true}, false
	}

	consumed := segments[:len(segments)-len(rest)]
	return Match{
		Pattern: n.pattern,
		Handler: n.handler,
		Params:  params,
		Base:    "/" + strings.Join(consumed, "/"),
		Rest:    strings.Join(rest, "/"),
	}, true
}

// Walk calls fn for every registered pattern in registration order,
// descending into mounted routers. Patterns of mounted routers are joined
// with their prefix; depth is 0 at the top level.
func (r *Router) Walk(fn func(pattern string, depth int)) {
	r.walk("", 0, fn)
}

func (r *Router) walk(prefix string, depth int, fn func(string, int)) {
	for _, rt := range r.routes {
		full := joinPattern(prefix, rt.pattern)
		fn(full, depth)
		if rt.mount != nil {
			rt.mount.walk(strings.TrimSuffix(full, "/*"), depth+1, fn)
		}
	}
}

// Patterns returns every registered pattern as Walk reports it.
func (r *Router) Patterns() []string {
	var out []string
	r.Walk(func(p string, _ int) { out = append(out, p) })
	return out
}

// joinPattern joins a mount prefix and a pattern without canonicalizing
// the ":" and "*" markers away.
func joinPattern(prefix, pattern string) string {
	if prefix == "" {
		if !strings.HasPrefix(pattern, "/") {
			return "/" + pattern
		}
		return pattern
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(pattern, "/")
}
