// Package errors provides structured, coded errors for showcase.
//
// Every error that crosses a package boundary and that a caller may want to
// branch on carries a short code (e.g. "E001") registered in this package.
// The code maps to a category, a one-line message and a longer detail.
//
// # Error Categories
//
//   - runtime: component tree misuse (reading a store outside its provider)
//   - protocol: malformed or stale client frames
//   - routing: paths that cannot be canonicalized
//   - session: instance lookup and admission
//   - config: configuration loading and validation
//
// # Usage
//
//	err := errors.New("E001").
//	    WithDetail("useUser must be used within a UserProvider").
//	    Wrap(vango.ErrNoProvider)
//
//	if errors.Is(err, vango.ErrNoProvider) { ... }
//	fmt.Fprint(os.Stderr, err.Pretty(true))
package errors
