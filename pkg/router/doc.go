// Package router matches navigation paths against nested route tables and
// renders the matched page into an owner scope.
//
// A Router holds patterns made of static segments, ":param" segments and a
// trailing "*name" catch-all. Matching prefers a static segment over a
// parameter over a catch-all at every level and backtracks when a more
// specific branch fails deeper down. A catch-all also matches zero segments,
// so "/dashboard/*" matches "/dashboard".
//
// Mount attaches a child router under a prefix. The child sees only the
// remainder of the path and applies the same algorithm independently:
//
//	dash := router.New().
//	    Page("profile/:username", Profile).
//	    Page("settings", Settings)
//
//	r := router.New().
//	    Page("/", Home).
//	    Mount("/dashboard", dash, DashboardLayout).
//	    NotFound(NotFoundPage)
//
// Routes renders one level. It provides the matched State through
// StateContext in a child scope keyed by the pattern, so moving to another
// route disposes the previous page's scope. The top level reads the location
// from the Navigator in NavigatorContext; nested levels read the remainder
// from their parent's State.
package router
