// Package vtest provides testing helpers for showcase components.
//
// Render assertions work on a single VNode:
//
//	vtest.ExpectContains(t, Greeting("alice"), "Welcome, alice!")
//
// A Harness mounts a whole application in a live server.Instance and drives
// it the way a browser would, without HTTP:
//
//	h := vtest.Mount(t, routes.App(routes.Router()), "/")
//	h.Submit(map[string]string{"name": "Ann", "email": "ann@example.com", "age": "30"})
//	h.ExpectText("Name: Ann")
//	h.Click("Close")
//	h.Navigate("/dashboard/profile/alice").ExpectText("Welcome, alice!")
//
// Click and Submit find their targets in the rendered HTML by the same
// data-on-* markers the thin client uses, so a handler is reachable in a test
// only if it is reachable in a browser.
package vtest
