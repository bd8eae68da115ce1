// Package server delivers a component tree to browsers.
//
// Every browser gets one Instance, bound by a cookie. An Instance owns the
// component owner tree, the current location and the event handlers of its
// last render, and serializes all work on them under one mutex.
//
// Work reaches an Instance three ways:
//
//   - GET of any page path renders the full HTML document.
//   - The thin client keeps a WebSocket at /_showcase/live and sends
//     navigation and event frames; each is answered with the new body.
//   - Without JavaScript, forms post to /_showcase/event and the browser is
//     redirected back to the current location.
//
// Every navigation and event passes through the Middleware chain, which is
// where metrics and tracing hook in.
package server
