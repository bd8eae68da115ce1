// Package middleware provides observability for a showcase server.
//
// Metrics collects Prometheus metrics for instance events, the instance
// lifecycle and HTTP requests:
//
//	reg := prometheus.NewRegistry()
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	srv := server.New(cfg, root,
//	    server.WithMiddleware(m.Middleware()),
//	    server.WithObserver(m),
//	    server.WithHTTPMiddleware(m.HTTP),
//	    server.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
//	)
//
// OpenTelemetry opens a span per instance event and TraceHTTP a span per
// request, continuing any trace carried in the request headers. Both use the
// global tracer provider unless WithTracerProvider is given; configure it in
// main before starting the server.
package middleware
