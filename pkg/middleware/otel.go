package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	vangoerrors "github.com/vango-dev/showcase/internal/errors"
	"github.com/vango-dev/showcase/pkg/server"
)

// Default tracer name for showcase servers.
const defaultTracerName = "showcase"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "showcase").
	TracerName string

	// TracerProvider creates the tracer. Default: the global provider.
	TracerProvider trace.TracerProvider

	// Propagator extracts trace context from request headers.
	// Default: the global propagator.
	Propagator propagation.TextMapPropagator

	// Filter determines which events to trace.
	// Return true to trace the event, false to skip.
	// If nil, all events are traced.
	Filter func(ev *server.Event) bool

	// AttributeExtractor adds custom attributes to each event span.
	AttributeExtractor func(ev *server.Event) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithPropagator sets the propagator used by TraceHTTP.
func WithPropagator(p propagation.TextMapPropagator) OTelOption {
	return func(c *OTelConfig) {
		c.Propagator = p
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(ev *server.Event) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ev *server.Event) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func newOTelConfig(opts []OTelOption) OTelConfig {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	if config.Propagator == nil {
		config.Propagator = otel.GetTextMapPropagator()
	}
	return config
}

// OpenTelemetry creates middleware that traces every instance event.
//
// The span is named after the event kind ("showcase.nav", "showcase.event",
// "showcase.load") and carried in the context passed down the chain. After
// the event runs, the resulting path, not-found flag and render size are
// added; errors are recorded with their code.
func OpenTelemetry(opts ...OTelOption) server.Middleware {
	config := newOTelConfig(opts)
	tracer := config.TracerProvider.Tracer(config.TracerName)

	return server.MiddlewareFunc(func(ctx context.Context, ev *server.Event, next func(context.Context) error) error {
		if config.Filter != nil && !config.Filter(ev) {
			return next(ctx)
		}

		attrs := []attribute.KeyValue{
			attribute.String("showcase.instance_id", ev.InstanceID),
			attribute.String("showcase.event_kind", string(ev.Kind)),
			attribute.String("showcase.transport", string(ev.Transport)),
		}
		if ev.Target != "" {
			attrs = append(attrs, attribute.String("showcase.target", ev.Target))
		}
		if ev.HID != "" {
			attrs = append(attrs,
				attribute.String("showcase.hid", ev.HID),
				attribute.String("showcase.event_name", ev.Name),
			)
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ev)...)
		}

		spanCtx, span := tracer.Start(ctx, "showcase."+string(ev.Kind),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		err := next(spanCtx)

		span.SetAttributes(
			attribute.String("showcase.path", ev.Path),
			attribute.Bool("showcase.not_found", ev.NotFound),
			attribute.Int("showcase.render_bytes", ev.Bytes),
		)
		if err != nil {
			if code := vangoerrors.Code(err); code != "" {
				span.SetAttributes(attribute.String("showcase.error_code", code))
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}

// TraceHTTP returns HTTP middleware that opens a server span per request,
// continuing the trace in the request headers. Once chi has matched, the
// span is renamed to "METHOD pattern".
func TraceHTTP(opts ...OTelOption) func(http.Handler) http.Handler {
	config := newOTelConfig(opts)
	tracer := config.TracerProvider.Tracer(config.TracerName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := config.Propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					span.SetName(r.Method + " " + p)
					span.SetAttributes(attribute.String("http.route", p))
				}
			}
			status := ww.Status()
			if status != 0 {
				span.SetAttributes(attribute.Int("http.status_code", status))
			}
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}
