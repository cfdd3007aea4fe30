package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/bnema/seedy"

// Metrics holds seedy's OTel instruments.
type Metrics struct {
	// Queue
	MessagesReceived metric.Int64Counter
	MessagesAcked    metric.Int64Counter
	AckErrors        metric.Int64Counter
	ReceiveErrors    metric.Int64Counter
	InFlight         metric.Int64UpDownCounter

	// Pipeline
	EventsProcessed metric.Int64Counter // attribute "stage"
	EventsFailed    metric.Int64Counter // attribute "reason"
	ProcessDuration metric.Float64Histogram

	// Dispatch
	ServiceUpdates metric.Int64Counter // attribute "status"
}

// NewMetrics creates and registers all metric instruments.
// OTel returns noop instruments when no MeterProvider is set, so the
// result is always safe to use.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)
	m := &Metrics{}
	var err error

	if m.MessagesReceived, err = meter.Int64Counter("seedy.queue.received",
		metric.WithDescription("Messages received from the queue")); err != nil {
		return nil, err
	}
	if m.MessagesAcked, err = meter.Int64Counter("seedy.queue.acked",
		metric.WithDescription("Messages acknowledged")); err != nil {
		return nil, err
	}
	if m.AckErrors, err = meter.Int64Counter("seedy.queue.ack_errors",
		metric.WithDescription("Failed acknowledgements")); err != nil {
		return nil, err
	}
	if m.ReceiveErrors, err = meter.Int64Counter("seedy.queue.receive_errors",
		metric.WithDescription("Failed receive calls")); err != nil {
		return nil, err
	}
	if m.InFlight, err = meter.Int64UpDownCounter("seedy.queue.in_flight",
		metric.WithDescription("Messages currently being processed")); err != nil {
		return nil, err
	}
	if m.EventsProcessed, err = meter.Int64Counter("seedy.events.processed",
		metric.WithDescription("Pipeline passes by final stage")); err != nil {
		return nil, err
	}
	if m.EventsFailed, err = meter.Int64Counter("seedy.events.failed",
		metric.WithDescription("Pipeline passes that recorded an error")); err != nil {
		return nil, err
	}
	if m.ProcessDuration, err = meter.Float64Histogram("seedy.events.duration_seconds",
		metric.WithDescription("Pipeline pass duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.5, 1, 5, 10, 30)); err != nil {
		return nil, err
	}
	if m.ServiceUpdates, err = meter.Int64Counter("seedy.dispatch.updates",
		metric.WithDescription("Forced service updates by status")); err != nil {
		return nil, err
	}

	return m, nil
}

// Tracer returns the tracer used for pipeline spans.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
