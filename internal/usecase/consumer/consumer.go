// Package consumer runs the receive, process, acknowledge loop against the
// message queue.
package consumer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"github.com/bnema/seedy/internal/adapters/out/telemetry"
	"github.com/bnema/seedy/internal/boundaries/in"
	"github.com/bnema/seedy/internal/boundaries/out"
	"github.com/bnema/seedy/internal/domain"
)

var _ in.ConsumerMonitor = (*Consumer)(nil)

// Config holds consumer settings.
type Config struct {
	Pollers     int
	Concurrency int
	MaxMessages int
	Wait        time.Duration // long-poll wait per receive
	CallTimeout time.Duration // budget for ack, and for receive on top of Wait
	MaxBackoff  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Pollers <= 0 {
		c.Pollers = 1
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.MaxMessages <= 0 {
		c.MaxMessages = 10
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 10 * time.Second
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 30 * time.Second
	}
	return c
}

// Consumer polls the queue and runs every message through the reconciler.
// Every received message is acknowledged after one pipeline pass.
type Consumer struct {
	queue      out.MessageQueue
	reconciler in.Reconciler
	cfg        Config
	sem        *semaphore.Weighted
	metrics    *telemetry.Metrics
	tracer     trace.Tracer

	inflight    sync.WaitGroup
	running     atomic.Bool
	lastReceive atomic.Int64
	failures    atomic.Int64
}

// New creates a new Consumer.
func New(queue out.MessageQueue, reconciler in.Reconciler, cfg Config) *Consumer {
	cfg = cfg.withDefaults()
	return &Consumer{
		queue:      queue,
		reconciler: reconciler,
		cfg:        cfg,
		sem:        semaphore.NewWeighted(int64(cfg.Concurrency)),
		tracer:     telemetry.Tracer(),
	}
}

// SetMetrics sets the metrics instruments.
func (c *Consumer) SetMetrics(m *telemetry.Metrics) {
	c.metrics = m
}

// Status reports the consumer's polling state.
func (c *Consumer) Status() domain.ConsumerStatus {
	var last time.Time
	if ns := c.lastReceive.Load(); ns > 0 {
		last = time.Unix(0, ns)
	}
	return domain.ConsumerStatus{
		Running:             c.running.Load(),
		LastReceive:         last,
		ConsecutiveFailures: c.failures.Load(),
	}
}

// Run starts the pollers and blocks until ctx is cancelled and all
// in-flight messages have been processed and acknowledged.
func (c *Consumer) Run(ctx context.Context) error {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "Consumer",
	})
	log := zerowrap.FromCtx(ctx)

	c.running.Store(true)
	defer c.running.Store(false)

	log.Info().
		Int("pollers", c.cfg.Pollers).
		Int("concurrency", c.cfg.Concurrency).
		Msg("consumer started")

	var pollers sync.WaitGroup
	for range c.cfg.Pollers {
		pollers.Add(1)
		go func() {
			defer pollers.Done()
			c.poll(ctx, uuid.NewString())
		}()
	}

	pollers.Wait()
	c.inflight.Wait()

	log.Info().Msg("consumer stopped")
	return nil
}

func (c *Consumer) poll(ctx context.Context, pollerID string) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{"poller": pollerID})
	log := zerowrap.FromCtx(ctx)

	bo := c.newBackoff()

	for ctx.Err() == nil {
		msgs, err := c.receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.failures.Add(1)
			if c.metrics != nil {
				c.metrics.ReceiveErrors.Add(ctx, 1)
			}

			wait := bo.NextBackOff()
			log.Warn().Err(err).Dur("retry_in", wait).Msg("receive failed")

			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}

		bo.Reset()
		c.failures.Store(0)
		c.lastReceive.Store(time.Now().UnixNano())

		if len(msgs) == 0 {
			continue
		}
		if c.metrics != nil {
			c.metrics.MessagesReceived.Add(ctx, int64(len(msgs)))
		}
		log.Debug().Int(zerowrap.FieldCount, len(msgs)).Msg("received messages")

		// A received batch is always handled in full, even across shutdown.
		detached := context.WithoutCancel(ctx)
		for _, msg := range msgs {
			if err := c.sem.Acquire(detached, 1); err != nil {
				return
			}
			c.inflight.Add(1)
			go func() {
				defer c.inflight.Done()
				defer c.sem.Release(1)
				c.handle(ctx, msg)
			}()
		}
	}
}

func (c *Consumer) newBackoff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = c.cfg.MaxBackoff
	bo.MaxElapsedTime = 0
	if bo.InitialInterval > c.cfg.MaxBackoff {
		bo.InitialInterval = c.cfg.MaxBackoff
	}
	bo.Reset()
	return bo
}

func (c *Consumer) receive(ctx context.Context) ([]domain.Message, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Wait+c.cfg.CallTimeout)
	defer cancel()

	msgs, err := c.queue.Receive(callCtx, c.cfg.MaxMessages, c.cfg.Wait)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// handle processes and acknowledges one message. It runs detached from
// shutdown so that a message already taken off the queue is finished.
func (c *Consumer) handle(parent context.Context, msg domain.Message) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	ctx := context.WithoutCancel(parent)
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{"message_id": msg.ID})
	log := zerowrap.FromCtx(ctx)

	ctx, span := c.tracer.Start(ctx, "seedy.reconcile",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "aws_sqs"),
			attribute.String("messaging.message.id", msg.ID),
		),
	)
	defer span.End()

	c.addUpDown(ctx, 1)
	defer c.addUpDown(ctx, -1)

	start := time.Now()
	result := c.reconciler.Process(ctx, msg)
	c.recordResult(ctx, result, time.Since(start))

	span.SetAttributes(
		attribute.String("seedy.state", string(result.State)),
		attribute.String("seedy.dispatch", string(result.Dispatch)),
		attribute.Int("seedy.matched", result.Matched),
	)
	if result.Err != nil && !errors.Is(result.Err, domain.ErrEventIgnored) {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, failureReason(result.Err))
	}

	ackCtx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()

	if err := c.queue.Ack(ackCtx, msg); err != nil {
		if c.metrics != nil {
			c.metrics.AckErrors.Add(ctx, 1)
		}
		log.WrapErr(err, "failed to acknowledge message")
		return
	}
	if c.metrics != nil {
		c.metrics.MessagesAcked.Add(ctx, 1)
	}
	log.Debug().Str("state", string(domain.StateAcknowledged)).Msg("message acknowledged")
}

// failureReason maps a pipeline error to a low-cardinality label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEventIgnored):
		return "ignored"
	case errors.Is(err, domain.ErrDecode):
		return "decode"
	case errors.Is(err, domain.ErrMissingDigest):
		return "missing_digest"
	case errors.Is(err, domain.ErrInventory):
		return "inventory"
	case errors.Is(err, domain.ErrDispatch):
		return "dispatch"
	default:
		return "other"
	}
}

func (c *Consumer) recordResult(ctx context.Context, result domain.ReconcileResult, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}

	c.metrics.EventsProcessed.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", string(result.State))))
	c.metrics.ProcessDuration.Record(ctx, elapsed.Seconds())

	if result.Err != nil {
		c.metrics.EventsFailed.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", failureReason(result.Err))))
	}

	for _, o := range result.Outcomes {
		status := "ok"
		if !o.Succeeded {
			status = "failed"
		}
		c.metrics.ServiceUpdates.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}
}

func (c *Consumer) addUpDown(ctx context.Context, n int64) {
	if c.metrics == nil {
		return
	}
	c.metrics.InFlight.Add(ctx, n)
}
