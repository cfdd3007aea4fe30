// Package telemetry provides OpenTelemetry initialization for seedy.
// Traces, metrics and bridged logs are exported over OTLP/HTTP.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/zerowrap"
	zerowrapotel "github.com/bnema/zerowrap/otel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	otellog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config holds telemetry configuration.
type Config struct {
	Enabled         bool    `mapstructure:"enabled"`
	Endpoint        string  `mapstructure:"endpoint"`   // e.g. "http://localhost:4318"
	AuthToken       string  `mapstructure:"auth_token"` // base64 user:pass
	Traces          bool    `mapstructure:"traces"`
	Metrics         bool    `mapstructure:"metrics"`
	Logs            bool    `mapstructure:"logs"` // bridge zerowrap logs to OTLP
	TraceSampleRate float64 `mapstructure:"trace_sample_rate"` // 0 never, >= 1 always
}

// Provider holds the SDK providers that were installed globally.
// A field is nil when that signal is disabled.
type Provider struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
	LogProvider    *otellog.LoggerProvider
}

type collector struct {
	host     string
	basePath string
	insecure bool
	headers  map[string]string
}

// NewProvider installs global trace, meter and logger providers per cfg.
// When telemetry is disabled it returns an empty Provider and a noop
// shutdown. The shutdown function must be called on exit to flush.
func NewProvider(ctx context.Context, cfg Config, serviceName, version string) (*Provider, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	if !cfg.Enabled || cfg.Endpoint == "" {
		return &Provider{}, noop, nil
	}

	col, err := parseCollector(cfg)
	if err != nil {
		return nil, noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
		resource.WithHost(),
	)
	if err != nil {
		return nil, noop, fmt.Errorf("create resource: %w", err)
	}

	p := &Provider{}
	var shutdowns []func(context.Context) error

	if cfg.Traces {
		tp, err := newTracerProvider(ctx, col, cfg.TraceSampleRate, res)
		if err != nil {
			return nil, noop, err
		}
		otel.SetTracerProvider(tp)
		p.TracerProvider = tp
		shutdowns = append(shutdowns, tp.Shutdown)
	}

	if cfg.Metrics {
		mp, err := newMeterProvider(ctx, col, res)
		if err != nil {
			for _, fn := range shutdowns {
				_ = fn(ctx)
			}
			return nil, noop, err
		}
		otel.SetMeterProvider(mp)
		p.MeterProvider = mp
		shutdowns = append(shutdowns, mp.Shutdown)
	}

	if cfg.Logs {
		lp, err := newLoggerProvider(ctx, col, res)
		if err != nil {
			for _, fn := range shutdowns {
				_ = fn(ctx)
			}
			return nil, noop, err
		}
		global.SetLoggerProvider(lp)
		p.LogProvider = lp
		shutdowns = append(shutdowns, lp.Shutdown)
	}

	shutdown := func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdowns {
			errs = append(errs, fn(ctx))
		}
		return errors.Join(errs...)
	}

	return p, shutdown, nil
}

func parseCollector(cfg Config) (collector, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return collector{}, fmt.Errorf("parse telemetry endpoint: %w", err)
	}
	if u.Host == "" {
		return collector{}, fmt.Errorf("telemetry endpoint %q has no host", cfg.Endpoint)
	}

	headers := map[string]string{}
	if cfg.AuthToken != "" {
		headers["Authorization"] = "Basic " + cfg.AuthToken
	}

	return collector{
		host:     u.Host,
		basePath: strings.TrimSuffix(u.Path, "/"),
		insecure: u.Scheme == "http",
		headers:  headers,
	}, nil
}

func samplerFor(rate float64) trace.Sampler {
	switch {
	case rate <= 0:
		return trace.NeverSample()
	case rate < 1:
		return trace.TraceIDRatioBased(rate)
	default:
		return trace.AlwaysSample()
	}
}

func newTracerProvider(ctx context.Context, col collector, rate float64, res *resource.Resource) (*trace.TracerProvider, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(col.host),
		otlptracehttp.WithHeaders(col.headers),
	}
	if col.basePath != "" {
		opts = append(opts, otlptracehttp.WithURLPath(col.basePath+"/v1/traces"))
	}
	if col.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	return trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(samplerFor(rate))),
	), nil
}

func newMeterProvider(ctx context.Context, col collector, res *resource.Resource) (*metric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(col.host),
		otlpmetrichttp.WithHeaders(col.headers),
	}
	if col.basePath != "" {
		opts = append(opts, otlpmetrichttp.WithURLPath(col.basePath+"/v1/metrics"))
	}
	if col.insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}

	return metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exp)),
		metric.WithResource(res),
	), nil
}

func newLoggerProvider(ctx context.Context, col collector, res *resource.Resource) (*otellog.LoggerProvider, error) {
	opts := []otlploghttp.Option{
		otlploghttp.WithEndpoint(col.host),
		otlploghttp.WithHeaders(col.headers),
	}
	if col.basePath != "" {
		opts = append(opts, otlploghttp.WithURLPath(col.basePath+"/v1/logs"))
	}
	if col.insecure {
		opts = append(opts, otlploghttp.WithInsecure())
	}

	exp, err := otlploghttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create log exporter: %w", err)
	}

	return otellog.NewLoggerProvider(
		otellog.WithProcessor(otellog.NewBatchProcessor(exp)),
		otellog.WithResource(res),
	), nil
}

// BridgeLogs returns log with a hook forwarding every event to the OTLP
// logger provider. log is returned unchanged when log export is off.
func (p *Provider) BridgeLogs(log zerowrap.Logger, serviceName string) zerowrap.Logger {
	if p == nil || p.LogProvider == nil {
		return log
	}
	return zerowrap.WithHook(log, zerowrapotel.NewHookWithProvider(p.LogProvider, serviceName))
}
