// Package app wires configuration, adapters and use cases into the running
// seedy process.
package app

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/seedy/internal/adapters/in/http/health"
	"github.com/bnema/seedy/internal/adapters/out/awsregion"
	"github.com/bnema/seedy/internal/adapters/out/docker"
	"github.com/bnema/seedy/internal/adapters/out/ecrauth"
	"github.com/bnema/seedy/internal/adapters/out/sqs"
	"github.com/bnema/seedy/internal/adapters/out/telemetry"
	"github.com/bnema/seedy/internal/boundaries/out"
	"github.com/bnema/seedy/internal/usecase/consumer"
	healthsvc "github.com/bnema/seedy/internal/usecase/health"
	"github.com/bnema/seedy/internal/usecase/reconcile"
)

const serviceName = "seedy"

// RunOptions carries the command line inputs to Run.
type RunOptions struct {
	ConfigPath string
	EnvFile    string
	Version    string
	// Overrides are viper keys set from flags, applied over file and env.
	Overrides map[string]any
}

// services holds the wired process components.
type services struct {
	orchestrator *docker.Orchestrator
	consumer     *consumer.Consumer
	healthServer *health.Server
	shutdownOtel func(context.Context) error
}

// Run loads configuration, connects to the swarm manager and the queue, and
// consumes push events until ctx is cancelled or SIGINT/SIGTERM arrives.
func Run(ctx context.Context, opts RunOptions) error {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	cfg, err := initConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	log, cleanup, err := initLogger(cfg)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	otelProvider, shutdownOtel, err := telemetry.NewProvider(ctx, cfg.Telemetry, serviceName, opts.Version)
	if err != nil {
		return log.WrapErr(err, "failed to initialize telemetry")
	}
	log = otelProvider.BridgeLogs(log, serviceName)

	ctx = zerowrap.WithCtx(ctx, log)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("version", opts.Version).
		Str("match_mode", cfg.Match.Mode).
		Str("filter_label", cfg.Match.FilterLabel).
		Msg("starting seedy")

	svc, err := createServices(ctx, cfg)
	svc.shutdownOtel = shutdownOtel
	defer svc.close(ctx)
	if err != nil {
		return err
	}

	return svc.run(ctx)
}

func initLogger(cfg Config) (zerowrap.Logger, func(), error) {
	logConfig := zerowrap.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}

	if cfg.Logging.File.Enabled {
		logPath := cfg.Logging.File.Path
		if logPath == "" {
			logPath = filepath.Join("/var/log", serviceName, serviceName+".log")
		}

		log, cleanup, err := zerowrap.NewWithFile(logConfig, zerowrap.FileConfig{
			Enabled:    true,
			Path:       logPath,
			MaxSize:    cfg.Logging.File.MaxSize,
			MaxBackups: cfg.Logging.File.MaxBackups,
			MaxAge:     cfg.Logging.File.MaxAge,
			Compress:   true,
		})
		if err != nil {
			return zerowrap.Default(), nil, fmt.Errorf("failed to create logger with file: %w", err)
		}
		return log, cleanup, nil
	}

	return zerowrap.New(logConfig), nil, nil
}

// createServices builds every adapter and use case. Any failure to reach
// the swarm manager or the queue is fatal. The returned services are never
// nil so the caller can release whatever was opened before a failure.
func createServices(ctx context.Context, cfg Config) (*services, error) {
	log := zerowrap.FromCtx(ctx)
	svc := &services{}

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return svc, log.WrapErr(err, "failed to create metrics")
	}

	orchestrator, err := docker.NewOrchestrator(cfg.Docker.Host)
	if err != nil {
		return svc, log.WrapErr(err, "failed to create docker client")
	}
	svc.orchestrator = orchestrator

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeouts.Call)
	err = orchestrator.Ping(pingCtx)
	cancel()
	if err != nil {
		return svc, log.WrapErr(err, "swarm manager check failed")
	}

	awsCfg, err := awsregion.LoadConfig(ctx, cfg.Queue.Region)
	if err != nil {
		return svc, log.WrapErr(err, "failed to load AWS configuration")
	}

	queue, err := openQueue(ctx, sqs.NewClient(awsCfg), cfg)
	if err != nil {
		return svc, log.WrapErr(err, "message queue check failed")
	}
	log.Info().Str("queue_url", queue.URL()).Str("region", awsCfg.Region).Msg("queue reachable")

	var auth out.RegistryAuthProvider
	if cfg.RegistryAuth.Enabled {
		auth = ecrauth.NewProvider(ecrauth.NewClient(awsCfg))
	}

	reconciler := reconcile.NewService(orchestrator, auth, cfg.reconcileConfig())

	svc.consumer = consumer.New(queue, reconciler, cfg.consumerConfig())
	svc.consumer.SetMetrics(metrics)

	if cfg.Health.Addr != "" {
		checker := healthsvc.NewService(orchestrator, svc.consumer, cfg.Timeouts.Call)
		svc.healthServer = health.NewServer(cfg.Health.Addr, health.NewHandler(checker))
	}

	return svc, nil
}

// openQueue resolves the queue URL when only a name is configured, then
// makes one bounded call against the queue so that missing credentials or
// an unreachable queue fail startup instead of the receive loop.
func openQueue(ctx context.Context, client sqs.API, cfg Config) (*sqs.Queue, error) {
	callCtx, cancel := context.WithTimeout(ctx, cfg.Timeouts.Call)
	defer cancel()

	queueURL := cfg.Queue.URL
	if queueURL == "" {
		var err error
		queueURL, err = sqs.ResolveURL(callCtx, client, cfg.Queue.Name)
		if err != nil {
			return nil, err
		}
	}

	queue := sqs.NewQueue(client, queueURL, cfg.Queue.VisibilityTimeout)
	if err := queue.Check(callCtx); err != nil {
		return nil, err
	}
	return queue, nil
}

// run blocks until the consumer stops. The health server, when enabled,
// shares the consumer's lifetime.
func (s *services) run(ctx context.Context) error {
	log := zerowrap.FromCtx(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.consumer.Run(gctx)
	})
	if s.healthServer != nil {
		g.Go(func() error {
			return s.healthServer.Run(gctx)
		})
	}

	err := g.Wait()
	if err != nil {
		log.Error().Err(err).Msg("seedy stopped with error")
		return err
	}
	log.Info().Msg("seedy stopped")
	return nil
}

func (s *services) close(ctx context.Context) {
	log := zerowrap.FromCtx(ctx)

	if s.orchestrator != nil {
		if err := s.orchestrator.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close docker client")
		}
	}

	if s.shutdownOtel != nil {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := s.shutdownOtel(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("failed to flush telemetry")
		}
	}
}
