package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/seedy/internal/adapters/out/telemetry"
	"github.com/bnema/seedy/internal/domain"
	"github.com/bnema/seedy/internal/usecase/consumer"
	"github.com/bnema/seedy/internal/usecase/reconcile"
)

// Config holds the application configuration.
type Config struct {
	Queue struct {
		Name              string        `mapstructure:"name"`
		URL               string        `mapstructure:"url"`
		Region            string        `mapstructure:"region"`
		Wait              time.Duration `mapstructure:"wait"`
		MaxMessages       int           `mapstructure:"max_messages"`
		VisibilityTimeout time.Duration `mapstructure:"visibility_timeout"`
	} `mapstructure:"queue"`

	Consumer struct {
		Pollers     int           `mapstructure:"pollers"`
		Concurrency int           `mapstructure:"concurrency"`
		MaxBackoff  time.Duration `mapstructure:"max_backoff"`
	} `mapstructure:"consumer"`

	Dispatch struct {
		Concurrency int `mapstructure:"concurrency"`
	} `mapstructure:"dispatch"`

	Docker struct {
		Host string `mapstructure:"host"` // empty: DOCKER_HOST or default socket
	} `mapstructure:"docker"`

	Timeouts struct {
		Call time.Duration `mapstructure:"call"`
	} `mapstructure:"timeouts"`

	Match struct {
		Mode        string `mapstructure:"mode"`         // "repository" or "registry"
		FilterLabel string `mapstructure:"filter_label"` // key=value
	} `mapstructure:"match"`

	RegistryAuth struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"registry_auth"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   struct {
			Enabled    bool   `mapstructure:"enabled"`
			Path       string `mapstructure:"path"`
			MaxSize    int    `mapstructure:"max_size"`
			MaxBackups int    `mapstructure:"max_backups"`
			MaxAge     int    `mapstructure:"max_age"`
		} `mapstructure:"file"`
	} `mapstructure:"logging"`

	Telemetry telemetry.Config `mapstructure:"telemetry"`

	Health struct {
		Addr string `mapstructure:"addr"` // empty disables the probe listener
	} `mapstructure:"health"`
}

// initConfig loads configuration from defaults, file and environment, then
// applies overrides (from CLI flags) on top.
func initConfig(configPath string, overrides map[string]any) (Config, error) {
	v := viper.New()
	if err := loadConfig(v, configPath); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func loadConfig(v *viper.Viper, configPath string) error {
	v.SetDefault("queue.name", "")
	v.SetDefault("queue.url", "")
	v.SetDefault("queue.region", "")
	v.SetDefault("queue.wait", 20*time.Second)
	v.SetDefault("queue.max_messages", 10)
	v.SetDefault("queue.visibility_timeout", time.Duration(0))
	v.SetDefault("consumer.pollers", 1)
	v.SetDefault("consumer.concurrency", 4)
	v.SetDefault("consumer.max_backoff", 30*time.Second)
	v.SetDefault("dispatch.concurrency", 4)
	v.SetDefault("docker.host", "")
	v.SetDefault("timeouts.call", 10*time.Second)
	v.SetDefault("match.mode", string(domain.MatchModeRepository))
	v.SetDefault("match.filter_label", "")
	v.SetDefault("registry_auth.enabled", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.enabled", false)
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size", 100)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age", 28)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.auth_token", "")
	v.SetDefault("telemetry.traces", true)
	v.SetDefault("telemetry.metrics", true)
	v.SetDefault("telemetry.logs", false)
	v.SetDefault("telemetry.trace_sample_rate", 1.0)
	v.SetDefault("health.addr", "")

	ConfigureViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SEEDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return nil
}

// validate checks the settings that cannot be defaulted.
func (c Config) validate() error {
	var errs []error

	if c.Queue.Name == "" && c.Queue.URL == "" {
		errs = append(errs, errors.New("queue.name or queue.url is required"))
	}
	if c.Queue.MaxMessages < 1 || c.Queue.MaxMessages > 10 {
		errs = append(errs, fmt.Errorf("queue.max_messages must be between 1 and 10, got %d", c.Queue.MaxMessages))
	}
	if c.Queue.Wait < 0 || c.Queue.Wait > 20*time.Second {
		errs = append(errs, fmt.Errorf("queue.wait must be between 0s and 20s, got %s", c.Queue.Wait))
	}
	if c.Timeouts.Call <= 0 {
		errs = append(errs, errors.New("timeouts.call must be positive"))
	}
	if _, err := domain.ParseMatchMode(c.Match.Mode); err != nil {
		errs = append(errs, fmt.Errorf("match.mode %q: %w", c.Match.Mode, err))
	}
	if _, err := domain.ParseLabelFilter(c.Match.FilterLabel); err != nil {
		errs = append(errs, fmt.Errorf("match.filter_label %q: %w", c.Match.FilterLabel, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// reconcileConfig derives the pipeline settings. validate must pass first.
func (c Config) reconcileConfig() reconcile.Config {
	mode, _ := domain.ParseMatchMode(c.Match.Mode)
	filter, _ := domain.ParseLabelFilter(c.Match.FilterLabel)
	return reconcile.Config{
		MatchMode:           mode,
		Filter:              filter,
		CallTimeout:         c.Timeouts.Call,
		DispatchConcurrency: c.Dispatch.Concurrency,
	}
}

func (c Config) consumerConfig() consumer.Config {
	return consumer.Config{
		Pollers:     c.Consumer.Pollers,
		Concurrency: c.Consumer.Concurrency,
		MaxMessages: c.Queue.MaxMessages,
		Wait:        c.Queue.Wait,
		CallTimeout: c.Timeouts.Call,
		MaxBackoff:  c.Consumer.MaxBackoff,
	}
}
