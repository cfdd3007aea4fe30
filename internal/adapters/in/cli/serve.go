package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bnema/seedy/internal/app"
)

type serveOptions struct {
	configPath  string
	envFile     string
	queue       string
	filterLabel string
	logLevel    string
}

// overrides maps explicitly set flags onto config keys.
func (o serveOptions) overrides(cmd *cobra.Command) map[string]any {
	set := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("queue") {
		set["queue.name"] = o.queue
	}
	if flags.Changed("filter-label") {
		set["match.filter_label"] = o.filterLabel
	}
	if flags.Changed("log-level") {
		set["logging.level"] = o.logLevel
	}
	return set
}

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Consume push events and redeploy matching services",
		Long: `Start the queue consumer. Every successful image push received on the
queue triggers a force update of the swarm services running that image.
Stops on SIGINT or SIGTERM after in-flight messages are finished.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(context.Background(), app.RunOptions{
				ConfigPath: opts.configPath,
				EnvFile:    opts.envFile,
				Version:    Version,
				Overrides:  opts.overrides(cmd),
			})
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "Load environment variables from this file first")
	cmd.Flags().StringVarP(&opts.queue, "queue", "q", "", "SQS queue name")
	cmd.Flags().StringVar(&opts.filterLabel, "filter-label", "", "Only consider services with this label (key=value)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	return cmd
}
