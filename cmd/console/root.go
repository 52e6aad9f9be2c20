package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/pkg/logger"
)

type globalOptions struct {
	baseURL  string
	token    string
	timeout  time.Duration
	logLevel string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           "console",
		Short:         "Query the restaurant back office from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			lg := logger.NewLogger(&logger.Config{
				Level:  logger.ParseLevel(opts.logLevel),
				Output: cmd.ErrOrStderr(),
			})
			lg.SetGlobal()
			lg.Debug("resolved options", "command", cmd.Name(), "api", opts.baseURL, "timeout", opts.timeout.String())
		},
	}
	cmd.PersistentFlags().StringVar(&opts.baseURL, "api", envOr("CONSOLE_API_BASE_URL", "http://localhost:8000/api"), "Restaurant API base URL")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("CONSOLE_TOKEN"), "API token (default $CONSOLE_TOKEN)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "Request timeout")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level")

	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	return cmd
}

func (o *globalOptions) client() *client.Client {
	return client.New(client.Config{BaseURL: o.baseURL, Timeout: o.timeout}, nil)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
