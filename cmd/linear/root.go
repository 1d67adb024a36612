package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/royreznik/linear-cli/internal/auth"
	"github.com/royreznik/linear-cli/internal/config"
	"github.com/royreznik/linear-cli/internal/vault"
)

var version = "0.2.0"

var (
	cfg          *config.Config
	vlt          *vault.Vault
	authSvc      *auth.Service
	projectStore *vault.ProjectStore

	timeoutFlag time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "linear",
	Short:         "Command-line interface for Linear.app",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if timeoutFlag > 0 {
			cfg.Timeout = timeoutFlag
		}
		vlt = vault.New(cfg)
		authSvc = auth.New(cfg, vlt)
		projectStore = vault.NewProjectStore(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "request timeout (e.g. 30s)")
}

// apiContext returns a context bounded by the configured request timeout.
func apiContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.Timeout)
}
