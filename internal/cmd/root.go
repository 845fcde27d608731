// Package cmd implements the desk command tree.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aiutodesk/desk/internal/config"
	"github.com/aiutodesk/desk/internal/log"
	"github.com/aiutodesk/desk/internal/platform"
	"github.com/aiutodesk/desk/internal/session"
	"github.com/aiutodesk/desk/internal/tenant"
	"github.com/aiutodesk/desk/internal/ticket"
	"github.com/aiutodesk/desk/internal/tokenstore"
	"github.com/aiutodesk/desk/internal/transport"
)

var (
	flagAPIURL   string
	flagDev      bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "desk",
	Short: "AiutoDesk help-desk client",
	Long: `desk is the terminal client for the AiutoDesk help-desk platform.

It manages your session (login, signup, logout), lists the organizations
available for registration, and keeps a local catalog of support tickets.
A development proxy is included for browser frontends.

The session survives restarts: the access token is stored encrypted in the
user config directory and restored on the next invocation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagDev, "dev", false, "use the local development proxy ("+config.DevProxyURL+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// app wires the configured dependency graph for one command invocation.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	tokens  tokenstore.Store
	gateway *platform.Gateway
	session *session.Store
	tenants *tenant.Directory
	tickets *ticket.Repository
}

// newApp builds the dependency graph: config, logger, token store,
// transport, gateway, session. Flag overrides win over config.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagDev {
		cfg.BaseURL = config.DevProxyURL
	}
	if flagAPIURL != "" {
		cfg.BaseURL = flagAPIURL
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.LogLevel)
	logCfg.Format = log.ParseFormat(cfg.LogFormat)
	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	tokens := tokenstore.Open(dir, logger)
	client := transport.New(transport.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Tokens:  tokens,
		Logger:  logger,
	})
	gateway := platform.New(client, tokens, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		tokens:  tokens,
		gateway: gateway,
		session: session.New(gateway, tokens, logger),
		tenants: tenant.NewDirectory(gateway, logger),
		tickets: ticket.NewRepository(dir, logger),
	}, nil
}
