package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kart-io/metahub"
	"github.com/kart-io/metahub/config"
	"github.com/kart-io/metahub/server"
)

var (
	serveDemo       bool
	serveConfigPath string
	serveLogLevel   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Starts the MCP server on stdin/stdout. The process blocks until the
client closes the connection.

Configuration is loaded in order: the YAML file named by --config (when
given), then environment variables, then flags. The server refuses to
start when no platform is configured and demo mode is off.

With --demo every platform is served by a deterministic in-memory
adapter; no credentials are needed and nothing leaves the process.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	opts := []config.Option{}
	if serveConfigPath != "" {
		opts = append(opts, config.WithFile(serveConfigPath))
	}
	opts = append(opts, config.WithFromEnv())
	if serveDemo {
		opts = append(opts, config.WithDemoMode(true))
	}
	if serveLogLevel != "" {
		opts = append(opts, config.WithLogLevel(serveLogLevel))
	}

	hub, err := metahub.New(config.New(opts...))
	if err != nil {
		return fmt.Errorf("failed to initialize hub: %w", err)
	}
	defer func() {
		_ = hub.Shutdown(context.Background())
	}()

	return server.NewMCPServer(hub, rootCmd.Version).Start(cmd.Context())
}

func init() {
	serveCmd.Flags().BoolVar(&serveDemo, "demo", false, "serve deterministic mock adapters, no credentials required")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "path to a YAML config file")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "log level: silent, error, warn, info, debug")
	rootCmd.AddCommand(serveCmd)
}
