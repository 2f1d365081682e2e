// Package cmd holds the CLI commands.
package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Om-2611/tasks-generator/config"
	"github.com/Om-2611/tasks-generator/llm"
	"github.com/Om-2611/tasks-generator/server"
	"github.com/Om-2611/tasks-generator/store"
)

var (
	configPath string
	addr       string
	dbPath     string
)

// ServeCmd starts the web server.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tasks-generator web server",
	RunE:  runServe,
}

func init() {
	ServeCmd.Flags().StringVarP(&configPath, "config", "c", "config/config.yaml", "Path to the YAML config file")
	ServeCmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	ServeCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	specs, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer specs.Close()

	client, err := llm.NewOpenRouter(llm.Settings{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
	})
	if err != nil {
		return err
	}

	srv, err := server.New(specs, client, logger)
	if err != nil {
		return err
	}

	logger.Info("starting web server",
		zap.String("addr", cfg.Addr),
		zap.String("db", cfg.DBPath),
		zap.String("model", cfg.LLM.Model))
	return http.ListenAndServe(cfg.Addr, srv.Routes())
}
