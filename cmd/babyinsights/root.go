package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/babytracker/backend/internal/config"
	"github.com/JonnyWalker81/babytracker/backend/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "babyinsights",
	Short: "Baby insights API server and analyzer",
	Long: `Computes feeding, sleep, growth and diaper insights from caregiving records,
either over HTTP against the tracker's Supabase project or offline from snapshot files.`,
	SilenceUsage: true,
}

var (
	configFile string
	logLevel   string
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// setupLogger installs the default logger from config, honoring --log-level
func setupLogger(cfg config.LogConfig) {
	level := cfg.Level
	if logLevel != "" {
		level = logLevel
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.ParseLevel(level)
	logCfg.Format = cfg.Format
	// stdout carries command output, so logs go to stderr
	logCfg.Output = os.Stderr
	logger.SetDefault(logger.NewSlogLogger(logCfg))
}
