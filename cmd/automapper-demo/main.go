/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command automapper-demo serves the demo user API and inspects its mappings.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/suparena/automapper"
	"github.com/suparena/automapper/internal/config"
	"github.com/suparena/automapper/internal/demo"
	"github.com/suparena/automapper/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "automapper-demo",
	Short:         "Demo user API built on the automapper mapping engine",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "Load settings from this .env file instead of ./.env")
	rootCmd.PersistentFlags().StringSlice("profile", nil, "Additional YAML profile file (repeatable)")
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var files []string
	if f, _ := cmd.Flags().GetString("env-file"); f != "" {
		files = append(files, f)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// profileFiles merges AUTOMAPPER_PROFILES with --profile flags.
func profileFiles(cmd *cobra.Command, cfg config.Config) []string {
	files := []string{cfg.Profiles}
	extra, _ := cmd.Flags().GetStringSlice("profile")
	return append(files, extra...)
}

func newMapper(cmd *cobra.Command, cfg config.Config, logger *slog.Logger) (*automapper.Mapper, error) {
	return demo.NewMapper(profileFiles(cmd, cfg),
		automapper.WithLogger(logger),
		automapper.WithStrict(cfg.Strict),
		automapper.WithFlattening(cfg.Flatten),
		automapper.WithMaxDepth(cfg.MaxDepth),
	)
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.New(cfg.LogLevel, cfg.LogFormat)
}
