package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ploshtadka/internal/platform/config"
)

// main wires the CLI. Business logic lives in internal service packages.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "venues",
		Short:         "Venue management service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("VENUES_CONFIG"), "path to a YAML config file")

	load := func() (config.Config, error) {
		// .env is optional; real environment variables win.
		_ = godotenv.Load()
		cfg, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}

	root.AddCommand(newServeCmd(load), newMigrateCmd(load))
	return root
}
