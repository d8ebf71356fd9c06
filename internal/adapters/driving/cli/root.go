// Package cli implements the petmatch command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/petmatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/core/ports/driving"
	"github.com/custodia-labs/petmatch/internal/core/services"
	"github.com/custodia-labs/petmatch/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Global flags.
var (
	configDir string
	verbose   bool
)

// settingsService is created lazily from --config-dir unless tests inject one.
var settingsService driving.SettingsService

var rootCmd = &cobra.Command{
	Use:   "petmatch",
	Short: "Match adopters with shelter animals",
	Long: `petmatch recommends shelter animals for an adopter's preferences.

Each animal's personality description is embedded once when the catalog
is loaded. A match embeds a short query built from the adopter's answers
and ranks the animals by similarity, optionally restricted to one species.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default ~/.petmatch)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion records the build version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with results written to stdout.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// setup wires logging and settings before any subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	if settingsService == nil {
		store, err := file.NewConfigStore(configDir)
		if err != nil {
			return fmt.Errorf("failed to open config: %w", err)
		}
		settingsService = services.NewSettingsService(store)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := logger.SetFormat(settings.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}

	logger.Debug("config: provider=%s model=%s catalog=%s",
		settings.Embedding.Provider, settings.Embedding.Model, settings.Catalog.Path)
	return nil
}

// loadSettings returns the current settings.
func loadSettings() (*domain.AppSettings, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// useServiceLogLevel applies log.level for long-running commands.
func useServiceLogLevel(settings *domain.AppSettings) error {
	if err := logger.SetLevel(settings.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
