// Root command for the organizer CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/omidnw/room-organizer/internal/paths"
	"github.com/omidnw/room-organizer/pkg/logging"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// loadedConfig holds the config.yaml values resolved by PersistentPreRunE so
// all subcommands can use them.
var loadedConfig appConfig

var rootCmd = &cobra.Command{
	Use:     "organizer",
	Short:   "Organizer is an offline-first inventory organizer",
	Version: version,
	Long: `Organizer manages a local hierarchical inventory: categories form a
tree, items live in categories, and everything persists in an embedded
database on this machine. No server, no sync.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup()

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		loadedConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(itemCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(resetCmd)
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > ORGANIZER_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, loadedConfig.DataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > ORGANIZER_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
