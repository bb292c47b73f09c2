// Config loading for the organizer CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/omidnw/room-organizer/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir  = "data_dir"
	cfgKeyTimezone = "timezone"
	cfgKeyCurrency = "currency"
)

// appConfig holds the values read from config.yaml.
type appConfig struct {
	DataDir  string
	Timezone string
	Currency string
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Room organizer configuration

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Formatting defaults
timezone: UTC
currency: USD
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper, creating the directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (appConfig, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return appConfig{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return appConfig{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyTimezone, types.DefaultTimezone)
	v.SetDefault(cfgKeyCurrency, types.DefaultCurrency)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return appConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	return appConfig{
		DataDir:  v.GetString(cfgKeyDataDir),
		Timezone: v.GetString(cfgKeyTimezone),
		Currency: v.GetString(cfgKeyCurrency),
	}, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
