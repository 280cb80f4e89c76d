// Config loading for the teamup CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/christianbiango/team-up/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir      = "data_dir"
	cfgKeyRemoteURL    = "remote_url"
	cfgKeyRemoteAPIKey = "remote_api_key"
	cfgKeySyncInterval = "sync_interval_seconds"
	cfgKeyLogLevel     = "log_level"

	defaultConfigDir = ".teamup"
	defaultDataDir   = ".teamup-db"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# teamup CLI configuration

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Remote service. Leave remote_url empty to work fully offline.
# remote_url: https://example.com/api
# remote_api_key:

# Seconds between periodic sync passes.
sync_interval_seconds: 30

# Log level: debug, info, warn, error.
log_level: info
`

// appConfig is the resolved CLI configuration.
type appConfig struct {
	dataDir      string
	remoteURL    string
	remoteAPIKey string
	syncInterval time.Duration
	logLevel     string
}

// loadConfig reads config.yaml from the resolved config directory using
// Viper, creating the directory and a default file on first run. A missing
// config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeySyncInterval, 30)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
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
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// resolveConfigDir returns the config directory: flag > env > default.
func resolveConfigDir() string {
	if flagConfigDir != "" {
		return flagConfigDir
	}
	if v := os.Getenv("TEAMUP_CONFIG_DIR"); v != "" {
		return v
	}
	return defaultConfigDir
}

// resolveAppConfig merges flags, environment, and config.yaml into the
// resolved configuration: flag > config.yaml > env > default.
func resolveAppConfig(v *viper.Viper) appConfig {
	cfg := appConfig{
		dataDir:      flagDataDir,
		remoteURL:    v.GetString(cfgKeyRemoteURL),
		remoteAPIKey: v.GetString(cfgKeyRemoteAPIKey),
		syncInterval: time.Duration(v.GetInt(cfgKeySyncInterval)) * time.Second,
		logLevel:     v.GetString(cfgKeyLogLevel),
	}
	if cfg.dataDir == "" {
		cfg.dataDir = v.GetString(cfgKeyDataDir)
	}
	if cfg.dataDir == "" {
		cfg.dataDir = os.Getenv("TEAMUP_DATA_DIR")
	}
	if cfg.dataDir == "" {
		cfg.dataDir = defaultDataDir
	}
	if cfg.remoteAPIKey == "" {
		cfg.remoteAPIKey = os.Getenv("TEAMUP_API_KEY")
	}
	return cfg
}

// storeConfig converts the CLI configuration into the store's form.
func (c appConfig) storeConfig() types.Config {
	return types.Config{DataDir: c.dataDir}
}
