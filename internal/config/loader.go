package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/nanowhale"
	projectConfigDir = ".nanowhale"
	configFileName   = "config.yaml"
)

// Load builds the effective configuration by layering defaults, the user
// config and the project config, in that order.
func Load() (Config, error) {
	cfg := DefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine user config path: %v\n", err)
	} else if _, statErr := os.Stat(userConfigPath); statErr == nil {
		userCfg, loadErr := loadConfigFromFile(userConfigPath)
		if loadErr != nil {
			return Config{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, loadErr)
		}
		cfg = merge(cfg, userCfg)
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine project config path: %v\n", err)
	} else if _, statErr := os.Stat(projectConfigPath); statErr == nil {
		projectCfg, loadErr := loadConfigFromFile(projectConfigPath)
		if loadErr != nil {
			return Config{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, loadErr)
		}
		cfg = merge(cfg, projectCfg)
	}

	return cfg, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

func loadConfigFromFile(filePath string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// merge overlays 'overlay' onto 'base'. Zero values in the overlay leave the
// base value untouched; the boolean toggles are pointers so an explicit
// "false" in a later layer still wins.
func merge(base, overlay Config) Config {
	merged := base

	if overlay.Engine.Command != "" {
		merged.Engine.Command = overlay.Engine.Command
	}
	if overlay.Engine.UseSubsystem != nil {
		merged.Engine.UseSubsystem = overlay.Engine.UseSubsystem
	}
	if len(overlay.Engine.SubsystemPrefix) > 0 {
		merged.Engine.SubsystemPrefix = overlay.Engine.SubsystemPrefix
	}
	if overlay.Engine.CommandTimeout != 0 {
		merged.Engine.CommandTimeout = overlay.Engine.CommandTimeout
	}
	if len(overlay.Engine.Shells) > 0 {
		merged.Engine.Shells = overlay.Engine.Shells
	}

	if overlay.Polling.ContainerInterval != 0 {
		merged.Polling.ContainerInterval = overlay.Polling.ContainerInterval
	}
	if overlay.Polling.TaxonomyInterval != 0 {
		merged.Polling.TaxonomyInterval = overlay.Polling.TaxonomyInterval
	}

	if overlay.Streams.LogTail != 0 {
		merged.Streams.LogTail = overlay.Streams.LogTail
	}
	if overlay.Streams.LogBufferBytes != 0 {
		merged.Streams.LogBufferBytes = overlay.Streams.LogBufferBytes
	}
	if overlay.Streams.LogTimestamps {
		merged.Streams.LogTimestamps = true
	}
	if overlay.Streams.HistoryLength != 0 {
		merged.Streams.HistoryLength = overlay.Streams.HistoryLength
	}
	if overlay.Streams.RestartBackoff != 0 {
		merged.Streams.RestartBackoff = overlay.Streams.RestartBackoff
	}

	if len(overlay.UI.ProtectedNetworks) > 0 {
		merged.UI.ProtectedNetworks = overlay.UI.ProtectedNetworks
	}
	if overlay.UI.AutoScrollLogs != nil {
		merged.UI.AutoScrollLogs = overlay.UI.AutoScrollLogs
	}

	return merged
}
