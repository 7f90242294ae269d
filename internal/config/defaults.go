package config

import "time"

// DefaultConfig returns the built-in configuration. It targets a native
// docker CLI; the WSL-hosted layout from the original desktop tool is a
// one-line override (engine.useSubsystem: true).
func DefaultConfig() Config {
	subsystem := false
	autoScroll := true
	return Config{
		Engine: EngineSettings{
			Command:         "docker",
			UseSubsystem:    &subsystem,
			SubsystemPrefix: []string{"wsl"},
			CommandTimeout:  10 * time.Second,
			Shells:          []string{"/bin/bash", "/bin/sh"},
		},
		Polling: PollingSettings{
			ContainerInterval: 3 * time.Second,
			TaxonomyInterval:  15 * time.Second,
		},
		Streams: StreamSettings{
			LogTail:        200,
			LogBufferBytes: 100_000,
			LogTimestamps:  false,
			HistoryLength:  80,
			RestartBackoff: 2 * time.Second,
		},
		UI: UISettings{
			ProtectedNetworks: []string{"bridge", "host", "none"},
			AutoScrollLogs:    &autoScroll,
		},
	}
}
