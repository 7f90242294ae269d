package config

import (
	"time"
)

// Config is the top-level configuration structure for nanowhale.
type Config struct {
	Engine  EngineSettings  `yaml:"engine"`
	Polling PollingSettings `yaml:"polling"`
	Streams StreamSettings  `yaml:"streams"`
	UI      UISettings      `yaml:"ui"`
}

// EngineSettings describes how to reach the container engine CLI.
type EngineSettings struct {
	// Command is the engine binary, e.g. "docker" or "podman".
	Command string `yaml:"command,omitempty"`
	// UseSubsystem prefixes every invocation so the engine runs inside a
	// subsystem layer (e.g. "wsl docker" for a WSL-hosted daemon). A pointer
	// so an explicit "false" in a later config layer wins over "true" in an
	// earlier one; unset inherits.
	UseSubsystem *bool `yaml:"useSubsystem,omitempty"`
	// SubsystemPrefix is the prefix command used when UseSubsystem is set.
	SubsystemPrefix []string `yaml:"subsystemPrefix,omitempty"`
	// CommandTimeout bounds every one-shot engine invocation.
	CommandTimeout time.Duration `yaml:"commandTimeout,omitempty"`
	// Shells are tried in order when opening an interactive session.
	Shells []string `yaml:"shells,omitempty"`
}

// SubsystemEnabled reports whether invocations go through the subsystem
// prefix. Unset means native.
func (e EngineSettings) SubsystemEnabled() bool {
	return e.UseSubsystem != nil && *e.UseSubsystem
}

// CommandLine returns the full argv prefix for one engine invocation,
// e.g. ["docker"] or ["wsl", "docker"].
func (e EngineSettings) CommandLine() []string {
	if e.SubsystemEnabled() && len(e.SubsystemPrefix) > 0 {
		return append(append([]string{}, e.SubsystemPrefix...), e.Command)
	}
	return []string{e.Command}
}

// PollingSettings holds the periodic refresh intervals for the dashboard.
type PollingSettings struct {
	// ContainerInterval is the high-churn poll period (containers, metrics repaint).
	ContainerInterval time.Duration `yaml:"containerInterval,omitempty"`
	// TaxonomyInterval is the low-churn poll period (images, volumes, networks).
	TaxonomyInterval time.Duration `yaml:"taxonomyInterval,omitempty"`
}

// StreamSettings bounds the long-running stats and log streams.
type StreamSettings struct {
	// LogTail is the initial backlog requested when following container logs.
	LogTail int `yaml:"logTail,omitempty"`
	// LogBufferBytes caps the in-memory log buffer; oldest data is dropped.
	LogBufferBytes int `yaml:"logBufferBytes,omitempty"`
	// LogTimestamps asks the engine to prefix each log line with a timestamp.
	LogTimestamps bool `yaml:"logTimestamps,omitempty"`
	// HistoryLength caps each per-container metric history.
	HistoryLength int `yaml:"historyLength,omitempty"`
	// RestartBackoff is the delay before a crashed stats stream is respawned.
	RestartBackoff time.Duration `yaml:"restartBackoff,omitempty"`
}

// UISettings holds presentation preferences.
type UISettings struct {
	// ProtectedNetworks can never be removed from the dashboard, regardless
	// of confirmation. The engine's built-in networks are protected by default.
	ProtectedNetworks []string `yaml:"protectedNetworks,omitempty"`
	// AutoScrollLogs scrolls the log tab to the newest line as output arrives.
	// A pointer so "autoScrollLogs: false" in a config file beats the default.
	AutoScrollLogs *bool `yaml:"autoScrollLogs,omitempty"`
}

// AutoScroll reports whether the log tab follows new output. Unset means on.
func (u UISettings) AutoScroll() bool {
	return u.AutoScrollLogs == nil || *u.AutoScrollLogs
}

// IsProtectedNetwork reports whether name may never be removed.
func (u UISettings) IsProtectedNetwork(name string) bool {
	for _, n := range u.ProtectedNetworks {
		if n == name {
			return true
		}
	}
	return false
}
