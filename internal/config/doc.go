// Package config provides layered configuration for nanowhale.
//
// Configuration is loaded and merged in the following order, with later
// sources overriding earlier ones:
//
//  1. Built-in defaults (DefaultConfig)
//  2. User configuration (~/.config/nanowhale/config.yaml)
//  3. Project configuration (./.nanowhale/config.yaml)
//
// The file uses YAML. A minimal example targeting a WSL-hosted docker daemon:
//
//	engine:
//	  command: docker
//	  useSubsystem: true
//	  subsystemPrefix: [wsl]
//	polling:
//	  containerInterval: 3s
//	  taxonomyInterval: 15s
//	streams:
//	  logTail: 200
//	  logTimestamps: true
//
// All state derived from this configuration is in-memory; nothing is
// persisted back.
package config
