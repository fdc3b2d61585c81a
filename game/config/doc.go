// Package config provides configuration management for liar heads.
//
// The config package handles:
//   - Loading game configurations from JSON or YAML files
//   - Default configuration selection
//   - Configuration discovery and listing
//   - Process settings read from the environment
//
// Configuration Format:
//
// Game configurations live in the configs directory. The file extension
// (.yaml, .yml or .json) selects the format, and the file name without
// extension is the config ID used to create sessions. Each configuration
// defines the grid size and start cell, a weight for each of the six
// directions, optional labels and head traits, and the game messages.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("narrow")
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
// Settings:
//
// LoadSettings reads PORT, CONFIG_DIR, LOG_LEVEL, GAME_SEED and the other
// process settings from the environment, applying defaults for anything
// unset.
package config
