package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/mcp-training/liarheads/game/engine"
	"github.com/wricardo/mcp-training/liarheads/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = service.ErrInvalidConfig
	ErrInvalidName    = service.ErrInvalidName
)

// DefaultConfigName is the config used when a session names none.
const DefaultConfigName = "classic"

// defaultSaveExt is used by SaveConfig when the name has no extension.
const defaultSaveExt = ".yaml"

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultName   string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager. defaultName picks the
// default config; empty means DefaultConfigName.
func NewManager(configDir string, defaultName ...string) (*Manager, error) {
	info, err := os.Stat(configDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir:   configDir,
		defaultName: DefaultConfigName,
		configs:     make(map[string]*engine.GameConfig),
	}
	if len(defaultName) > 0 && defaultName[0] != "" {
		m.defaultName = defaultName[0]
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("load default config: %w", err)
	}
	return m, nil
}

// Dir returns the directory configs are read from.
func (m *Manager) Dir() string {
	return m.configDir
}

// configID strips a config file extension from name.
func configID(name string) string {
	if engine.IsConfigFile(name) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// LoadConfig loads a configuration by name, with or without extension
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	id := configID(name)

	m.mu.RLock()
	// Check cache first
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	path, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	config, err := engine.LoadGameConfig(path)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidConfig) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return nil, fmt.Errorf("read config %s: %w", filepath.Base(path), err)
	}

	m.configs[id] = config
	log.Debug().Str("config", id).Str("path", path).Msg("config loaded")
	return config, nil
}

// resolve finds the file for name, trying each known extension when name
// has none.
func (m *Manager) resolve(name string) (string, error) {
	candidates := []string{name}
	if !engine.IsConfigFile(name) {
		candidates = candidates[:0]
		for _, ext := range engine.ConfigExtensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, c := range candidates {
		path := filepath.Join(m.configDir, c)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrConfigNotFound, name)
}

// ListConfigs returns information about all available configurations
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("read config directory: %w", err)
	}

	configs := []*service.ConfigInfo{}
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !engine.IsConfigFile(entry.Name()) {
			continue
		}

		id := configID(entry.Name())
		if seen[id] {
			continue
		}
		// Same ID in several formats: list the file LoadConfig would read.
		if path, err := m.resolve(id); err != nil || filepath.Base(path) != entry.Name() {
			continue
		}

		config, err := m.LoadConfig(id)
		if err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping invalid config")
			continue
		}
		seen[id] = true

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    id, // This is the identifier to use for session creation
			Name:        config.Name,
			Description: config.Description,
			Length:      config.Length,
			Width:       config.Width,
		})
	}

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache reloads all cached configurations from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// ReloadConfig drops one cached configuration and loads it again
func (m *Manager) ReloadConfig(name string) error {
	m.mu.Lock()
	delete(m.configs, configID(name))
	m.mu.Unlock()

	_, err := m.LoadConfig(name)
	return err
}

// Count returns the number of cached configurations
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

// loadDefaultConfig picks the named default, then the first valid config in
// the directory, then the built-in one.
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig(m.defaultName)
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil {
			return listErr
		}
		if len(configs) == 0 {
			log.Warn().Str("dir", m.configDir).Msg("no game configs found, using built-in default")
			config = engine.DefaultGameConfig()
		} else {
			if config, err = m.LoadConfig(configs[0].ConfigID); err != nil {
				return err
			}
		}
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
	return nil
}

// SaveConfig validates and writes a configuration. The extension of name
// picks the format; names without one are saved as YAML.
func (m *Manager) SaveConfig(name string, config *engine.GameConfig) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := engine.ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	filename := name
	if !engine.IsConfigFile(filename) {
		filename = name + defaultSaveExt
	}

	data, err := engine.EncodeGameConfig(config, filepath.Ext(filename))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	configPath := filepath.Join(m.configDir, filename)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[configID(name)] = config
	m.mu.Unlock()

	return nil
}
