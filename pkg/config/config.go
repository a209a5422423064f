package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for birdview.
type Config struct {
	// Visual tuning for rendered elements
	Visual VisualConfig `koanf:"visual"`

	// View-specific behavior
	Views ViewConfig `koanf:"views"`

	// Session persistence settings
	Session SessionConfig `koanf:"session"`

	// Bridge server settings
	Server ServerConfig `koanf:"server"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// VisualConfig tunes node sizing and zoom bounds.
type VisualConfig struct {
	MinNodeSize float64 `koanf:"min_node_size"`
	MaxNodeSize float64 `koanf:"max_node_size"`
	SizeDivisor float64 `koanf:"size_divisor"`
	MinZoom     float64 `koanf:"min_zoom"`
	MaxZoom     float64 `koanf:"max_zoom"`
}

// ViewConfig controls per-view limits.
type ViewConfig struct {
	MaxRelatedFiles int `koanf:"max_related_files"`
	TopLibraries    int `koanf:"top_libraries"`
}

// SessionConfig controls view-state persistence.
type SessionConfig struct {
	Enabled bool `koanf:"enabled"`
	MaxSize int  `koanf:"max_size"`
}

// ServerConfig controls the websocket bridge server.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, toon, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Visual: VisualConfig{
			MinNodeSize: 20,
			MaxNodeSize: 50,
			SizeDivisor: 2,
			MinZoom:     0.5,
			MaxZoom:     2.0,
		},
		Views: ViewConfig{
			MaxRelatedFiles: 10,
			TopLibraries:    10,
		},
		Session: SessionConfig{
			Enabled: true,
			MaxSize: 128,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:43117",
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"birdview.toml",
		"birdview.yaml",
		"birdview.yml",
		"birdview.json",
		".birdview.toml",
		".birdview.yaml",
		".birdview.yml",
		".birdview.json",
	}

	searchDirs := []string{".", ".birdview"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}
