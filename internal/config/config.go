// Package config handles objtool configuration loading and management.
package config

import "time"

// Config holds all objtool settings.
type Config struct {
	Assets  AssetsConfig  `yaml:"assets"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// AssetsConfig holds asset resolution settings.
type AssetsConfig struct {
	Root string `yaml:"root"` // Directory model names are resolved against
}

// MeshConfig holds mesh assembly settings.
type MeshConfig struct {
	NormalizeNormals bool `yaml:"normalize_normals"`
	LoadMaterials    bool `yaml:"load_materials"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Assets: AssetsConfig{
			Root: "assets",
		},
		Mesh: MeshConfig{
			NormalizeNormals: false,
			LoadMaterials:    true,
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
