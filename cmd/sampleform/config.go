package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "sampleform.yaml"

// fileConfig mirrors sampleform.yaml.
type fileConfig struct {
	Schema       string `yaml:"schema"`
	InitialRows  int    `yaml:"initialRows"`
	SheetName    string `yaml:"sheetName"`
	SamplePrefix string `yaml:"samplePrefix"`
}

// loadConfig reads path. An empty path falls back to sampleform.yaml in the
// working directory, which may be absent.
func loadConfig(path string) (fileConfig, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if cfg.InitialRows < 0 {
		return fileConfig{}, fmt.Errorf("config: initialRows must not be negative, got %d", cfg.InitialRows)
	}
	return cfg, nil
}
