package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML config file. Zero values mean "not set".
type fileConfig struct {
	Grid struct {
		Cols int `yaml:"cols"`
		Rows int `yaml:"rows"`
	} `yaml:"grid"`
	Split        string              `yaml:"split"`
	Width        int                 `yaml:"width"`
	Height       int                 `yaml:"height"`
	Footer       *bool               `yaml:"footer"`
	Trace        bool                `yaml:"trace"`
	Verbose      bool                `yaml:"verbose"`
	LogFile      string              `yaml:"log_file"`
	Watch        string              `yaml:"watch"`
	ComposeFiles []string            `yaml:"compose_files"`
	Keys         map[string][]string `yaml:"keys"`
}

// readFile loads the YAML config at path. An empty path yields an empty
// config; a missing or malformed file is an error.
func readFile(path string) (fileConfig, error) {
	var cfg fileConfig
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("config file %s does not exist", path)
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
