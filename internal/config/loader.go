package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load читает YAML-файл конфигурации и раскрывает ${VAR}
// переменные окружения в его тексте.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}
