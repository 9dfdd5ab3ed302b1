package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	// Config - top level configuration of the cooptask binary.
	Config struct {
		Logging  *LoggingConfig  `yaml:"logging" json:"logging"`
		Runtime  *RuntimeConfig  `yaml:"runtime" json:"runtime"`
		Workload *WorkloadConfig `yaml:"workload" json:"workload"`
	}

	// LoggingConfig - level and log file path.
	LoggingConfig struct {
		Level  string `yaml:"level" json:"level"`
		Output string `yaml:"output" json:"output"`
	}

	// RuntimeConfig - scheduler and future tuning.
	RuntimeConfig struct {
		PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval"`
	}

	// WorkloadConfig - knobs of the demo workloads.
	WorkloadConfig struct {
		BcryptCost  int    `yaml:"bcrypt_cost" json:"bcrypt_cost"`
		MaxPayload  string `yaml:"max_payload" json:"max_payload"`
		Compression string `yaml:"compression" json:"compression"`
	}
)

// GetConfig - reads and parses the config at path, falling back to the
// built-in defaults when the file does not exist.
func GetConfig(path string) (Config, error) {
	configContent, err := GetConfigReader(path)
	if err != nil {
		return Config{}, err
	}

	return ParseConfig(configContent)
}

// ParseConfig - decodes the input as YAML, falling back to JSON.
func ParseConfig(input io.ReadCloser) (Config, error) {
	defer input.Close()

	data, err := io.ReadAll(input)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var (
		cfg      Config
		parseErr strings.Builder
	)

	for _, parser := range []func([]byte, *Config) error{yamlParser, jsonParser} {
		var err error
		if err = parser(data, &cfg); err == nil {
			cfg.fillDefaults()
			return cfg, nil
		}
		_, _ = parseErr.WriteString(fmt.Sprintf("Error parsing config: %s\n", err.Error()))
	}

	return cfg, errors.New(parseErr.String())
}

// fillDefaults - replaces omitted sections with their zero values, so
// callers never have to nil-check a section.
func (c *Config) fillDefaults() {
	if c.Logging == nil {
		c.Logging = &LoggingConfig{}
	}
	if c.Runtime == nil {
		c.Runtime = &RuntimeConfig{}
	}
	if c.Workload == nil {
		c.Workload = &WorkloadConfig{}
	}
}

func yamlParser(data []byte, config *Config) error {
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("cant decode yaml config: %w", err)
	}

	return nil
}

func jsonParser(data []byte, config *Config) error {
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("cant decode json config: %w", err)
	}

	return nil
}
