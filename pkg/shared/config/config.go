package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

const (
	DefaultConfigPath = "config.yml"
	DefaultLogLevel   = "INFO"
)

type Config struct {
	Logger    Logger    `yaml:"logger"`
	Validator Validator `yaml:"validator"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Validator holds how the validator tool is launched and driven.
type Validator struct {
	Interpreter        string        `yaml:"interpreter"`
	ToolPath           string        `yaml:"tool_path"`
	InstallRoot        string        `yaml:"install_root"`
	UserAgent          string        `yaml:"user_agent"`
	Concurrency        int           `yaml:"concurrency"`
	Timeout            time.Duration `yaml:"timeout"`
	Safe               *bool         `yaml:"safe"`
	Split              *bool         `yaml:"split"`
	InterpreterOptions yaml.MapSlice `yaml:"interpreter_options"`
	ToolOptions        yaml.MapSlice `yaml:"tool_options"`
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// Default returns the configuration used when no config file is found.
func Default() *Config {
	return &Config{
		Logger: Logger{Level: DefaultLogLevel},
		Validator: Validator{
			Interpreter: "java",
			ToolPath:    "{HTML_CHECKER}/vnujar/vnu.jar",
			Concurrency: 1,
		},
	}
}

// LoadConfig reads configPath over the defaults. A missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	if configPath == "" {
		return config, nil
	}
	if err := LoadYAML(configPath, config); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}

	return config, nil
}
