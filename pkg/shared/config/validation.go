package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/scan-io-git/html-checker/pkg/shared/files"
)

var logLevels = []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "OFF"}

// ValidateConfig applies environment overrides and checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := ValidateValidatorConfig(&cfg.Validator); err != nil {
		return fmt.Errorf("YAML global config: validator directive is invalid: %w", err)
	}
	return nil
}

// ValidateLoggerConfig checks the logger level.
func ValidateLoggerConfig(loggerConfig *Logger) error {
	if loggerConfig == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	if envVarValue := os.Getenv("HTML_CHECKER_LOG_LEVEL"); envVarValue != "" {
		loggerConfig.Level = envVarValue
	}
	loggerConfig.Level = strings.ToUpper(SetThen(loggerConfig.Level, DefaultLogLevel))

	for _, level := range logLevels {
		if loggerConfig.Level == level {
			return nil
		}
	}
	return fmt.Errorf("unknown level %q, expected one of %s", loggerConfig.Level, strings.Join(logLevels, ", "))
}

// ValidateValidatorConfig checks the validator settings and applies environment overrides.
func ValidateValidatorConfig(validatorConfig *Validator) error {
	if validatorConfig == nil {
		return fmt.Errorf("validator configuration is nil")
	}

	updateFromEnv(&validatorConfig.Interpreter, "HTML_CHECKER_INTERPRETER")
	updateFromEnv(&validatorConfig.ToolPath, "HTML_CHECKER_TOOL_PATH")
	updateFromEnv(&validatorConfig.InstallRoot, "HTML_CHECKER_INSTALL_ROOT")

	if validatorConfig.InstallRoot != "" {
		expanded, err := files.ExpandPath(validatorConfig.InstallRoot)
		if err != nil {
			return fmt.Errorf("failed to expand install root %q: %w", validatorConfig.InstallRoot, err)
		}
		validatorConfig.InstallRoot = expanded
	}

	if validatorConfig.Interpreter == "" && validatorConfig.ToolPath == "" {
		return fmt.Errorf("either interpreter or tool_path must be set")
	}

	validatorConfig.Concurrency = SetThen(validatorConfig.Concurrency, 1)
	if validatorConfig.Concurrency < 1 || validatorConfig.Concurrency > 64 {
		return fmt.Errorf("concurrency must be between 1 and 64: %d", validatorConfig.Concurrency)
	}

	if err := validateDuration(validatorConfig.Timeout, "timeout", 1*time.Hour); err != nil {
		return err
	}
	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// updateFromEnv overrides value with envVar when it is set.
func updateFromEnv(value *string, envVar string) {
	if envVarValue := os.Getenv(envVar); envVarValue != "" {
		*value = envVarValue
	}
}
