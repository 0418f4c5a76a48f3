package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requiredFields maps the fields that must be non-empty in strict
// environments. Development and Test are filled from defaults and are never
// strict.
func requiredFields(cfg *Config) map[string]string {
	return map[string]string{
		"server port": cfg.ServerPort,
		"db host":     cfg.DBHost,
		"db port":     cfg.DBPort,
		"db user":     cfg.DBUser,
		"db password": cfg.DBPassword,
		"db name":     cfg.DBName,
		"redis host":  cfg.RedisHost,
		"redis port":  cfg.RedisPort,
		"jwt secret":  cfg.JWTSecret,
	}
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	if env == Development || env == Test {
		return nil
	}

	var errors []string
	for field, value := range requiredFields(cfg) {
		if value == "" {
			errors = append(errors, fmt.Sprintf("%s is not set", field))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
