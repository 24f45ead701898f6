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

// requirements lists the fields every environment must provide.
var requirements = map[Environment][]string{
	Development: {"DBHost", "DBPort", "DBUser", "DBName", "JWTSecret"},
	Test:        {"DBHost", "DBPort", "DBUser", "DBName", "JWTSecret"},
	CI:          {"DBHost", "DBPort", "DBUser", "DBPassword", "DBName", "JWTSecret"},
	Production:  {"ServerHost", "DBHost", "DBPort", "DBUser", "DBPassword", "DBName", "JWTSecret", "RedisPassword"},
}

var sslModes = map[string]bool{
	"disable": true, "allow": true, "prefer": true, "require": true, "verify-ca": true, "verify-full": true,
}

func (c *Config) fieldValues() map[string]string {
	return map[string]string{
		"ServerHost":    c.ServerHost,
		"ServerPort":    c.ServerPort,
		"DBHost":        c.DBHost,
		"DBPort":        c.DBPort,
		"DBUser":        c.DBUser,
		"DBPassword":    c.DBPassword,
		"DBName":        c.DBName,
		"JWTSecret":     c.JWTSecret,
		"RedisPassword": c.RedisPassword,
	}
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs []string

	values := cfg.fieldValues()
	for _, field := range requirements[GetEnvironment()] {
		if values[field] == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"}.Error())
		}
	}
	if !sslModes[cfg.DBSSLMode] {
		errs = append(errs, ValidationError{Field: "DBSSLMode", Message: fmt.Sprintf("unsupported value %q", cfg.DBSSLMode)}.Error())
	}
	if IsProduction() && len(cfg.JWTSecret) < 32 {
		errs = append(errs, ValidationError{Field: "JWTSecret", Message: "must be at least 32 characters in production"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
