package config

import (
	"fixturecheck/internal/core/errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	validators := []func(*Config) error{
		validateVersion,
		validateWorkers,
		validateDiscovery,
		validateOutput,
		validateCache,
		validateWatch,
		validateHistory,
		validateObservability,
	}
	for _, validate := range validators {
		if err := validate(cfg); err != nil {
			return err
		}
	}
	return nil
}

func invalid(field, format string, args ...interface{}) error {
	return errors.AddContext(errors.New(errors.CodeValidationError, fmt.Sprintf(format, args...)), errors.CtxField, field)
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return invalid("version", "unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateWorkers(cfg *Config) error {
	if cfg.Workers < 0 {
		return invalid("workers", "workers must be >= 0, got %d", cfg.Workers)
	}
	return nil
}

func validateDiscovery(cfg *Config) error {
	groups := map[string][]string{
		"discovery.include":       cfg.Discovery.Include,
		"discovery.exclude_dirs":  cfg.Discovery.ExcludeDirs,
		"discovery.exclude_files": cfg.Discovery.ExcludeFiles,
	}
	for field, patterns := range groups {
		for _, pattern := range patterns {
			if strings.TrimSpace(pattern) == "" {
				return invalid(field, "%s contains an empty pattern", field)
			}
			if _, err := glob.Compile(pattern); err != nil {
				return invalid(field, "%s has invalid glob %q: %v", field, pattern, err)
			}
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	format := strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	for _, known := range OutputFormats {
		if format == known {
			return nil
		}
	}
	return invalid("output.format", "output.format must be one of: %s", strings.Join(OutputFormats, ", "))
}

func validateCache(cfg *Config) error {
	if cfg.Cache.Entries < 0 {
		return invalid("cache.entries", "cache.entries must be >= 0, got %d", cfg.Cache.Entries)
	}
	if cfg.Cache.TTL < 0 {
		return invalid("cache.ttl", "cache.ttl must not be negative")
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return invalid("watch.debounce", "watch.debounce must not be negative")
	}
	if cfg.Watch.Rate <= 0 {
		return invalid("watch.rate", "watch.rate must be > 0, got %v", cfg.Watch.Rate)
	}
	if cfg.Watch.Burst < 1 {
		return invalid("watch.burst", "watch.burst must be >= 1, got %d", cfg.Watch.Burst)
	}
	return nil
}

func validateHistory(cfg *Config) error {
	if !cfg.History.Enabled {
		return nil
	}
	if strings.TrimSpace(cfg.History.Path) == "" {
		return invalid("history.path", "history.path must not be empty when history is enabled")
	}
	if cfg.History.BusyTimeout < 0 {
		return invalid("history.busy_timeout", "history.busy_timeout must not be negative")
	}
	return nil
}

func validateObservability(cfg *Config) error {
	if cfg.Observability.Port < 1 || cfg.Observability.Port > 65535 {
		return invalid("observability.port", "observability.port must be between 1 and 65535, got %d", cfg.Observability.Port)
	}
	if cfg.Observability.EnableTracing && strings.TrimSpace(cfg.Observability.OTLPEndpoint) == "" {
		return invalid("observability.otlp_endpoint", "observability.otlp_endpoint is required when tracing is enabled")
	}
	return nil
}
