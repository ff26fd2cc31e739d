package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: FIXTURECHECK_[SECTION]_[KEY] (e.g., FIXTURECHECK_CHECKS_STRICT_FIXTURES).
func ApplyEnvOverrides(cfg *Config) {
	setEnvInt(&cfg.Workers, "FIXTURECHECK_WORKERS")

	// Discovery
	setEnvBool(&cfg.Discovery.Recursive, "FIXTURECHECK_DISCOVERY_RECURSIVE")
	setEnvList(&cfg.Discovery.Include, "FIXTURECHECK_DISCOVERY_INCLUDE")
	setEnvList(&cfg.Discovery.ExcludeDirs, "FIXTURECHECK_DISCOVERY_EXCLUDE_DIRS")
	setEnvList(&cfg.Discovery.ExcludeFiles, "FIXTURECHECK_DISCOVERY_EXCLUDE_FILES")

	// Checks
	setEnvBool(&cfg.Checks.StrictFixtures, "FIXTURECHECK_CHECKS_STRICT_FIXTURES")
	setEnvList(&cfg.Checks.KnownFixtures, "FIXTURECHECK_CHECKS_KNOWN_FIXTURES")

	// Output
	setEnvString(&cfg.Output.Format, "FIXTURECHECK_OUTPUT_FORMAT")
	setEnvString(&cfg.Output.File, "FIXTURECHECK_OUTPUT_FILE")

	// Cache
	setEnvInt(&cfg.Cache.Entries, "FIXTURECHECK_CACHE_ENTRIES")
	setEnvDuration(&cfg.Cache.TTL, "FIXTURECHECK_CACHE_TTL")

	// Watch
	setEnvDuration(&cfg.Watch.Debounce, "FIXTURECHECK_WATCH_DEBOUNCE")
	setEnvFloat64(&cfg.Watch.Rate, "FIXTURECHECK_WATCH_RATE")
	setEnvInt(&cfg.Watch.Burst, "FIXTURECHECK_WATCH_BURST")

	// History
	setEnvBool(&cfg.History.Enabled, "FIXTURECHECK_HISTORY_ENABLED")
	setEnvString(&cfg.History.Path, "FIXTURECHECK_HISTORY_PATH")
	setEnvString(&cfg.History.Project, "FIXTURECHECK_HISTORY_PROJECT")

	// Observability
	setEnvBool(&cfg.Observability.Enabled, "FIXTURECHECK_OBSERVABILITY_ENABLED")
	setEnvInt(&cfg.Observability.Port, "FIXTURECHECK_OBSERVABILITY_PORT")
	setEnvString(&cfg.Observability.OTLPEndpoint, "FIXTURECHECK_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvBool(&cfg.Observability.EnableTracing, "FIXTURECHECK_OBSERVABILITY_ENABLE_TRACING")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		log.Printf("Applying env override: %s=%s", key, val)
		*target = val
	}
}

// setEnvList splits a comma separated value; empty items are dropped.
func setEnvList(target *[]string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		log.Printf("Applying env override: %s=%s", key, val)
		items := []string{}
		for _, item := range strings.Split(val, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		*target = items
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = d
		}
	}
}
