package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"fixturecheck/internal/core/errors"

	"github.com/BurntSushi/toml"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.CodeIO
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.CodeNotFound
		}
		return nil, errors.AddContext(errors.Wrap(err, code, "read config"), errors.CtxPath, path)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "decode config"), errors.CtxPath, path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, errors.AddContext(
			errors.Newf(errors.CodeValidationError, "unknown config keys: %s", strings.Join(keys, ", ")),
			errors.CtxPath, path,
		)
	}

	applyDefaults(&cfg, meta.IsDefined)
	ApplyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	return &cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when path is the
// default config file and does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if path == DefaultConfigFile && errors.IsCode(err, errors.CodeNotFound) {
		cfg = DefaultConfig()
		ApplyEnvOverrides(cfg)
		if err := Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return nil, err
}

// applyDefaults fills unset fields. isDefined reports keys present in the
// decoded file, so an explicit cache.entries = 0 can disable the cache.
func applyDefaults(cfg *Config, isDefined func(key ...string) bool) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}

	if len(cfg.Discovery.Include) == 0 {
		cfg.Discovery.Include = []string{"*.py"}
	}
	if cfg.Discovery.ExcludeDirs == nil {
		cfg.Discovery.ExcludeDirs = []string{".git", "__pycache__", ".venv", "venv", ".tox", "node_modules", ".mypy_cache", ".pytest_cache"}
	}

	if cfg.Checks.KnownFixtures == nil {
		cfg.Checks.KnownFixtures = append([]string(nil), PytestBuiltinFixtures...)
	}

	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = FormatTable
	}
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))

	if cfg.Cache.Entries == 0 && !isDefined("cache", "entries") {
		cfg.Cache.Entries = 4096
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 10 * time.Minute
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.Rate == 0 {
		cfg.Watch.Rate = 4
	}
	if cfg.Watch.Burst == 0 {
		cfg.Watch.Burst = 1
	}

	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = ".fixturecheck/history.db"
	}
	if strings.TrimSpace(cfg.History.Project) == "" {
		cfg.History.Project = "default"
	}
	if cfg.History.BusyTimeout == 0 {
		cfg.History.BusyTimeout = 5 * time.Second
	}

	if cfg.Observability.Port == 0 {
		cfg.Observability.Port = 9464
	}
}
