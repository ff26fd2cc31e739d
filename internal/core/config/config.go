package config

import (
	"time"
)

const DefaultConfigFile = "fixturecheck.toml"

type Config struct {
	Version       int           `toml:"version"`
	Paths         []string      `toml:"paths"`
	Workers       int           `toml:"workers"`
	Discovery     Discovery     `toml:"discovery"`
	Checks        Checks        `toml:"checks"`
	Output        Output        `toml:"output"`
	Cache         Cache         `toml:"cache"`
	Watch         Watch         `toml:"watch"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
}

type Discovery struct {
	Recursive    bool     `toml:"recursive"`
	Include      []string `toml:"include"`
	ExcludeDirs  []string `toml:"exclude_dirs"`
	ExcludeFiles []string `toml:"exclude_files"`
}

type Checks struct {
	StrictFixtures bool     `toml:"strict_fixtures"`
	KnownFixtures  []string `toml:"known_fixtures"`
}

type Output struct {
	Format string `toml:"format"`
	File   string `toml:"file"`
}

type Cache struct {
	Entries int           `toml:"entries"`
	TTL     time.Duration `toml:"ttl"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	Rate     float64       `toml:"rate"`
	Burst    int           `toml:"burst"`
}

type History struct {
	Enabled     bool          `toml:"enabled"`
	Path        string        `toml:"path"`
	Project     string        `toml:"project"`
	BusyTimeout time.Duration `toml:"busy_timeout"`
}

type Observability struct {
	Enabled       bool   `toml:"enabled"`
	Port          int    `toml:"port"`
	OTLPEndpoint  string `toml:"otlp_endpoint"`
	EnableTracing bool   `toml:"enable_tracing"`
}

// Output formats understood by the report package.
const (
	FormatTable = "table"
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatSARIF = "sarif"
	FormatTSV   = "tsv"
)

var OutputFormats = []string{FormatTable, FormatText, FormatJSON, FormatYAML, FormatSARIF, FormatTSV}

// PytestBuiltinFixtures are fixtures pytest itself provides.
var PytestBuiltinFixtures = []string{
	"cache",
	"capfd",
	"capfdbinary",
	"caplog",
	"capsys",
	"capsysbinary",
	"doctest_namespace",
	"monkeypatch",
	"pytestconfig",
	"pytester",
	"record_property",
	"record_testsuite_property",
	"record_xml_attribute",
	"recwarn",
	"request",
	"testdir",
	"tmp_path",
	"tmp_path_factory",
	"tmpdir",
	"tmpdir_factory",
}

func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg, func(...string) bool { return false })
	return cfg
}
