package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "America/Sao_Paulo"
	configPathEnv   = "RSSDEVALOR_CONFIG"
	baseURLEnv      = "RSSDEVALOR_BASE_URL"
)

// Config holds everything a run needs. Missing or malformed configuration
// is a startup failure, never a per-source one.
type Config struct {
	Logging LoggingConfig  `yaml:"logging"`
	Output  OutputConfig   `yaml:"output"`
	Fetch   FetchConfig    `yaml:"fetch"`
	Run     RunConfig      `yaml:"run"`
	Groups  GroupsConfig   `yaml:"groups"`
	Sources []SourceConfig `yaml:"sources"`

	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Duration parses YAML durations given either as Go duration strings
// ("30s") or as bare numbers of seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var seconds float64
	if err := value.Decode(&seconds); err == nil {
		*d = Duration(time.Duration(seconds * float64(time.Second)))
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std converts to the standard library type.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// OutputConfig describes where artifacts land and how they are linked.
type OutputConfig struct {
	FeedsDir   string `yaml:"feedsDir"`
	HistoryDir string `yaml:"historyDir"`
	SiteDir    string `yaml:"siteDir"`
	BaseURL    string `yaml:"baseUrl"`
	Title      string `yaml:"title"`
}

// FetchConfig bounds the HTTP client used against publisher pages.
type FetchConfig struct {
	Timeout    Duration `yaml:"timeout"`
	Retries    int      `yaml:"retries"`
	Backoff    Duration `yaml:"backoff"`
	MaxBackoff Duration `yaml:"maxBackoff"`
	UserAgent  string   `yaml:"userAgent"`
}

// RunConfig bounds the outer per-source retry loop.
type RunConfig struct {
	Attempts   int      `yaml:"attempts"`
	RetryDelay Duration `yaml:"retryDelay"`
}

// GroupsConfig maps group keys to display names used in merged feeds and
// the catalog.
type GroupsConfig map[string]string

// SourceConfig describes a single monitored origin.
type SourceConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Extractor   string `yaml:"extractor"`
	Group       string `yaml:"group"`
	FeedFile    string `yaml:"feedFile"`
	HistoryFile string `yaml:"historyFile"`
}

// Location resolves the configured timezone.
func (c *Config) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// Load reads and validates the YAML configuration. An empty path falls back
// to the RSSDEVALOR_CONFIG environment variable.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path == "" {
		return Config{}, fmt.Errorf("no configuration file: pass --config or set %s", configPathEnv)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: unknown timezone %q", path, cfg.Timezone)
	}
	cfg.location = loc

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Output.FeedsDir == "" {
		c.Output.FeedsDir = "feeds"
	}
	if c.Output.HistoryDir == "" {
		c.Output.HistoryDir = "history"
	}
	if c.Output.SiteDir == "" {
		c.Output.SiteDir = c.Output.FeedsDir
	}
	if c.Output.Title == "" {
		c.Output.Title = "RSS de Valor"
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = Duration(30 * time.Second)
	}
	if c.Fetch.Retries <= 0 {
		c.Fetch.Retries = 3
	}
	if c.Fetch.Backoff <= 0 {
		c.Fetch.Backoff = Duration(300 * time.Millisecond)
	}
	if c.Run.Attempts <= 0 {
		c.Run.Attempts = 3
	}
	if c.Run.RetryDelay <= 0 {
		c.Run.RetryDelay = Duration(5 * time.Second)
	}
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}

	for i := range c.Sources {
		if c.Sources[i].FeedFile == "" {
			c.Sources[i].FeedFile = c.Sources[i].ID + ".xml"
		}
		if c.Sources[i].HistoryFile == "" {
			c.Sources[i].HistoryFile = c.Sources[i].ID + ".json"
		}
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(baseURLEnv); v != "" {
		c.Output.BaseURL = v
	}
}

func (c *Config) validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("no sources configured")
	}

	seen := map[string]struct{}{}
	for i, s := range c.Sources {
		switch {
		case s.ID == "":
			return fmt.Errorf("source %d: missing id", i)
		case s.Name == "":
			return fmt.Errorf("source %s: missing name", s.ID)
		case s.URL == "":
			return fmt.Errorf("source %s: missing url", s.ID)
		case s.Extractor == "":
			return fmt.Errorf("source %s: missing extractor", s.ID)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate source id %s", s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	return nil
}
