package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WeatherKeyEnv overrides weather.api_key from the config file.
const WeatherKeyEnv = "DASHSTATE_WEATHER_API_KEY"

// Config is the on-disk configuration (dashstate.yaml).
type Config struct {
	Adapter       string `yaml:"adapter"`
	Path          string `yaml:"path"`
	ReadOnly      bool   `yaml:"read_only"`
	EventBuffer   int    `yaml:"event_buffer"`
	LegacySession bool   `yaml:"legacy_session"`
	Watch         bool   `yaml:"watch"`

	Remote struct {
		BaseURL string  `yaml:"base_url"`
		RPS     float64 `yaml:"rps"`
	} `yaml:"remote"`

	Weather struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"weather"`
}

// LoadConfig reads the config file at path. A missing file yields the zero
// Config; a malformed one is an error. The weather key environment variable
// is applied in both cases.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if key := os.Getenv(WeatherKeyEnv); key != "" {
		cfg.Weather.APIKey = key
	}
	if cfg.Path != "" && !filepath.IsAbs(cfg.Path) {
		cfg.Path = filepath.Join(filepath.Dir(path), cfg.Path)
	}
	return cfg, nil
}

// Options converts the config into functional options. Explicit options
// passed after these take precedence.
func (c Config) Options() []Option {
	var opts []Option
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.ReadOnly {
		opts = append(opts, WithReadOnly(true))
	}
	if c.EventBuffer > 0 {
		opts = append(opts, WithEventBuffer(c.EventBuffer))
	}
	if c.LegacySession {
		opts = append(opts, WithLegacySession(true))
	}
	if c.Watch {
		opts = append(opts, WithWatcher(true))
	}
	if c.Remote.BaseURL != "" || c.Remote.RPS > 0 {
		opts = append(opts, WithRemote(c.Remote.BaseURL, c.Remote.RPS))
	}
	if c.Weather.BaseURL != "" || c.Weather.APIKey != "" {
		opts = append(opts, WithWeather(c.Weather.BaseURL, c.Weather.APIKey))
	}
	return opts
}
