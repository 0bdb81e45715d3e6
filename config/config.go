package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yaml"

type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Sentry   SentryConfig   `yaml:"sentry"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Forecast ForecastConfig `yaml:"forecast"`
	Session  SessionConfig  `yaml:"session"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout" split_words:"true"`
	WriteTimeout int    `yaml:"write_timeout" split_words:"true"`
	IdleTimeout  int    `yaml:"idle_timeout" split_words:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn"`
	Debug bool   `yaml:"debug"`
}

type UpstreamConfig struct {
	Geocoding APIConfig `yaml:"geocoding"`
	Forecast  APIConfig `yaml:"forecast"`
}

// APIConfig describes one upstream HTTP API. Timeout is in seconds, RPS may be fractional.
type APIConfig struct {
	Name    string  `yaml:"name"`
	BaseURL string  `yaml:"base_url" split_words:"true"`
	Timeout int     `yaml:"timeout"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

type ForecastConfig struct {
	Days     int `yaml:"days"`
	PageSize int `yaml:"page_size" split_words:"true"`
}

// SessionConfig durations are in minutes.
type SessionConfig struct {
	CookieName      string `yaml:"cookie_name" split_words:"true"`
	ThemeCookieName string `yaml:"theme_cookie_name" split_words:"true"`
	TTL             int    `yaml:"ttl"`
	JanitorInterval int    `yaml:"janitor_interval" split_words:"true"`
}

// ConfigProvider loads and validates the application configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads an optional YAML file and then applies environment overrides.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

// NewConfig loads the configuration from CONFIG_PATH (or config/config.yaml) and the environment.
func NewConfig() (*Config, error) {
	path := defaultConfigPath
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}

	return NewConfigWithProvider(NewFileConfigProvider(path))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaults()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// Environment wins over the file. Fields without a variable are left untouched.
	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

// loadFromFile is a no-op when the file does not exist.
func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config %s: %w", p.path, err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(cnf *Config) error {
	var problems []string

	if strings.TrimSpace(cnf.App.Name) == "" {
		problems = append(problems, "app.name is required")
	}
	if strings.TrimSpace(cnf.Server.Port) == "" {
		problems = append(problems, "server.port is required")
	}
	if cnf.Server.ReadTimeout <= 0 || cnf.Server.WriteTimeout <= 0 || cnf.Server.IdleTimeout <= 0 {
		problems = append(problems, "server timeouts must be positive")
	}
	switch cnf.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is not supported", cnf.Log.Level))
	}
	switch cnf.Log.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not supported", cnf.Log.Format))
	}
	for _, api := range cnf.GetUpstreamAPIs() {
		if strings.TrimSpace(api.BaseURL) == "" {
			problems = append(problems, fmt.Sprintf("upstream %s: base_url is required", api.Name))
		}
		if api.Timeout <= 0 {
			problems = append(problems, fmt.Sprintf("upstream %s: timeout must be positive", api.Name))
		}
		if api.RPS < 0 || api.Burst < 0 {
			problems = append(problems, fmt.Sprintf("upstream %s: rps and burst cannot be negative", api.Name))
		}
	}
	if cnf.Forecast.Days < 1 || cnf.Forecast.Days > 16 {
		problems = append(problems, "forecast.days must be between 1 and 16")
	}
	if cnf.Forecast.PageSize < 1 {
		problems = append(problems, "forecast.page_size must be positive")
	}
	if cnf.Session.CookieName == "" || cnf.Session.ThemeCookieName == "" {
		problems = append(problems, "session cookie names are required")
	}
	if cnf.Session.TTL <= 0 {
		problems = append(problems, "session.ttl must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// GetUpstreamAPIs returns the geocoding and forecast API settings in call order.
func (c *Config) GetUpstreamAPIs() []APIConfig {
	return []APIConfig{c.Upstream.Geocoding, c.Upstream.Forecast}
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:    "solar-wind-forecast",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Upstream: UpstreamConfig{
			Geocoding: APIConfig{
				Name:    "open-meteo-geocoding",
				BaseURL: "https://geocoding-api.open-meteo.com/v1/search",
				Timeout: 10,
				RPS:     5,
				Burst:   5,
			},
			Forecast: APIConfig{
				Name:    "open-meteo",
				BaseURL: "https://api.open-meteo.com/v1/forecast",
				Timeout: 15,
				RPS:     5,
				Burst:   5,
			},
		},
		Forecast: ForecastConfig{
			Days:     3,
			PageSize: 6,
		},
		Session: SessionConfig{
			CookieName:      "sid",
			ThemeCookieName: "theme",
			TTL:             60,
			JanitorInterval: 5,
		},
	}
}
