package config

import (
	"encoding/json"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/vango-dev/showcase/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "showcase.json"

	// EnvFileName is the optional dotenv file read next to the config file.
	EnvFileName = ".env"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SHOWCASE_"

	// DefaultPort is the default HTTP port.
	DefaultPort = 8080

	// DefaultHost is the default listen host. Empty listens on all interfaces.
	DefaultHost = ""

	// DefaultTitle is the default document title.
	DefaultTitle = "Showcase"
)

// Config represents the complete showcase.json configuration.
type Config struct {
	// Server contains HTTP listener and page settings.
	Server ServerConfig `json:"server" envPrefix:"SERVER_"`

	// Session contains live instance limits.
	Session SessionConfig `json:"session" envPrefix:"SESSION_"`

	// Log contains logger settings.
	Log LogConfig `json:"log" envPrefix:"LOG_"`

	// Telemetry toggles metrics and tracing.
	Telemetry TelemetryConfig `json:"telemetry" envPrefix:"TELEMETRY_"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Host  string `json:"host" env:"HOST"`
	Port  int    `json:"port" env:"PORT"`
	Title string `json:"title,omitempty" env:"TITLE"`

	// Pretty indents rendered HTML and disables client script caching.
	Pretty bool `json:"pretty,omitempty" env:"PRETTY"`

	CookieName    string `json:"cookieName,omitempty" env:"COOKIE_NAME"`
	SecureCookies bool   `json:"secureCookies,omitempty" env:"SECURE_COOKIES"`

	// AllowedOrigins lists extra origins allowed to open the live socket.
	AllowedOrigins []string `json:"allowedOrigins,omitempty" env:"ALLOWED_ORIGINS" envSeparator:","`

	// TrustProxy reads the client address from forwarding headers.
	TrustProxy bool `json:"trustProxy,omitempty" env:"TRUST_PROXY"`

	ShutdownTimeout Duration `json:"shutdownTimeout" env:"SHUTDOWN_TIMEOUT"`
}

// SessionConfig contains live instance limits.
type SessionConfig struct {
	IdleTimeout     Duration `json:"idleTimeout" env:"IDLE_TIMEOUT"`
	CleanupInterval Duration `json:"cleanupInterval" env:"CLEANUP_INTERVAL"`
	MaxInstances    int      `json:"maxInstances" env:"MAX_INSTANCES"`
	MaxPerIP        int      `json:"maxPerIP" env:"MAX_PER_IP"`
	EvictOnIPLimit  bool     `json:"evictOnIPLimit" env:"EVICT_ON_IP_LIMIT"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" env:"LEVEL"`

	// Format is text or json.
	Format string `json:"format" env:"FORMAT"`
}

// TelemetryConfig toggles the observability middleware.
type TelemetryConfig struct {
	Metrics bool `json:"metrics" env:"METRICS"`
	Tracing bool `json:"tracing" env:"TRACING"`

	// TracerName names the tracer used for event spans.
	TracerName string `json:"tracerName,omitempty" env:"TRACER_NAME"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			Title:           DefaultTitle,
			CookieName:      "showcase_sid",
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Session: SessionConfig{
			IdleTimeout:     Duration(30 * time.Minute),
			CleanupInterval: Duration(30 * time.Second),
			MaxInstances:    10000,
			MaxPerIP:        100,
			EvictOnIPLimit:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			Metrics:    true,
			TracerName: "github.com/vango-dev/showcase",
		},
	}
}

// Load reads configuration from dir. A missing showcase.json leaves the
// defaults in place; a .env file in dir is loaded when present. Environment
// overrides are applied and the result is validated.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	cfg := New()
	if _, err := os.Stat(path); err == nil {
		loaded, err := readFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if !os.IsNotExist(err) {
		return nil, errors.New("E120").Wrap(err)
	}
	return finish(cfg, filepath.Join(dir, EnvFileName))
}

// LoadFile reads configuration from the given file, which must exist.
// A .env file next to it is loaded when present.
func LoadFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return finish(cfg, filepath.Join(filepath.Dir(path), EnvFileName))
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E120").
				WithDetail("No config file at " + path).
				WithSuggestion("Create " + ConfigFileName + " or drop the --config flag")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON")
	}
	cfg.configPath = path
	return cfg, nil
}

func finish(cfg *Config, envFile string) (*Config, error) {
	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv loads the given dotenv files, skipping missing ones, and then
// overrides fields from SHOWCASE_* environment variables. Variables that
// are already set win over dotenv values.
func (c *Config) ApplyEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.New("E121").WithDetail("Failed to read " + f).Wrap(err)
		}
	}
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.New("E121").Wrap(err)
	}
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Write encodes the configuration as indented JSON.
func (c *Config) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.Title == "" {
		c.Server.Title = d.Server.Title
	}
	if c.Server.CookieName == "" {
		c.Server.CookieName = d.Server.CookieName
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Session.IdleTimeout == 0 {
		c.Session.IdleTimeout = d.Session.IdleTimeout
	}
	if c.Session.CleanupInterval == 0 {
		c.Session.CleanupInterval = d.Session.CleanupInterval
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Telemetry.TracerName == "" {
		c.Telemetry.TracerName = d.Telemetry.TracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetailf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout < 0 {
		return errors.New("E122").WithDetail("server.shutdownTimeout must not be negative")
	}
	if c.Session.IdleTimeout < 0 || c.Session.CleanupInterval < 0 {
		return errors.New("E122").WithDetail("session timeouts must not be negative")
	}
	if c.Session.MaxInstances < 0 || c.Session.MaxPerIP < 0 {
		return errors.New("E122").WithDetail("session limits must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("E122").
			WithDetail("log.level must be one of debug, info, warn, error; got " + strconv.Quote(c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E122").
			WithDetail("log.format must be text or json; got " + strconv.Quote(c.Log.Format))
	}
	return nil
}

// Address returns the listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Duration is a time.Duration written as a string ("30s", "5m") in JSON and
// in the environment.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String formats d like time.Duration.
func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
