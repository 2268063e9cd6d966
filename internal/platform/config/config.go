// Package config carga la configuración del servidor web: defaults, archivo YAML y env.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	API      APIConfig      `yaml:"api"`
	Session  SessionConfig  `yaml:"session"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Accounts AccountsConfig `yaml:"accounts"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// APIConfig apunta al backend remoto de Dulce Dosis.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`

	// AuthScheme precede al token en Authorization (p.ej. "Token abc").
	AuthScheme string `yaml:"auth_scheme"`

	// TreatmentsPath es el recurso de tratamientos, sin slashes.
	TreatmentsPath string `yaml:"treatments_path"`
}

type SessionConfig struct {
	// Secret firma la cookie. Vacío => se genera uno efímero al arrancar.
	Secret string `yaml:"secret"`
	Name   string `yaml:"name"`
	MaxAge int    `yaml:"max_age"` // segundos
	Secure bool   `yaml:"secure"`
}

type DatabaseConfig struct {
	// DSN de Postgres para el registro de actividad. Vacío => in-memory.
	DSN string `yaml:"dsn"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

type AccountsConfig struct {
	// TransliterateUsername pliega acentos (é -> e) antes de filtrar el username.
	TransliterateUsername bool `yaml:"transliterate_username"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		API: APIConfig{
			BaseURL:        "http://localhost:8000/api",
			Timeout:        10 * time.Second,
			AuthScheme:     "Token",
			TreatmentsPath: "treatments",
		},
		Session: SessionConfig{
			Name:   "dulce_dosis",
			MaxAge: 7 * 24 * 60 * 60,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "dulce-dosis-web",
		},
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr is required")
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url is invalid: %w", err)
	}
	if strings.Trim(c.API.TreatmentsPath, "/ ") == "" {
		return fmt.Errorf("api.treatments_path is required")
	}
	if c.Session.Secret != "" && len(c.Session.Secret) < 32 {
		return fmt.Errorf("session.secret must be at least 32 bytes")
	}
	if strings.TrimSpace(c.Session.Name) == "" {
		return fmt.Errorf("session.name is required")
	}
	return nil
}

func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv sobreescribe con variables de entorno (modo dev/handoff):
// PORT, API_BASE_URL, SESSION_SECRET, DB_DSN, LOG_LEVEL, LOG_FORMAT, APP_NAME.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := strings.TrimSpace(getenv("API_BASE_URL")); v != "" {
		c.API.BaseURL = v
	}
	if v := getenv("SESSION_SECRET"); v != "" {
		c.Session.Secret = v
	}
	if v := strings.TrimSpace(getenv("DB_DSN")); v != "" {
		c.Database.DSN = v
	}
	if v := strings.TrimSpace(getenv("LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(getenv("LOG_FORMAT")); v != "" {
		c.Log.Format = v
	}
	if v := strings.TrimSpace(getenv("APP_NAME")); v != "" {
		c.Log.App = v
	}
}

// Load arma la config final: defaults, archivo opcional y env encima.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
