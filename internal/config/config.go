package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	FileName  = "jsonsql.config.json"
	EnvPrefix = "JSONSQL"
)

type Config struct {
	Version    string     `json:"version" mapstructure:"version"`
	Store      Store      `json:"store" mapstructure:"store"`
	Server     Server     `json:"server" mapstructure:"server"`
	Generation Generation `json:"generation" mapstructure:"generation"`
	Log        Log        `json:"log" mapstructure:"log"`
}

type Store struct {
	Provider     string `json:"provider" mapstructure:"provider"`
	StoragePath  string `json:"storage_path" mapstructure:"storage_path"`
	DefaultsPath string `json:"defaults_path,omitempty" mapstructure:"defaults_path"`
	URLEnv       string `json:"url_env,omitempty" mapstructure:"url_env"`
}

type Server struct {
	Port int `json:"port" mapstructure:"port"`
}

type Generation struct {
	Dialect string `json:"dialect" mapstructure:"dialect"`
	// Merge conformance errors and warnings into generation results.
	ReportConformance bool `json:"report_conformance" mapstructure:"report_conformance"`
}

type Log struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"` // console or json
}

var envKeys = []string{
	"store.provider",
	"store.storage_path",
	"store.defaults_path",
	"store.url_env",
	"server.port",
	"generation.dialect",
	"generation.report_conformance",
	"log.level",
	"log.format",
}

// BindEnv lets JSONSQL_STORE_PROVIDER style variables override the config file.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		v.BindEnv(key)
	}
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.Store.Provider == "" {
		c.Store.Provider = "file"
	}
	if c.Store.StoragePath == "" {
		c.Store.StoragePath = "~/.jsonsql/table-definitions"
	}
	if c.Store.DefaultsPath == "" {
		c.Store.DefaultsPath = "table-definitions"
	}
	if c.Store.URLEnv == "" {
		c.Store.URLEnv = "JSONSQL_DATABASE_URL"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Generation.Dialect == "" {
		c.Generation.Dialect = "STANDARD"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Store.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Store.URLEnv)
	}
	return dbURL, nil
}

// UsesDatabase reports whether mappings live in a SQL database.
func (c *Config) UsesDatabase() bool {
	switch c.Store.Provider {
	case "sqlite", "sqlite3", "postgresql", "postgres", "pq", "mysql":
		return true
	}
	return false
}

// StoragePath returns the storage path with a leading ~ expanded.
func (c *Config) StoragePath() (string, error) {
	return ExpandHome(c.Store.StoragePath)
}

func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func (c *Config) Validate() error {
	supportedProviders := []string{"file", "memory", "postgresql", "postgres", "pq", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Store.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported store provider: %s. Supported providers: %v", c.Store.Provider, supportedProviders)
	}

	if c.Store.Provider == "file" && strings.TrimSpace(c.Store.StoragePath) == "" {
		return fmt.Errorf("store.storage_path cannot be empty")
	}

	if c.UsesDatabase() && c.Store.URLEnv == "" {
		return fmt.Errorf("store.url_env cannot be empty for provider %s", c.Store.Provider)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format: %s. Supported formats: [console json]", c.Log.Format)
	}

	return nil
}
