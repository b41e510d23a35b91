package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds all application configuration.
type Settings struct {
	Log    LogConfig
	Store  StoreConfig
	DB     DBConfig
	Server ServerConfig
	UI     UIConfig

	// ConfigFile is the settings file actually read, empty when none was found
	ConfigFile string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Store drivers
const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
)

// StoreConfig selects the profile store backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// Load reads settings from an optional itrgo.yaml and environment variables
// with the ITRGO_ prefix. A .env file in the working directory is loaded
// first; variables already set in the environment win. An explicit
// configFile must exist.
func Load(configFile string) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("ITRGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("itrgo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "itrgo"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Settings{ConfigFile: v.ConfigFileUsed()}

	// Hosting platforms set PORT; honour it unless ITRGO_SERVER_PORT is explicit.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ITRGO_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Store = StoreConfig{
		Driver: strings.ToLower(v.GetString("store.driver")),
		Path:   v.GetString("store.path"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.UI = UIConfig{
		Theme: strings.ToLower(v.GetString("ui.theme")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("store.driver", StoreDriverFile)
	v.SetDefault("store.path", DefaultProfilePath())

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "itrgo")
	v.SetDefault("db.password", "itrgo")
	v.SetDefault("db.name", "itrgo")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 5)
	v.SetDefault("db.max_idle", 2)

	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	v.SetDefault("ui.theme", "light")
}

// DefaultProfilePath is the YAML profile location used by the file store
func DefaultProfilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "itrgo_profile.yaml"
	}
	return filepath.Join(dir, "itrgo", "profile.yaml")
}

// Validate checks enumerated settings
func (s *Settings) Validate() error {
	switch s.Store.Driver {
	case StoreDriverFile:
		if s.Store.Path == "" {
			return fmt.Errorf("store.path is required for the file store")
		}
	case StoreDriverPostgres:
	default:
		return fmt.Errorf("unsupported store.driver %q (want %s or %s)", s.Store.Driver, StoreDriverFile, StoreDriverPostgres)
	}

	switch s.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log.format %q (want console or json)", s.Log.Format)
	}

	switch s.UI.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("unsupported ui.theme %q (want light or dark)", s.UI.Theme)
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (s *Settings) IsProduction() bool {
	return strings.EqualFold(s.Server.Environment, "production")
}
