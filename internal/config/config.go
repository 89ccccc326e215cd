package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	UI       UIConfig
	Cluster  ClusterConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LogConfig controls the file logger. The terminal belongs to the UI, so
// logs only ever go to Path.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DefaultVersionType string `mapstructure:"default_version_type"`
}

// ClusterConfig bounds cluster lookups.
type ClusterConfig struct {
	LoadTimeout time.Duration `mapstructure:"load_timeout"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "domedeploy")
}

func defaultPath() string {
	if p := os.Getenv("DOMEDEPLOY_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "domedeploy", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix
// DOMEDEPLOY_. An explicit path wins over DOMEDEPLOY_CONFIG.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv("DOMEDEPLOY_CONFIG")
	}
	return read(path, true)
}

func read(path string, withEnv bool) (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(dataDir(), "domedeploy.db"))
	v.SetDefault("log.path", filepath.Join(dataDir(), "domedeploy.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.default_version_type", "CUSTOM")
	v.SetDefault("cluster.load_timeout", "10s")

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "domedeploy"))
		v.SetConfigName("config")
	}

	if withEnv {
		v.SetEnvPrefix("DOMEDEPLOY")
		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	}

	// a missing file is fine, a broken one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.UI.DefaultVersionType = strings.ToUpper(strings.TrimSpace(c.UI.DefaultVersionType))
	return c, nil
}

// Save writes the provided config to path (or the default location),
// creating the directory if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = defaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.default_version_type", cfg.UI.DefaultVersionType)
	v.Set("cluster.load_timeout", cfg.Cluster.LoadTimeout.String())

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SaveVersionType records vt as ui.default_version_type in the file at path
// (or the default location). The rest of the file is kept; env overrides
// are not written back.
func SaveVersionType(path, vt string) error {
	if path == "" {
		path = defaultPath()
	}
	cfg, err := read(path, false)
	if err != nil {
		return err
	}
	cfg.UI.DefaultVersionType = strings.ToUpper(strings.TrimSpace(vt))
	return Save(path, cfg)
}
