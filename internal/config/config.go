// Package config loads the settings shared by formgen-cli and
// formgen-server from formgen.yaml, FORMGEN_* environment variables and
// defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/i18n"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

// EnvPrefix prefixes environment overrides, e.g. FORMGEN_SERVER_ADDR.
const EnvPrefix = "FORMGEN"

// Session drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config is the full configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Session     SessionConfig     `mapstructure:"session"`
	Definitions DefinitionsConfig `mapstructure:"definitions"`
	Form        FormConfig        `mapstructure:"form"`
	Disks       map[string]string `mapstructure:"disks"`
	Theme       ThemeConfig       `mapstructure:"theme"`
	I18n        I18nConfig        `mapstructure:"i18n"`
	Log         LogConfig         `mapstructure:"log"`
}

// ServerConfig configures formgen-server.
type ServerConfig struct {
	Addr       string        `mapstructure:"addr"`
	CSRFCookie string        `mapstructure:"csrf_cookie"`
	FlashTTL   time.Duration `mapstructure:"flash_ttl"`
}

// SessionConfig selects the flash store.
type SessionConfig struct {
	Driver string      `mapstructure:"driver"`
	Redis  RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the redis flash store settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// DefinitionsConfig points at the form definition directory.
type DefinitionsConfig struct {
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

// FormConfig holds form wide defaults.
type FormConfig struct {
	RequireAll      bool   `mapstructure:"require_all"`
	DisableAll      bool   `mapstructure:"disable_all"`
	PlaceholderAll  bool   `mapstructure:"placeholder_all"`
	Lang            string `mapstructure:"lang"`
	RichTextAPIKey  string `mapstructure:"rich_text_api_key"`
	TranslateErrors bool   `mapstructure:"translate_errors"`
}

// ThemeConfig names a go-theme manifest file and variant.
type ThemeConfig struct {
	Manifest string `mapstructure:"manifest"`
	Variant  string `mapstructure:"variant"`
}

// I18nConfig names a directory of translation catalogs.
type I18nConfig struct {
	Dir      string `mapstructure:"dir"`
	Fallback string `mapstructure:"fallback"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.csrf_cookie", "_token")
	v.SetDefault("server.flash_ttl", 5*time.Minute)
	v.SetDefault("session.driver", DriverMemory)
	v.SetDefault("session.redis.addr", "localhost:6379")
	v.SetDefault("session.redis.prefix", session.DefaultKeyPrefix)
	v.SetDefault("definitions.dir", "forms")
	v.SetDefault("definitions.watch", false)
	v.SetDefault("form.require_all", true)
	v.SetDefault("form.translate_errors", true)
	v.SetDefault("i18n.fallback", "en")
	v.SetDefault("log.level", "info")
}

// Load reads path, or formgen.yaml in the working directory when path is
// empty. A missing default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("formgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Session.Driver = strings.ToLower(strings.TrimSpace(c.Session.Driver))
	switch c.Session.Driver {
	case DriverMemory, DriverRedis:
	default:
		return fmt.Errorf("config: session.driver must be %q or %q, got %q", DriverMemory, DriverRedis, c.Session.Driver)
	}
	if c.Session.Driver == DriverRedis && strings.TrimSpace(c.Session.Redis.Addr) == "" {
		return errors.New("config: session.redis.addr is required for the redis driver")
	}
	if c.Server.FlashTTL <= 0 {
		return fmt.Errorf("config: server.flash_ttl must be positive, got %s", c.Server.FlashTTL)
	}
	if c.Form.Lang != "" {
		c.Form.Lang = i18n.NormalizeLang(c.Form.Lang)
	}
	return nil
}

// Options returns the form options for the configured defaults.
func (c FormConfig) Options() []form.Option {
	opts := []form.Option{
		form.WithRequireAll(c.RequireAll),
		form.WithDisableAll(c.DisableAll),
		form.WithPlaceholderAll(c.PlaceholderAll),
		form.WithTranslateErrors(c.TranslateErrors),
	}
	if c.Lang != "" {
		opts = append(opts, form.WithLang(c.Lang))
	}
	if c.RichTextAPIKey != "" {
		opts = append(opts, form.WithRichTextAPIKey(c.RichTextAPIKey))
	}
	return opts
}

// StorageDisks returns the configured disks. Disk names are lower case.
func (c *Config) StorageDisks() storage.Disks {
	return storage.Disks(c.Disks)
}

// RedisStoreConfig converts the redis settings for session.NewRedisStore.
func (c *Config) RedisStoreConfig() *session.RedisConfig {
	cfg := session.DefaultRedisConfig(c.Session.Redis.Addr)
	cfg.Password = c.Session.Redis.Password
	cfg.DB = c.Session.Redis.DB
	if c.Session.Redis.Prefix != "" {
		cfg.KeyPrefix = c.Session.Redis.Prefix
	}
	return cfg
}
