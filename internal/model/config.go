package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DataConfig controls where dashboard state is stored.
type DataConfig struct {
	// Path is the SQLite database file backing the key-value store.
	Path string `mapstructure:"path" yaml:"path"`

	// DefaultBusiness is the business selector for a fresh state.
	DefaultBusiness string `mapstructure:"default_business" yaml:"default_business"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme          string `mapstructure:"theme" yaml:"theme"`
	TickIntervalMS int    `mapstructure:"tick_interval_ms" yaml:"tick_interval_ms"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`

	// File receives log output while the terminal dashboard is running.
	File string `mapstructure:"file" yaml:"file"`
}

// MailConfig holds settings for mailing reports. The IMAP password is
// never stored here; it comes from the environment or the system keyring.
type MailConfig struct {
	From     string `mapstructure:"from" yaml:"from"`
	To       string `mapstructure:"to" yaml:"to"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	TLS      bool   `mapstructure:"tls" yaml:"tls"`
	Mailbox  string `mapstructure:"mailbox" yaml:"mailbox"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Variant string        `mapstructure:"variant" yaml:"variant"`
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Mail    MailConfig    `mapstructure:"mail" yaml:"mail"`
}

// configDir returns ~/.config/zerohour, or the working directory when the
// home directory cannot be determined.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "zerohour")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/zerohour/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	dir := configDir()
	return &AppConfig{
		Variant: string(VariantTargets),
		Data: DataConfig{
			Path:            filepath.Join(dir, "zerohour.db"),
			DefaultBusiness: DefaultBusiness,
		},
		Display: DisplayConfig{
			Theme:          "default",
			TickIntervalMS: 1000,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "zerohour.log"),
		},
		Mail: MailConfig{
			Port:    "993",
			TLS:     true,
			Mailbox: "Drafts",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// ZEROHOUR_* environment variables override file values. If the file does
// not exist, the defaults (plus environment overrides) are returned.
func LoadConfig(path string) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("zerohour")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("variant", def.Variant)
	v.SetDefault("data.path", def.Data.Path)
	v.SetDefault("data.default_business", def.Data.DefaultBusiness)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("display.tick_interval_ms", def.Display.TickIntervalMS)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.to", "")
	v.SetDefault("mail.host", "")
	v.SetDefault("mail.port", def.Mail.Port)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.tls", def.Mail.TLS)
	v.SetDefault("mail.mailbox", def.Mail.Mailbox)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if _, err := ParseVariant(cfg.Variant); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Display.TickIntervalMS <= 0 {
		cfg.Display.TickIntervalMS = def.Display.TickIntervalMS
	}
	if strings.TrimSpace(cfg.Data.DefaultBusiness) == "" {
		cfg.Data.DefaultBusiness = DefaultBusiness
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("variant", cfg.Variant)
	v.Set("data", cfg.Data)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)
	v.Set("mail", cfg.Mail)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
