package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Browser  BrowserConfig  `mapstructure:"browser" yaml:"browser"`
	Research ResearchConfig `mapstructure:"research" yaml:"research"`
	LinkedIn LinkedInConfig `mapstructure:"linkedin" yaml:"linkedin"`
}

// LoggerConfig controls the zap logger and its file rotation.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// ServerConfig configures the HTTP API surface.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// BrowserConfig configures the Chrome process and its persistent profile.
// The profile directory is the only state shared across invocations; it
// keeps login cookies alive between runs.
type BrowserConfig struct {
	Headless          bool          `mapstructure:"headless" yaml:"headless"`
	UserDataDir       string        `mapstructure:"user_data_dir" yaml:"user_data_dir"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
}

// ResearchConfig bounds the search and fetch behavior of the research
// pipeline.
type ResearchConfig struct {
	MaxResults    int           `mapstructure:"max_results" yaml:"max_results"`
	SearchURL     string        `mapstructure:"search_url" yaml:"search_url"`
	SearchTimeout time.Duration `mapstructure:"search_timeout" yaml:"search_timeout"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second" yaml:"rate_per_second"`
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// LinkedInConfig carries the posting pipeline's URLs, waits, and optional
// credentials. The waits are tuning values observed against the live UI,
// not invariants, which is why they live in configuration.
type LinkedInConfig struct {
	FeedURL        string        `mapstructure:"feed_url" yaml:"feed_url"`
	ShareURL       string        `mapstructure:"share_url" yaml:"share_url"`
	LoginWait      time.Duration `mapstructure:"login_wait" yaml:"login_wait"`
	EditorWait     time.Duration `mapstructure:"editor_wait" yaml:"editor_wait"`
	FallbackWait   time.Duration `mapstructure:"fallback_wait" yaml:"fallback_wait"`
	ConfirmWait    time.Duration `mapstructure:"confirm_wait" yaml:"confirm_wait"`
	AltConfirmWait time.Duration `mapstructure:"alt_confirm_wait" yaml:"alt_confirm_wait"`
	ComposeSettle  time.Duration `mapstructure:"compose_settle" yaml:"compose_settle"`
	ConfirmSettle  time.Duration `mapstructure:"confirm_settle" yaml:"confirm_settle"`
	ScreenshotPath string        `mapstructure:"screenshot_path" yaml:"screenshot_path"`

	// Email and Password are optional. When absent the posting pipeline
	// hands off to manual login instead of failing.
	Email    string `mapstructure:"email" yaml:"email"`
	Password string `mapstructure:"password" yaml:"password"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "postpilot")
	v.SetDefault("logger.log_file", "postpilot.log")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	// -- Server --
	v.SetDefault("server.addr", ":4000")

	// -- Browser --
	// Headful by default: the manual-login fallback needs a window the
	// operator can see.
	v.SetDefault("browser.headless", false)
	v.SetDefault("browser.user_data_dir", "")
	v.SetDefault("browser.navigation_timeout", "30s")

	// -- Research --
	v.SetDefault("research.max_results", 5)
	v.SetDefault("research.search_url", "https://html.duckduckgo.com/html/")
	v.SetDefault("research.search_timeout", "15s")
	v.SetDefault("research.fetch_timeout", "10s")
	v.SetDefault("research.rate_per_second", 4.0)
	v.SetDefault("research.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")

	// -- LinkedIn --
	v.SetDefault("linkedin.feed_url", "https://www.linkedin.com/feed/")
	v.SetDefault("linkedin.share_url", "https://www.linkedin.com/feed/?shareActive=true")
	// Generous: credential login may involve an interactive security check.
	v.SetDefault("linkedin.login_wait", "180s")
	v.SetDefault("linkedin.editor_wait", "30s")
	v.SetDefault("linkedin.fallback_wait", "5s")
	v.SetDefault("linkedin.confirm_wait", "30s")
	v.SetDefault("linkedin.alt_confirm_wait", "10s")
	v.SetDefault("linkedin.compose_settle", "1s")
	v.SetDefault("linkedin.confirm_settle", "3s")
	v.SetDefault("linkedin.screenshot_path", "linkedin_error.png")
}

// Load reads the optional config file and the environment into a Config.
// An absent config file is not an error; defaults and env vars apply.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("POSTPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials follow the conventional variable names rather than the
	// POSTPILOT_ prefix. Absence is a valid, expected state.
	_ = v.BindEnv("linkedin.email", "LINKEDIN_EMAIL")
	_ = v.BindEnv("linkedin.password", "LINKEDIN_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper unmarshals a prepared viper instance into a Config and fills in
// derived values.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Browser.UserDataDir == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("could not resolve home directory: %w", err)
		}
		cfg.Browser.UserDataDir = filepath.Join(home, ".postpilot", "browser-profile")
	}

	return &cfg, nil
}

// NewDefaultConfig returns a Config populated with defaults only. Intended
// for tests.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := FromViper(v)
	if err != nil {
		panic(fmt.Sprintf("failed to build default config: %v", err))
	}
	return cfg
}
