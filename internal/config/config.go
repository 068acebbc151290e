// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/JakeFAU/share-preview/internal/metadata"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Site     SiteConfig     `mapstructure:"site"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port                  int `mapstructure:"port"`
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds"`
}

// AuthConfig defines API authentication toggles.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
}

// FetchConfig configures the remote document fetcher.
type FetchConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
	Accept         string `mapstructure:"accept"`
}

// SiteConfig locates the local site tree.
type SiteConfig struct {
	Root             string   `mapstructure:"root"`
	ConfigCandidates []string `mapstructure:"config_candidates"`
	PublicDir        string   `mapstructure:"public_dir"`
}

// DefaultsConfig holds fallback values for the local layout flow.
type DefaultsConfig struct {
	Title           string   `mapstructure:"title"`
	Description     string   `mapstructure:"description"`
	SiteURL         string   `mapstructure:"site_url"`
	Image           string   `mapstructure:"image"`
	ImageCandidates []string `mapstructure:"image_candidates"`
	ImageAlt        string   `mapstructure:"image_alt"`
	ImageWidth      int      `mapstructure:"image_width"`
	ImageHeight     int      `mapstructure:"image_height"`
	Favicon         string   `mapstructure:"favicon"`
}

// UploadConfig gates the image upload endpoint.
type UploadConfig struct {
	Enabled  bool  `mapstructure:"enabled"`
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SHAREPREVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := metadata.DefaultDefaults()
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout_seconds", 30)
	v.SetDefault("fetch.timeout_seconds", 10)
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (compatible; FinterestMetadataBot/1.0)")
	v.SetDefault("fetch.accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	v.SetDefault("site.root", ".")
	v.SetDefault("site.config_candidates", d.ConfigCandidates)
	v.SetDefault("site.public_dir", d.PublicDir)
	v.SetDefault("defaults.title", d.Title)
	v.SetDefault("defaults.description", d.Description)
	v.SetDefault("defaults.site_url", d.SiteURL)
	v.SetDefault("defaults.image", d.Image)
	v.SetDefault("defaults.image_candidates", d.ImageCandidates)
	v.SetDefault("defaults.image_alt", d.ImageAlt)
	v.SetDefault("defaults.image_width", d.ImageWidth)
	v.SetDefault("defaults.image_height", d.ImageHeight)
	v.SetDefault("defaults.favicon", d.Favicon)
	v.SetDefault("upload.enabled", false)
	v.SetDefault("upload.max_bytes", 10<<20)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("server.request_timeout_seconds must be > 0")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be > 0")
	}
	if c.Server.RequestTimeoutSeconds <= c.Fetch.TimeoutSeconds {
		return fmt.Errorf("server.request_timeout_seconds must exceed fetch.timeout_seconds")
	}
	if strings.TrimSpace(c.Site.Root) == "" {
		return fmt.Errorf("site.root is required")
	}
	if len(c.Site.ConfigCandidates) == 0 {
		return fmt.Errorf("site.config_candidates must list at least one path")
	}
	if u, err := url.Parse(c.Defaults.SiteURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("defaults.site_url must be an absolute URL")
	}
	if c.Defaults.ImageWidth <= 0 || c.Defaults.ImageHeight <= 0 {
		return fmt.Errorf("defaults.image_width and defaults.image_height must be > 0")
	}
	if c.Upload.Enabled && c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be > 0 when upload is enabled")
	}
	if c.Auth.Enabled && c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key must be set when auth is enabled")
	}
	return nil
}

// FetchTimeout returns the hard bound on a single remote fetch.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// RequestTimeout returns the bound on a whole API request.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// MetadataDefaults converts the defaults and site sections into metadata.Defaults.
func (c Config) MetadataDefaults() metadata.Defaults {
	return metadata.Defaults{
		ConfigCandidates: append([]string(nil), c.Site.ConfigCandidates...),
		PublicDir:        c.Site.PublicDir,
		ImageCandidates:  append([]string(nil), c.Defaults.ImageCandidates...),
		Image:            c.Defaults.Image,
		Title:            c.Defaults.Title,
		Description:      c.Defaults.Description,
		SiteURL:          c.Defaults.SiteURL,
		ImageAlt:         c.Defaults.ImageAlt,
		ImageWidth:       c.Defaults.ImageWidth,
		ImageHeight:      c.Defaults.ImageHeight,
		Favicon:          c.Defaults.Favicon,
	}
}
