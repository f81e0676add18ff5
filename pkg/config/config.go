// Package config loads service settings from an optional YAML file.
// Command-line flags and environment variables are applied on top by the
// cmd package.
package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sheetinvoicer/pkg/archive"
	"github.com/sheetinvoicer/pkg/logger"
	"github.com/sheetinvoicer/pkg/mailer"
	"github.com/sheetinvoicer/pkg/mailer/resend"
)

// ErrInvalidConfig indicates the configuration file could not be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full service configuration.
type Config struct {
	Server   Server         `yaml:"server"`
	Mail     Mail           `yaml:"mail"`
	Database Database       `yaml:"database"`
	Storage  archive.Config `yaml:"storage"`
	Log      logger.Config  `yaml:"log"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

// Mail configures invoice delivery.
type Mail struct {
	Resend              resend.Config `yaml:"resend"`
	AttachPDF           bool          `yaml:"attach_pdf"`
	RequireEmailMapping bool          `yaml:"require_email_mapping"`
	FooterMarkdown      string        `yaml:"footer_markdown"`
}

// Database configures dispatch persistence. Persistence is disabled when URL
// is empty.
type Database struct {
	URL string `yaml:"url"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    2 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    10 << 20,
		},
		Mail: Mail{
			Resend:              resend.Config{From: mailer.DefaultFrom},
			AttachPDF:           true,
			RequireEmailMapping: true,
		},
		Storage: archive.Config{Region: archive.DefaultRegion, Prefix: "invoices"},
		Log:     logger.Config{Level: "info", Environment: "production"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Join(ErrInvalidConfig, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail at runtime.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.Join(ErrInvalidConfig, errors.New("server.addr must not be empty"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("server.max_body_bytes must be positive"))
	}
	if c.Storage.Enabled() && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
		return errors.Join(ErrInvalidConfig, errors.New("storage credentials are required when a bucket is set"))
	}
	return nil
}
