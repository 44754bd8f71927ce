package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the CLI.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	DatabasePath   string

	// Timezone and layouts control how timestamps are bucketed and shown.
	Timezone       string
	DateLayout     string
	DateTimeLayout string

	ExportDir string

	LogFormat string
	LogLevel  string

	// S3 export sink; disabled while S3Bucket is empty.
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "phishwatch.db"
	c.Timezone = "Local"
	c.DateLayout = "2006-01-02"
	c.DateTimeLayout = "2006-01-02 15:04:05"
	c.ExportDir = "."
	c.LogFormat = "text"
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// S3Enabled reports whether exports may be uploaded to object storage.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config from defaults, the optional JSON file and
// flags found in args (typically os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}
