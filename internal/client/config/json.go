package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/phishwatch/internal/flagx"
	"github.com/dmitrijs2005/phishwatch/internal/timex"
)

// JsonConfig is the on-disk DTO. Pointer fields distinguish "absent" from
// "empty" so a partial file only overrides what it names.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DatabasePath   *string         `json:"database_path"`
	Timezone       *string         `json:"timezone"`
	DateLayout     *string         `json:"date_layout"`
	DateTimeLayout *string         `json:"datetime_layout"`
	ExportDir      *string         `json:"export_dir"`
	LogFormat      *string         `json:"log_format"`
	LogLevel       *string         `json:"log_level"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3Endpoint     *string         `json:"s3_endpoint"`
	S3AccessKey    *string         `json:"s3_access_key"`
	S3SecretKey    *string         `json:"s3_secret_key"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.Timezone, jc.Timezone)
	setString(&cfg.DateLayout, jc.DateLayout)
	setString(&cfg.DateTimeLayout, jc.DateTimeLayout)
	setString(&cfg.ExportDir, jc.ExportDir)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
