// Package config loads runtime configuration for the phishwatch CLI.
//
// Sources, later ones override earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Flags
//
//	-a string   backend base URL
//	-t int      request timeout (seconds)
//	-d string   local SQLite database path
//	-z string   IANA time zone used for dates ("Local" for the host zone)
//	-o string   directory for exported CSV files
//	-l string   log format: text or json
//
// # JSON schema
//
// Durations use timex.Duration, so "15s" and integer nanoseconds both work:
//
//	{
//	  "server_url": "http://localhost:8000",
//	  "request_timeout": "15s",
//	  "database_path": "phishwatch.db",
//	  "timezone": "Europe/Riga",
//	  "date_layout": "2006-01-02",
//	  "datetime_layout": "2006-01-02 15:04:05",
//	  "export_dir": ".",
//	  "log_format": "text",
//	  "log_level": "info",
//	  "s3_bucket": "phishwatch-exports",
//	  "s3_region": "us-east-1",
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin"
//	}
//
// Only keys present in the file override earlier values.
package config
