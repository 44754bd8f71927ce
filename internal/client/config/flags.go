package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/phishwatch/internal/flagx"
)

var ownFlags = []string{"-a", "-t", "-d", "-z", "-o", "-l"}

func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("phishwatch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.Timezone, "z", cfg.Timezone, "time zone for dates")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "export directory")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format (text|json)")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
