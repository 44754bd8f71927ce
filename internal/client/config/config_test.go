package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:8000", c.ServerURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "2006-01-02", c.DateLayout)
	assert.False(t, c.S3Enabled())
}

func TestLoadConfig_NoArgsGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"server_url":      "http://json:8000",
		"request_timeout": "40s",
		"timezone":        "UTC",
		"s3_bucket":       "exports",
	})

	cfg, err := LoadConfig([]string{"-c", path, "-a", "http://flag:9000"})
	require.NoError(t, err)

	want := defaults()
	want.ServerURL = "http://flag:9000"
	want.RequestTimeout = 40 * time.Second
	want.Timezone = "UTC"
	want.S3Bucket = "exports"
	assert.Empty(t, cmp.Diff(want, cfg))
	assert.True(t, cfg.S3Enabled())
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://api", "-t", "5", "-d", "x.db", "-z", "UTC", "-o", "/tmp", "-l", "json"},
			mutate: func(c *Config) {
				c.ServerURL = "http://api"
				c.RequestTimeout = 5 * time.Second
				c.DatabasePath = "x.db"
				c.Timezone = "UTC"
				c.ExportDir = "/tmp"
				c.LogFormat = "json"
			},
		},
		{
			name:   "foreign flags ignored",
			args:   []string{"-c", "cfg.json", "-x", "1"},
			mutate: func(c *Config) {},
		},
		{
			name:    "non numeric timeout",
			args:    []string{"-t", "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			want := defaults()
			tt.mutate(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestParseJson(t *testing.T) {
	t.Run("partial file overrides only named keys", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"database_path": "other.db", "request_timeout": 2000000000})
		cfg := defaults()
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "other.db", cfg.DatabasePath)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	})

	t.Run("no config flag", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJson(cfg, []string{"-a", "x"}))
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("missing file", func(t *testing.T) {
		err := parseJson(defaults(), []string{"-c", filepath.Join(t.TempDir(), "absent.json")})
		require.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
		require.Error(t, parseJson(defaults(), []string{"-c", bad}))
	})
}

func TestLocation(t *testing.T) {
	c := defaults()
	loc, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	c.Timezone = "UTC"
	loc, err = c.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	c.Timezone = "Mars/Olympus"
	_, err = c.Location()
	require.Error(t, err)

	_, err = LoadConfig([]string{"-z", "Mars/Olympus"})
	require.Error(t, err)
}
