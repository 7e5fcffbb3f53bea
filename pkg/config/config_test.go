package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.8, cfg.Matching.SimilarityThreshold)
	assert.True(t, cfg.Matching.ScoreCache)
	assert.Equal(t, "utf-8", cfg.Input.Charset)
	assert.Equal(t, "sqlite", cfg.Output.JournalFormat)
	assert.Equal(t, "csv", cfg.Output.OutputFormat)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("STATEMENT_SIMILARITY_THRESHOLD", "0.9")
	t.Setenv("STATEMENT_JOURNAL_FORMAT", "excel")
	t.Setenv("STATEMENT_SCORE_CACHE", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.9, cfg.Matching.SimilarityThreshold)
	assert.Equal(t, "excel", cfg.Output.JournalFormat)
	assert.False(t, cfg.Matching.ScoreCache)
}

func TestLoad_EnvFile(t *testing.T) {
	os.Unsetenv("STATEMENT_INPUT_CHARSET")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STATEMENT_INPUT_CHARSET=windows-1252\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("STATEMENT_INPUT_CHARSET") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", cfg.Input.Charset)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Matching: MatchingConfig{SimilarityThreshold: 0.8},
			Output:   OutputConfig{JournalFormat: "sqlite", OutputFormat: "csv"},
			Log:      LogConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"threshold above one", func(c *Config) { c.Matching.SimilarityThreshold = 1.5 }, true},
		{"negative threshold", func(c *Config) { c.Matching.SimilarityThreshold = -0.1 }, true},
		{"empty journal format", func(c *Config) { c.Output.JournalFormat = "" }, true},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
