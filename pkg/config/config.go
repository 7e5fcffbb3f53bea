package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Matching MatchingConfig
	Input    InputConfig
	Output   OutputConfig
	Log      LogConfig
}

type MatchingConfig struct {
	SimilarityThreshold float64
	ScoreCache          bool
}

type InputConfig struct {
	Charset string
}

type OutputConfig struct {
	JournalFormat string
	OutputFormat  string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables, after loading envFile when it exists.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Matching: MatchingConfig{
			SimilarityThreshold: getEnvAsFloat("STATEMENT_SIMILARITY_THRESHOLD", 0.8),
			ScoreCache:          getEnvAsBool("STATEMENT_SCORE_CACHE", true),
		},
		Input: InputConfig{
			Charset: getEnv("STATEMENT_INPUT_CHARSET", "utf-8"),
		},
		Output: OutputConfig{
			JournalFormat: getEnv("STATEMENT_JOURNAL_FORMAT", "sqlite"),
			OutputFormat:  getEnv("STATEMENT_OUTPUT_FORMAT", "csv"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the commands cannot work with
func (c *Config) Validate() error {
	if c.Matching.SimilarityThreshold < 0 || c.Matching.SimilarityThreshold > 1 {
		return fmt.Errorf("STATEMENT_SIMILARITY_THRESHOLD must be between 0 and 1, got %v", c.Matching.SimilarityThreshold)
	}

	if c.Output.JournalFormat == "" || c.Output.OutputFormat == "" {
		return errors.New("output formats must not be empty")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
