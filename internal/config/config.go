package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Segmentation SegmentationConfig `yaml:"segmentation"`
	Chunking     ChunkingConfig     `yaml:"chunking"`
	Paths        PathsConfig        `yaml:"paths"`
	Logging      LoggingConfig      `yaml:"logging"`
	Performance  PerformanceConfig  `yaml:"performance"`
	Gemini       GeminiConfig       `yaml:"gemini"`
	FFmpeg       FFmpegConfig       `yaml:"ffmpeg"`
	Database     DatabaseConfig     `yaml:"database"`
}

type SegmentationConfig struct {
	GapToleranceMs          int64 `yaml:"gap_tolerance_ms"`
	SubstantiveThresholdSec int   `yaml:"substantive_threshold_sec"`
}

type ChunkingConfig struct {
	TargetMs int64 `yaml:"target_ms"`
	MaxMs    int64 `yaml:"max_ms"`
}

type PathsConfig struct {
	Input      string `yaml:"input"`
	Processing string `yaml:"processing"`
	Output     string `yaml:"output"`
	Archived   string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	AudioCodec string `yaml:"audio_codec"`
	ClipAudio  bool   `yaml:"clip_audio"`
}

type DatabaseConfig struct {
	URL        string `yaml:"url"`
	ServiceKey string `yaml:"service_key"`
	Table      string `yaml:"table"`
}

// Load reads the YAML file at path, applies environment overrides and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// applyEnv lets secrets live outside the config file
func (c *Config) applyEnv() {
	if keys := os.Getenv("GEMINI_API_KEYS"); keys != "" {
		c.Gemini.APIKeys = nil
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.Gemini.APIKeys = append(c.Gemini.APIKeys, k)
			}
		}
	}
	if url := os.Getenv("SUPABASE_URL"); url != "" {
		c.Database.URL = url
	}
	if key := os.Getenv("SUPABASE_SERVICE_KEY"); key != "" {
		c.Database.ServiceKey = key
	}
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Segmentation.GapToleranceMs < 0 {
		return fmt.Errorf("segmentation.gap_tolerance_ms must not be negative")
	}
	if c.Segmentation.SubstantiveThresholdSec < 0 {
		return fmt.Errorf("segmentation.substantive_threshold_sec must not be negative")
	}
	if c.Database.URL != "" && c.Database.ServiceKey == "" {
		return fmt.Errorf("database.service_key is required when database.url is set")
	}

	if c.Segmentation.GapToleranceMs == 0 {
		c.Segmentation.GapToleranceMs = 60000
	}
	if c.Segmentation.SubstantiveThresholdSec == 0 {
		c.Segmentation.SubstantiveThresholdSec = 240
	}
	if c.Chunking.TargetMs == 0 {
		c.Chunking.TargetMs = 35000
	}
	if c.Chunking.MaxMs == 0 {
		c.Chunking.MaxMs = 50000
	}
	if c.Chunking.TargetMs > c.Chunking.MaxMs {
		return fmt.Errorf("chunking.target_ms must not exceed chunking.max_ms")
	}
	if c.Paths.Processing == "" {
		c.Paths.Processing = "data/processing"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "copy"
	}
	if c.Database.Table == "" {
		c.Database.Table = "transcript_words"
	}

	return nil
}
