package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Gemini        GeminiConfig        `yaml:"gemini"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Audio         AudioConfig         `yaml:"audio"`
	Diarization   DiarizationConfig   `yaml:"diarization"`
	Memory        MemoryConfig        `yaml:"memory"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

type GeminiConfig struct {
	APIKeys     []string `yaml:"api_keys"`
	Model       string   `yaml:"model"`
	VisionModel string   `yaml:"vision_model"`
	BaseURL     string   `yaml:"base_url"`
}

// TranscriptionConfig points at an OpenAI-compatible speech-to-text vendor.
type TranscriptionConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
}

type AudioConfig struct {
	FFmpegPath string `yaml:"ffmpeg_path"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
}

type DiarizationConfig struct {
	Strategy    string `yaml:"strategy"`
	MaxSpeakers int    `yaml:"max_speakers"`
	ContextSize int    `yaml:"context_size"`
}

type MemoryConfig struct {
	Path     string `yaml:"path"`
	Capacity int    `yaml:"capacity"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent  int           `yaml:"max_concurrent"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

const (
	StrategyLLM      = "llm"
	StrategyAcoustic = "acoustic"
)

func (c *Config) Validate() error {
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required")
	}
	if c.Transcription.APIKey == "" {
		return fmt.Errorf("transcription.api_key is required")
	}
	if c.Memory.Path == "" {
		return fmt.Errorf("memory.path is required")
	}

	c.Diarization.Strategy = strings.ToLower(strings.TrimSpace(c.Diarization.Strategy))
	switch c.Diarization.Strategy {
	case "":
		c.Diarization.Strategy = StrategyLLM
	case StrategyLLM, StrategyAcoustic:
	default:
		return fmt.Errorf("diarization.strategy %q is not one of llm, acoustic", c.Diarization.Strategy)
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.VisionModel == "" {
		c.Gemini.VisionModel = c.Gemini.Model
	}
	if c.Transcription.BaseURL == "" {
		c.Transcription.BaseURL = "https://api.lemonfox.ai/v1"
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "whisper-1"
	}
	if c.Transcription.Language == "" {
		c.Transcription.Language = "english"
	}
	if c.Audio.FFmpegPath == "" {
		c.Audio.FFmpegPath = "ffmpeg"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = 1
	}
	if c.Diarization.MaxSpeakers == 0 {
		c.Diarization.MaxSpeakers = 2
	}
	if c.Diarization.ContextSize == 0 {
		c.Diarization.ContextSize = 3
	}
	if c.Memory.Capacity == 0 {
		c.Memory.Capacity = 5
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/inbox"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
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
	if c.Performance.RequestTimeout == 0 {
		c.Performance.RequestTimeout = 60 * time.Second
	}

	return nil
}
