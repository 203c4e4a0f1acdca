package config

import (
	"os"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Gemini:        GeminiConfig{APIKeys: []string{"k1"}},
				Transcription: TranscriptionConfig{APIKey: "lf"},
				Memory:        MemoryConfig{Path: "memory.json"},
			},
			wantErr: false,
		},
		{
			name: "missing gemini keys",
			config: Config{
				Transcription: TranscriptionConfig{APIKey: "lf"},
				Memory:        MemoryConfig{Path: "memory.json"},
			},
			wantErr: true,
		},
		{
			name: "missing transcription key",
			config: Config{
				Gemini: GeminiConfig{APIKeys: []string{"k1"}},
				Memory: MemoryConfig{Path: "memory.json"},
			},
			wantErr: true,
		},
		{
			name: "missing memory path",
			config: Config{
				Gemini:        GeminiConfig{APIKeys: []string{"k1"}},
				Transcription: TranscriptionConfig{APIKey: "lf"},
			},
			wantErr: true,
		},
		{
			name: "unknown strategy",
			config: Config{
				Gemini:        GeminiConfig{APIKeys: []string{"k1"}},
				Transcription: TranscriptionConfig{APIKey: "lf"},
				Memory:        MemoryConfig{Path: "memory.json"},
				Diarization:   DiarizationConfig{Strategy: "pyannote"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Gemini:        GeminiConfig{APIKeys: []string{"k1"}},
		Transcription: TranscriptionConfig{APIKey: "lf"},
		Memory:        MemoryConfig{Path: "memory.json"},
		Diarization:   DiarizationConfig{Strategy: " Acoustic "},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Diarization.Strategy != StrategyAcoustic {
		t.Errorf("Strategy = %q, want %q", cfg.Diarization.Strategy, StrategyAcoustic)
	}
	if cfg.Diarization.MaxSpeakers != 2 {
		t.Errorf("MaxSpeakers = %d, want 2", cfg.Diarization.MaxSpeakers)
	}
	if cfg.Diarization.ContextSize != 3 {
		t.Errorf("ContextSize = %d, want 3", cfg.Diarization.ContextSize)
	}
	if cfg.Memory.Capacity != 5 {
		t.Errorf("Capacity = %d, want 5", cfg.Memory.Capacity)
	}
	if cfg.Audio.SampleRate != 16000 || cfg.Audio.Channels != 1 {
		t.Errorf("Audio = %+v, want 16000 Hz mono", cfg.Audio)
	}
	if cfg.Gemini.VisionModel != cfg.Gemini.Model {
		t.Errorf("VisionModel = %q, want %q", cfg.Gemini.VisionModel, cfg.Gemini.Model)
	}
	if cfg.Performance.RequestTimeout != 60*time.Second {
		t.Errorf("RequestTimeout = %v, want 60s", cfg.Performance.RequestTimeout)
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
gemini:
  api_keys: ["k1", "k2"]
  model: "gemini-1.5-flash"

transcription:
  api_key: "lemonfox"
  language: "english"

diarization:
  strategy: "llm"
  max_speakers: 3

memory:
  path: "data/conversation_memory.json"

logging:
  level: "debug"
  format: "json"

performance:
  max_concurrent: 4
  request_timeout: 45s
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Gemini.APIKeys) != 2 {
		t.Errorf("APIKeys = %v, want 2 keys", cfg.Gemini.APIKeys)
	}
	if cfg.Diarization.MaxSpeakers != 3 {
		t.Errorf("MaxSpeakers = %v, want 3", cfg.Diarization.MaxSpeakers)
	}
	if cfg.Memory.Path != "data/conversation_memory.json" {
		t.Errorf("Memory.Path = %v, want %v", cfg.Memory.Path, "data/conversation_memory.json")
	}
	if cfg.Performance.RequestTimeout != 45*time.Second {
		t.Errorf("RequestTimeout = %v, want 45s", cfg.Performance.RequestTimeout)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
