package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/skill-flow/internal/config"
	"github.com/nguyentantai21042004/skill-flow/internal/memory"
)

// writeConfig writes a config rooted in dir. ffmpeg is replaced by a
// binary that always fails, and info logging is on.
func writeConfig(t *testing.T, dir, geminiURL string) string {
	t.Helper()
	content := `
gemini:
  api_keys: ["file-key"]
  base_url: "` + geminiURL + `"
transcription:
  api_key: "file-lemonfox"
audio:
  ffmpeg_path: "false"
memory:
  path: "` + filepath.Join(dir, "memory.json") + `"
paths:
  input: "` + filepath.Join(dir, "inbox") + `"
  output: "` + filepath.Join(dir, "output") + `"
  temp: "` + filepath.Join(dir, "temp") + `"
logging:
  level: "info"
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSplitKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitKeys(" a, ,b ,"))
	assert.Nil(t, splitKeys(""))
}

func TestApplyOverrides(t *testing.T) {
	cfg := &config.Config{
		Gemini:        config.GeminiConfig{APIKeys: []string{"file"}},
		Transcription: config.TranscriptionConfig{APIKey: "file"},
		Logging:       config.LoggingConfig{Level: "info"},
	}
	v := viper.New()
	v.Set("gemini_api_keys", "k1,k2")
	v.Set("lemonfox_api_key", "lf")
	v.Set("log_level", "debug")

	applyOverrides(cfg, v)

	assert.Equal(t, []string{"k1", "k2"}, cfg.Gemini.APIKeys)
	assert.Equal(t, "lf", cfg.Transcription.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestApplyOverridesKeepsFileValues(t *testing.T) {
	cfg := &config.Config{Gemini: config.GeminiConfig{APIKeys: []string{"file"}}}
	applyOverrides(cfg, viper.New())
	assert.Equal(t, []string{"file"}, cfg.Gemini.APIKeys)
}

func TestLoadConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("LEMONFOX_API_KEY", "env-lemonfox")

	v := viper.New()
	bindEnv(v)
	v.Set("config", path)

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"env-key"}, cfg.Gemini.APIKeys)
	assert.Equal(t, "env-lemonfox", cfg.Transcription.APIKey)
	assert.Equal(t, config.StrategyLLM, cfg.Diarization.Strategy)
}

func TestLoadConfigMissingFile(t *testing.T) {
	v := viper.New()
	v.Set("config", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := loadConfig(v)
	assert.Error(t, err)
}

func TestMemoryCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	records := []memory.Record{
		{Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), Speakers: 2, Duration: 12.5, Summary: "Planning the launch."},
		{Timestamp: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), Speakers: 1, Duration: 3, Summary: "A quick reminder."},
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "memory.json"), data, 0644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"memory", "--config", path})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "SUMMARY")
	assert.Contains(t, out.String(), "Planning the launch.")
	assert.Contains(t, out.String(), "12.5s")
	assert.Contains(t, out.String(), "A quick reminder.")
	assert.DirExists(t, filepath.Join(dir, "inbox"))
}

func TestMemoryCommandEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"memory", "--json", "--config", path})
	require.NoError(t, cmd.Execute())

	assert.JSONEq(t, "[]", out.String())
}

func TestRejectsUnsupportedFiles(t *testing.T) {
	for _, args := range [][]string{
		{"analyze", "movie.mp4"},
		{"image", "scan.tiff"},
	} {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs(append(args, "--config", "does-not-matter.yaml"))
		assert.ErrorContains(t, cmd.Execute(), "unsupported")
	}
}
