package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nguyentantai21042004/skill-flow/internal/audio"
	"github.com/nguyentantai21042004/skill-flow/internal/config"
	"github.com/nguyentantai21042004/skill-flow/internal/conversation"
	"github.com/nguyentantai21042004/skill-flow/internal/diarizer"
	"github.com/nguyentantai21042004/skill-flow/internal/gemini"
	"github.com/nguyentantai21042004/skill-flow/internal/imaging"
	"github.com/nguyentantai21042004/skill-flow/internal/logger"
	"github.com/nguyentantai21042004/skill-flow/internal/memory"
	"github.com/nguyentantai21042004/skill-flow/internal/transcriber"
	"github.com/nguyentantai21042004/skill-flow/pkg/executor"
)

// app holds the wired components shared by the subcommands.
type app struct {
	cfg       *config.Config
	logger    logger.Logger
	analyzer  conversation.Analyzer
	memory    memory.Store
	describer imaging.Describer
}

// newApp wires every component. Logs go to logOut so stdout stays free for
// command output.
func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*app, error) {
	log := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, logOut)

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	exec := executor.New()
	if _, err := exec.LookPath(cfg.Audio.FFmpegPath); err != nil {
		log.Warn(ctx, "ffmpeg not found at %q, audio analysis will fail: %v", cfg.Audio.FFmpegPath, err)
	}

	gen := gemini.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, cfg.Gemini.BaseURL, log)
	vision := gemini.New(cfg.Gemini.APIKeys, cfg.Gemini.VisionModel, cfg.Gemini.BaseURL, log)

	conv := audio.New(cfg.Audio, cfg.Paths.Temp, exec, log)
	tr := transcriber.New(cfg.Transcription, gen, log)
	mem := memory.New(ctx, memory.NewFilePersister(cfg.Memory.Path), gen, cfg.Memory.Capacity, log)

	analyzer := conversation.New(conversation.Options{
		TempDir:     cfg.Paths.Temp,
		MaxSpeakers: cfg.Diarization.MaxSpeakers,
		ContextSize: cfg.Diarization.ContextSize,
	}, conv, tr, newDiarizer(cfg.Diarization.Strategy, gen, conv, log), mem, log)

	return &app{
		cfg:       cfg,
		logger:    log,
		analyzer:  analyzer,
		memory:    mem,
		describer: imaging.New(vision, log),
	}, nil
}

func newDiarizer(strategy string, gen gemini.Generator, src diarizer.SampleSource, log logger.Logger) diarizer.Diarizer {
	if strategy == config.StrategyAcoustic {
		return diarizer.NewAcoustic(src, log)
	}
	return diarizer.NewLLM(gen, log)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}

// withTimeout bounds one request by performance.request_timeout.
func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.cfg.Performance.RequestTimeout)
}
