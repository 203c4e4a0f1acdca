package conversation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/skill-flow/internal/diarizer"
	"github.com/nguyentantai21042004/skill-flow/internal/logger"
	"github.com/nguyentantai21042004/skill-flow/internal/memory"
)

func newRequestID() string { return uuid.NewString() }

// request tracks one pass through the pipeline.
type request struct {
	id    string
	stage Stage
	temps []string
}

func (r *request) enter(ctx context.Context, s Stage) error {
	if err := ctx.Err(); err != nil {
		return &stageError{stage: r.stage, err: err}
	}
	r.stage = s
	return nil
}

// Analyze runs normalize -> measure -> transcribe -> diarize -> remember.
func (a *implAnalyzer) Analyze(ctx context.Context, audioPath string) (res Result) {
	req := &request{id: a.newID(), stage: StageReceived}
	ctx = logger.WithRequestID(ctx, req.id)
	startTime := time.Now()

	defer a.cleanup(ctx, req)
	defer func() {
		if r := recover(); r != nil {
			res = a.fail(ctx, req, fmt.Errorf("unexpected panic: %v", r))
		}
	}()

	a.logger.Info(ctx, "Starting conversation analysis: %s", audioPath)

	res, err := a.run(ctx, req, audioPath)
	if err != nil {
		return a.fail(ctx, req, err)
	}

	req.stage = StageCompleted
	a.logger.Info(ctx, "Conversation analysis completed in %s: %.1fs audio, %d segments, %d speakers",
		time.Since(startTime).Round(time.Millisecond), res.AudioDuration, len(res.SpeakerSegments), res.NumSpeakers)
	return res
}

func (a *implAnalyzer) run(ctx context.Context, req *request, audioPath string) (Result, error) {
	if err := req.enter(ctx, StageNormalizing); err != nil {
		return Result{}, err
	}
	wavPath, err := a.converter.Normalize(ctx, audioPath)
	if err != nil {
		return Result{}, &stageError{stage: req.stage, err: err}
	}
	req.temps = append(req.temps, wavPath)

	duration, err := a.converter.Duration(wavPath)
	if err != nil {
		return Result{}, &stageError{stage: req.stage, err: fmt.Errorf("measure duration: %w", err)}
	}

	if err := req.enter(ctx, StageTranscribing); err != nil {
		return Result{}, err
	}
	transcript := a.transcriber.Transcribe(ctx, wavPath, duration)

	if err := req.enter(ctx, StageDiarizing); err != nil {
		return Result{}, err
	}
	memoryContext := a.memory.Summaries(a.opts.ContextSize)
	segments := a.diarizer.Diarize(ctx, diarizer.Request{
		Transcript:    transcript,
		AudioPath:     wavPath,
		Duration:      duration,
		MemoryContext: memoryContext,
		MaxSpeakers:   a.opts.MaxSpeakers,
	})
	if segments == nil {
		segments = []diarizer.Segment{}
	}

	res := Result{
		RequestID:       req.id,
		Transcript:      transcript.Text,
		SpeakerSegments: segments,
		AudioDuration:   duration,
		NumSpeakers:     CountSpeakers(segments),
		MemoryContext:   memoryContext,
	}

	if err := req.enter(ctx, StageSummarizing); err != nil {
		return Result{}, err
	}
	if _, err := a.memory.Append(ctx, memory.Entry{
		Transcript:  res.Transcript,
		NumSpeakers: res.NumSpeakers,
		Duration:    res.AudioDuration,
	}); err != nil {
		a.logger.Warn(ctx, "Failed to save conversation memory: %v", err)
	}

	return res, nil
}

// AnalyzeUpload persists an uploaded file to the temp dir and analyzes it.
func (a *implAnalyzer) AnalyzeUpload(ctx context.Context, data []byte, filename string) Result {
	if err := os.MkdirAll(a.opts.TempDir, 0755); err != nil {
		return a.failUpload(ctx, fmt.Errorf("create temp dir: %w", err))
	}

	f, err := os.CreateTemp(a.opts.TempDir, "upload-*"+filepath.Ext(filename))
	if err != nil {
		return a.failUpload(ctx, fmt.Errorf("create upload file: %w", err))
	}
	path := f.Name()
	defer os.Remove(path)

	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return a.failUpload(ctx, fmt.Errorf("write upload file: %w", err))
	}

	return a.Analyze(ctx, path)
}

func (a *implAnalyzer) failUpload(ctx context.Context, err error) Result {
	return a.fail(ctx, &request{id: a.newID(), stage: StageReceived}, err)
}

func (a *implAnalyzer) fail(ctx context.Context, req *request, err error) Result {
	failedAt := req.stage
	var se *stageError
	if errors.As(err, &se) {
		failedAt = se.stage
	}
	req.stage = StageFailed

	a.logger.Error(ctx, "Conversation analysis failed during %s: %v", failedAt, err)
	return Failed(req.id, err)
}

// Failed builds the error-shaped Result.
func Failed(requestID string, err error) Result {
	return Result{
		RequestID:       requestID,
		Error:           err.Error(),
		Transcript:      "",
		SpeakerSegments: []diarizer.Segment{},
		AudioDuration:   0,
		NumSpeakers:     0,
		MemoryContext:   []string{},
	}
}

// cleanup removes the request's temp files, logging failures.
func (a *implAnalyzer) cleanup(ctx context.Context, req *request) {
	if !req.stage.Terminal() {
		a.logger.Warn(ctx, "Request %s ended in non-terminal stage %s", req.id, req.stage)
	}
	for _, p := range req.temps {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			a.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", p, err)
		} else {
			a.logger.Debug(ctx, "Cleaned up temp file: %s", p)
		}
	}
}

// CountSpeakers is the number of distinct speaker labels.
func CountSpeakers(segments []diarizer.Segment) int {
	seen := make(map[string]struct{}, len(segments))
	for _, s := range segments {
		seen[s.Speaker] = struct{}{}
	}
	return len(seen)
}
