package conversation

// Stage is the position of a request in the pipeline.
type Stage string

const (
	StageReceived     Stage = "received"
	StageNormalizing  Stage = "normalizing"
	StageTranscribing Stage = "transcribing"
	StageDiarizing    Stage = "diarizing"
	StageSummarizing  Stage = "summarizing"
	StageCompleted    Stage = "completed"
	StageFailed       Stage = "failed"
)

// Terminal reports whether no further transition is possible.
func (s Stage) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

// stageError records which stage an error came from.
type stageError struct {
	stage Stage
	err   error
}

func (e *stageError) Error() string { return string(e.stage) + ": " + e.err.Error() }

func (e *stageError) Unwrap() error { return e.err }
