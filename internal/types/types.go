package types

import (
	"strings"
	"time"
)

// Stage is a position in the clip pipeline state machine.
type Stage string

const (
	StageReceived           Stage = "received"
	StageDownloading        Stage = "downloading"
	StageTrimming           Stage = "trimming"
	StageExtractingAudio    Stage = "extracting_audio"
	StageTranscribing       Stage = "transcribing"
	StageFormattingCaptions Stage = "formatting_captions"
	StageBurningCaptions    Stage = "burning_captions"
	StageDone               Stage = "done"
	StageFailed             Stage = "failed"
)

// Terminal reports whether no further transitions are possible from s.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}

type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

type ArtifactKind string

const (
	ArtifactRawDownload    ArtifactKind = "raw-download"
	ArtifactTrimmedVideo   ArtifactKind = "trimmed-video"
	ArtifactExtractedAudio ArtifactKind = "extracted-audio"
	ArtifactCaptionedVideo ArtifactKind = "captioned-video"
	ArtifactTranscript     ArtifactKind = "transcript"
	ArtifactCaptionTrack   ArtifactKind = "caption-track"
)

type Artifact struct {
	Kind ArtifactKind
	Path string
}

// Request is the inbound process-video payload.
type Request struct {
	URL   string `json:"url"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Job is the per-request state record threaded through every stage.
type Job struct {
	ID  string
	URL string
	// Start and End keep the raw timecode strings; the downloader receives them verbatim.
	Start string
	End   string

	StartSec    int
	DurationSec int

	Stage      Stage
	Outcome    Outcome
	Failure    string
	Artifacts  map[ArtifactKind]Artifact
	Transcript string
	CreatedAt  time.Time
}

// NewJob records req as a job in the received stage. Surrounding whitespace is
// stripped so the timecodes validated are the ones handed to the downloader.
func NewJob(id string, req Request, now time.Time) *Job {
	return &Job{
		ID:        id,
		URL:       strings.TrimSpace(req.URL),
		Start:     strings.TrimSpace(req.Start),
		End:       strings.TrimSpace(req.End),
		Stage:     StageReceived,
		Artifacts: make(map[ArtifactKind]Artifact),
		CreatedAt: now,
	}
}

// CaptionLine is one timed caption. Offsets are whole seconds from clip start.
type CaptionLine struct {
	Text  string
	Start int
	End   int
}

type EventKind string

const (
	EventStatus     EventKind = "status"
	EventTranscript EventKind = "transcript"
	EventDone       EventKind = "done"
	EventError      EventKind = "error"
)

// Event is one message of the orchestrator-to-client protocol.
type Event struct {
	Kind  EventKind
	JobID string
	// Stage is the job's stage when the event was emitted.
	Stage      Stage
	Message    string
	Transcript string
	Video      string
}

// Terminal reports whether e ends the job's event stream.
func (e Event) Terminal() bool {
	return e.Kind == EventDone || e.Kind == EventError
}

// Sink receives events for a single job in emission order.
type Sink func(Event)

// JobSummary is the externally visible view of an active job.
type JobSummary struct {
	ID        string    `json:"id"`
	Stage     Stage     `json:"stage"`
	URL       string    `json:"url"`
	StartedAt time.Time `json:"started_at"`
}
