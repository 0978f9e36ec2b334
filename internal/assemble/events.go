package assemble

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageGenerate is the concurrent section-generation stage.
	StageGenerate Stage = "generate"
	// StageMerge is the single-threaded merge stage.
	StageMerge Stage = "merge"
	// StageSerialize is the streaming write stage.
	StageSerialize Stage = "serialize"
	// StagePad is the size-padding stage.
	StagePad Stage = "pad"
	// StageValidate is the final validation stage.
	StageValidate Stage = "validate"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a section (or for the overall pipeline when
// Section is empty). Percent is only meaningful for the streaming stages.
type Event struct {
	Section string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	Percent float64
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
