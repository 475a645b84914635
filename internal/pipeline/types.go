// Package pipeline defines the progress events a translation run emits
// for consumers such as the terminal UI.
package pipeline

import "time"

// Stage describes a high-level phase of translating one file.
type Stage string

const (
	// StageDecode is the ESTree JSON decoding stage.
	StageDecode Stage = "decode"
	// StageGenerate is the raw code generation stage.
	StageGenerate Stage = "generate"
	// StageCorrect is the correction-pipeline stage.
	StageCorrect Stage = "correct"
	// StageWrite is the output writing stage.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is currently being translated.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished.
	StatusDone Status = "done"
	// StatusError indicates translation of the file failed.
	StatusError Status = "error"
)

// Event reports progress for a single input file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
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

// NopSink discards events. Directory runs fall back to it when the
// caller wants no reporting.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}
