// Package buildpipeline carries progress events of a batch build from the
// driver to whoever renders them (the terminal UI, plain logs, tests).
package buildpipeline

import "time"

// Stage describes a phase of compiling one file.
type Stage string

const (
	StageLoad  Stage = "load"
	StageLex   Stage = "lex"
	StageParse Stage = "parse"
	StageEmit  Stage = "emit"
	StageWrite Stage = "write"
)

// Stages lists the per-file stages in pipeline order.
var Stages = []Stage{StageLoad, StageLex, StageParse, StageEmit, StageWrite}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Terminal reports whether no more events follow for the file.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusError || s == StatusCached
}

// Event reports progress for a file (or for the whole build when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations are called from
// several goroutines when files compile in parallel.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Add accumulates dur into stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] += dur
}

func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the total over stages, or over every stage when none is given.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	if len(stages) == 0 {
		stages = Stages
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}

// Merge adds every stage duration of other.
func (t *Timings) Merge(other Timings) {
	for stage, dur := range other.stages {
		t.Add(stage, dur)
	}
}
