package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"c0c/internal/buildpipeline"
)

func TestApplyEvent(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m := NewProgressModel("build", []string{"a.c0", "b.c0"}, events).(*progressModel)

	m.applyEvent(buildpipeline.Event{File: "a.c0", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	be.Equal(t, itemLabel(m.items[0]), "compiling")
	be.Equal(t, m.percent(), 0.2)

	m.applyEvent(buildpipeline.Event{File: "a.c0", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone})
	m.applyEvent(buildpipeline.Event{File: "b.c0", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError, Err: errors.New("SEM3006: missing return\nmore")})
	// later events for a failed file are ignored
	m.applyEvent(buildpipeline.Event{File: "b.c0", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone})
	m.applyEvent(buildpipeline.Event{File: "unknown.c0", Status: buildpipeline.StatusDone})

	be.Equal(t, m.finished(), 2)
	be.Equal(t, m.failed, 1)
	be.Equal(t, m.items[1].note, "SEM3006: missing return")
	be.Equal(t, m.percent(), 1.0)

	m.done = true
	view := m.View()
	be.True(t, strings.Contains(view, "done: build (2/2), 1 failed"))
	be.True(t, strings.Contains(view, "a.c0"))
}

func TestTruncate(t *testing.T) {
	be.Equal(t, truncate("short", 10), "short")
	be.Equal(t, truncate("abcdefghij", 6), "abc...")
	be.Equal(t, truncate("abcdef", 2), "ab")
}
