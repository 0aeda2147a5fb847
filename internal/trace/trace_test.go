package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"c0c/internal/trace"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := trace.ParseLevel(name)
		be.Err(t, err, nil)
		be.Equal(t, lvl.String(), name)
	}
	_, err := trace.ParseLevel("loud")
	be.True(t, err != nil)
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level trace.Level
		scope trace.Scope
		want  bool
	}{
		{trace.LevelError, trace.ScopeBuild, false},
		{trace.LevelPhase, trace.ScopePhase, true},
		{trace.LevelPhase, trace.ScopeFunction, false},
		{trace.LevelDetail, trace.ScopeFunction, true},
		{trace.LevelDebug, trace.ScopeFunction, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStartNestsSpans(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{Level: trace.LevelPhase, Format: trace.FormatNDJSON, Output: &buf})
	be.Err(t, err, nil)
	ctx := trace.WithTracer(context.Background(), tr)

	ctx, file := trace.Start(ctx, trace.ScopeFile, "file:a.c0")
	pctx, parse := trace.Start(ctx, trace.ScopePhase, "parse")
	_, fn := trace.Start(pctx, trace.ScopeFunction, "fn:main") // filtered at phase level
	fn.End("")
	parse.End("ok")
	file.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	be.Equal(t, len(lines), 4)

	type ev struct {
		Kind     string `json:"kind"`
		Name     string `json:"name"`
		SpanID   uint64 `json:"span_id"`
		ParentID uint64 `json:"parent_id"`
		Detail   string `json:"detail"`
	}
	var evs []ev
	for _, line := range lines {
		var e ev
		be.Err(t, json.Unmarshal([]byte(line), &e), nil)
		evs = append(evs, e)
	}
	be.Equal(t, evs[0].Name, "file:a.c0")
	be.Equal(t, evs[1].Name, "parse")
	be.Equal(t, evs[1].ParentID, evs[0].SpanID)
	be.Equal(t, evs[2].Kind, "end")
	be.Equal(t, evs[2].Detail, "ok")
}

func TestErrorPassesErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{Level: trace.LevelError, Format: trace.FormatText, Output: &buf})
	be.Err(t, err, nil)
	ctx := trace.WithTracer(context.Background(), tr)

	_, sp := trace.Start(ctx, trace.ScopeBuild, "build")
	sp.End("")
	trace.Point(ctx, trace.ScopeBuild, "cache", "hit")
	trace.Error(ctx, trace.ScopeFile, "compile", errors.New("SEM3006: boom"))

	out := buf.String()
	be.Equal(t, strings.Count(out, "\n"), 1)
	be.True(t, strings.Contains(out, "! compile (SEM3006: boom)"))
}

func TestNopIsSafe(t *testing.T) {
	ctx, sp := trace.Start(context.Background(), trace.ScopeBuild, "build")
	be.Equal(t, sp.End("x"), 0)
	be.Equal(t, trace.CurrentSpan(ctx).SpanID, uint64(0))
	var nilSpan *trace.Span
	be.Equal(t, nilSpan.ID(), uint64(0))
}
