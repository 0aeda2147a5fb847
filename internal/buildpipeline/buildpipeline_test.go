package buildpipeline_test

import (
	"sync"
	"testing"
	"time"

	"github.com/nalgeon/be"

	"c0c/internal/buildpipeline"
)

func TestTimings(t *testing.T) {
	var a, b buildpipeline.Timings
	a.Add(buildpipeline.StageLex, time.Millisecond)
	a.Add(buildpipeline.StageLex, time.Millisecond)
	b.Add(buildpipeline.StageParse, 3*time.Millisecond)
	a.Merge(b)

	be.Equal(t, a.Duration(buildpipeline.StageLex), 2*time.Millisecond)
	be.True(t, a.Has(buildpipeline.StageParse))
	be.True(t, !a.Has(buildpipeline.StageEmit))
	be.Equal(t, a.Sum(), 5*time.Millisecond)
	be.Equal(t, a.Sum(buildpipeline.StageParse), 3*time.Millisecond)
}

func TestRecorderConcurrent(t *testing.T) {
	var rec buildpipeline.Recorder
	files := []string{"a.c0", "b.c0", "c.c0"}
	buildpipeline.EmitQueued(&rec, files)

	var wg sync.WaitGroup
	for _, f := range files {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buildpipeline.Emit(&rec, buildpipeline.Event{File: f, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
			buildpipeline.Emit(&rec, buildpipeline.Event{File: f, Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone})
		}()
	}
	wg.Wait()

	be.Equal(t, len(rec.Events()), 9)
	for _, f := range files {
		be.Equal(t, rec.Last()[f], buildpipeline.StatusDone)
	}
	be.True(t, buildpipeline.StatusCached.Terminal())
	be.True(t, !buildpipeline.StatusWorking.Terminal())
}

func TestDisplayFiles(t *testing.T) {
	got := buildpipeline.DisplayFiles([]string{"./b.c0", "a.c0", "b.c0", ""}, "")
	be.Equal(t, len(got), 2)
	be.Equal(t, got[0], "a.c0")
	be.Equal(t, got[1], "b.c0")

	base := t.TempDir()
	be.Equal(t, buildpipeline.DisplayPath(base+"/src/x.c0", base), "src/x.c0")
}
