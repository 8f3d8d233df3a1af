package metrics

import (
	"testing"
	"time"
)

type countingRecorder struct {
	pages   map[PageResult]int
	builds  map[BuildOutcome]int
	loads   int
	records int
}

func (c *countingRecorder) IncPage(r PageResult)                         { c.pages[r]++ }
func (c *countingRecorder) ObserveManifestLoad(time.Duration)            { c.loads++ }
func (c *countingRecorder) ObserveBuild(_ time.Duration, o BuildOutcome) { c.builds[o]++ }
func (c *countingRecorder) AddAutotocRecords(n int)                      { c.records += n }

func TestRecorderInterfaceSatisfied(t *testing.T) {
	var _ Recorder = NoopRecorder{}
	var _ Recorder = (*PrometheusRecorder)(nil)
	var _ Recorder = &countingRecorder{}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncPage(PageInjected)
	r.ObserveManifestLoad(time.Millisecond)
	r.ObserveBuild(time.Second, BuildSuccess)
	r.AddAutotocRecords(3)
}

func TestCountingRecorder(t *testing.T) {
	c := &countingRecorder{pages: map[PageResult]int{}, builds: map[BuildOutcome]int{}}
	var r Recorder = c
	r.IncPage(PageFailed)
	r.ObserveBuild(0, BuildFailed)
	if c.pages[PageFailed] != 1 || c.builds[BuildFailed] != 1 {
		t.Fatalf("unexpected counts: %+v", c)
	}
}
