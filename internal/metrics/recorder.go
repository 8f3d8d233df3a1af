package metrics

import "time"

// PageResult labels the outcome of running the per-page hook.
type PageResult string

const (
	PageInjected  PageResult = "injected"  // a directive was added
	PageUnchanged PageResult = "unchanged" // page has no sections, source untouched
	PageFailed    PageResult = "failed"
)

// BuildOutcome labels a finished build.
type BuildOutcome string

const (
	BuildSuccess BuildOutcome = "success"
	BuildFailed  BuildOutcome = "failed"
)

// Recorder receives build observations. Implementations must tolerate being
// called from one goroutine at a time only.
type Recorder interface {
	IncPage(result PageResult)
	ObserveManifestLoad(d time.Duration)
	ObserveBuild(d time.Duration, outcome BuildOutcome)
	AddAutotocRecords(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncPage(PageResult)                       {}
func (NoopRecorder) ObserveManifestLoad(time.Duration)        {}
func (NoopRecorder) ObserveBuild(time.Duration, BuildOutcome) {}
func (NoopRecorder) AddAutotocRecords(int)                    {}
