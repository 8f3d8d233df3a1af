// Package metrics records what a build did to its pages.
//
// Components receive a Recorder. NoopRecorder is the default, so callers never
// nil-check; PrometheusRecorder is swapped in when a metrics textfile is
// configured and is written out once the build finishes.
package metrics
