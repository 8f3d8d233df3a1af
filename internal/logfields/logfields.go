package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyManifest   = "manifest"
	KeyPath       = "path"
	KeyDocName    = "docname"
	KeyFormat     = "format"
	KeyRecords    = "records"
	KeyChildren   = "children"
	KeyDurationMS = "duration_ms"
	KeyDir        = "dir"
	KeyError      = "error"
	KeyStage      = "stage"
	KeyLine       = "line"
	KeyResult     = "result"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Manifest(p string) slog.Attr     { return slog.String(KeyManifest, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func DocName(d string) slog.Attr      { return slog.String(KeyDocName, d) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Records(n int) slog.Attr         { return slog.Int(KeyRecords, n) }
func Children(n int) slog.Attr        { return slog.Int(KeyChildren, n) }
func Dir(d string) slog.Attr          { return slog.String(KeyDir, d) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Stage(s string) slog.Attr        { return slog.String(KeyStage, s) }
func Line(n int) slog.Attr            { return slog.Int(KeyLine, n) }
func Result(r string) slog.Attr       { return slog.String(KeyResult, r) }
func Since(start time.Time) slog.Attr {
	return DurationMS(float64(time.Since(start).Microseconds()) / 1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
