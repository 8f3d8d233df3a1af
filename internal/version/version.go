package version

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/booktoc/internal/version.Version=v0.3.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version line printed by --version.
func String() string {
	s := "booktoc " + Version
	if GitCommit != "unknown" && GitCommit != "" {
		s += " (" + GitCommit + ")"
	}
	if BuildTime != "unknown" && BuildTime != "" {
		s += " built " + BuildTime
	}
	return s
}
