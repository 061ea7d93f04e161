package buildconfig

// Build-time variables injected via ldflags:
//
//	-X github.com/Harshitk-cp/veritas/internal/buildconfig.version=v1.2.0
//	-X github.com/Harshitk-cp/veritas/internal/buildconfig.commit=$(git rev-parse --short HEAD)
var (
	version = "dev"
	commit  = "unknown"
)

// Version returns the build version
func Version() string {
	return version
}

// Commit returns the git commit hash
func Commit() string {
	return commit
}

// UserAgent identifies veritas to evidence providers.
func UserAgent() string {
	return "veritas/" + version + " (+https://github.com/Harshitk-cp/veritas)"
}
