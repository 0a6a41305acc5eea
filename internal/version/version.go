// Package version holds build information stamped at link time:
//
//	go build -ldflags "-X github.com/arthur-debert/blocktext/internal/version.Version=v1.0.0"
package version

const unknown = "unknown"

var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// Stamped reports whether v was set at link time.
func Stamped(v string) bool {
	return v != "" && v != unknown
}
