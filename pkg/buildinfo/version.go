// Package buildinfo records which relviz build is running.
//
// Release builds stamp the variables through the linker:
//
//	go build -ldflags "-X github.com/matzehuels/relviz/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/relviz/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/relviz/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/relviz
//
// Version also scopes cache keys, so a new release never reads entries
// resolved by an older one.
package buildinfo

import "fmt"

// Stamped at link time; the defaults mark a development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information as "key: value" lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template: the command name followed by
// String.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
