// Package versions provides version information for the autobahn MCP server.
package versions

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

const unknownStr = "unknown"

// Version information set by build using -ldflags.
var (
	// Version is the current version of the server.
	Version = "dev"
	// Commit is the git commit hash of the build.
	Commit = unknownStr
	// BuildDate is the date the binary was built.
	BuildDate = unknownStr
)

// VersionInfo represents the version information of the server.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersionInfo returns the version information of the server.
func GetVersionInfo() VersionInfo {
	version := Version
	commit := Commit
	buildDate := BuildDate

	// For binaries built from source (go install), ldflags are not set.
	// Fall back to VCS metadata embedded by the Go toolchain.
	if commit == unknownStr {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					commit = setting.Value
				case "vcs.time":
					if buildDate == unknownStr {
						buildDate = setting.Value
					}
				}
			}
		}
	}

	// A "dev" version is replaced with a build identifier derived from the
	// commit so that distinct development builds are distinguishable.
	if version == "dev" {
		if commit != unknownStr && len(commit) >= 8 {
			version = "build-" + commit[:8]
		} else {
			version = "build-unknown"
		}
	}

	// Normalize RFC3339 build dates to a human-readable UTC form. Dates in
	// any other format pass through unchanged.
	if buildDate != unknownStr {
		if t, err := time.Parse(time.RFC3339, buildDate); err == nil {
			buildDate = t.UTC().Format("2006-01-02 15:04:05 UTC")
		}
	}

	return VersionInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
