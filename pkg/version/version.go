// Package version reports readycheck build metadata.
package version

import (
	"fmt"
	"runtime"
)

// Version is set with -ldflags "-X github.com/Aman-CERP/readycheck/pkg/version.Version=..."
// and stays "dev" for local builds.
var Version = "dev"

// Build metadata, also injected through ldflags.
var (
	// Commit is the short git hash of the build.
	Commit = "unknown"

	// Date is the build time in RFC3339.
	Date = "unknown"

	GoVersion = runtime.Version()
)

// Program is the binary name printed in version strings.
const Program = "readycheck"

// BuildInfo is the JSON shape of `readycheck version --json`.
type BuildInfo struct {
	Program   string `json:"program"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// String returns the one-line version banner.
func String() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, go: %s, %s/%s)",
		Program, Version, Commit, Date, GoVersion, runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version.
func Short() string {
	return Version
}

// GetInfo returns the build metadata as a struct.
func GetInfo() BuildInfo {
	return BuildInfo{
		Program:   Program,
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
