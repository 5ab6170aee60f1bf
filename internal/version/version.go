package version

import "fmt"

var (
	// GitCommit is set at build time with -ldflags
	GitCommit string

	Version = "0.1.0"

	// VersionPrerelease is the pre-release marker, empty for releases
	VersionPrerelease = "dev"
)

// GetVersion returns the human readable version
func GetVersion() string {
	version := Version
	if VersionPrerelease != "" {
		version = fmt.Sprintf("%s-%s", version, VersionPrerelease)
	}
	if GitCommit != "" {
		version = fmt.Sprintf("%s (%s)", version, GitCommit)
	}
	return version
}
