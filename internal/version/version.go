package version

import (
	"fmt"
	"runtime/debug"
)

// ModuleVersion describes the build, preferring the module version and
// falling back to the vcs revision recorded by the go toolchain.
func ModuleVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return versionFromBuildInfo(info)
}

func versionFromBuildInfo(info *debug.BuildInfo) string {
	// When built, e.g., using go install .../crackcrypt-go/cmd/...@vX.Y.Z.
	version := info.Main.Version
	if version != "(devel)" && version != "" {
		return version
	}

	// The vcs.* fields are populated when running "go build" in a
	// git checkout, without listing specific source files on the
	// commandline.
	m := make(map[string]string)
	for _, setting := range info.Settings {
		m[setting.Key] = setting.Value
	}
	revision, ok := m["vcs.revision"]
	if !ok {
		return "(devel)"
	}
	version = fmt.Sprintf("git %s", revision)
	if t, ok := m["vcs.time"]; ok {
		version += " " + t
	}
	// Any untracked file counts as a local modification.
	if m["vcs.modified"] != "false" {
		version += " (with local changes)"
	}
	return version
}

func DisplayVersion(tool string) {
	fmt.Printf("%s (crackcrypt-go module) %s\n", tool, ModuleVersion())
}
