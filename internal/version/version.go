// Package version reports which dotty build is running.
package version

import (
	"runtime/debug"
)

// Set by the release build:
//
//	-X github.com/arthur-debert/dotty/internal/version.Version=v1.2.0
//	-X github.com/arthur-debert/dotty/internal/version.Commit=abc1234
//	-X github.com/arthur-debert/dotty/internal/version.Date=2026-01-02
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Info describes the running build. Commit and Date are empty when unknown.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Get returns the linker-provided values, completed from the module build
// info when the binary was built without them (go install, go run).
func Get() Info {
	return fromBuildInfo(Info{Version: Version, Commit: Commit, Date: Date}, debug.ReadBuildInfo)
}

func fromBuildInfo(info Info, read func() (*debug.BuildInfo, bool)) Info {
	bi, ok := read()
	if !ok {
		return info
	}

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = shortRevision(s.Value)
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		}
	}
	return info
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
