// Package version provides build version information and runtime metadata.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

var (
	// These are set via ldflags at build time
	Version = ""
	Commit  = ""
	Date    = ""

	once sync.Once
)

// ensureInitialized fills unset fields from the binary's embedded build
// info, so plain `go build` and `go install` binaries still report
// something useful.
func ensureInitialized() {
	once.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if Version == "" {
			Version = "dev"
			if ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
				Version = strings.TrimPrefix(info.Main.Version, "v")
			}
		}
		if Commit == "" {
			Commit = "unknown"
			if rev := buildSetting(ok, info, "vcs.revision"); rev != "" {
				Commit = rev
				if len(Commit) > 12 {
					Commit = Commit[:12]
				}
				if buildSetting(ok, info, "vcs.modified") == "true" {
					Commit += "-dirty"
				}
			}
		}
		if Date == "" {
			Date = "unknown"
			if t := buildSetting(ok, info, "vcs.time"); t != "" {
				Date = t
			}
		}
	})
}

func buildSetting(ok bool, info *debug.BuildInfo, key string) string {
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

func Info() string {
	ensureInitialized()
	return fmt.Sprintf("wakalog %s (commit: %s, built: %s, %s/%s)",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version string, resolving defaults if unset.
func Short() string {
	ensureInitialized()
	return Version
}
