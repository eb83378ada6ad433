// Package version reports the threadmatch build. Values come from ldflags when
// set, otherwise from the module build info embedded by `go install`.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/jmylchreest/threadmatch/pkg/renderer"
)

// Set with -ldflags "-X github.com/jmylchreest/threadmatch/internal/version.Version=x.y.z".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info describes a build.
type Info struct {
	Version          string `json:"version"`
	Commit           string `json:"commit"`
	Date             string `json:"date"`
	Modified         bool   `json:"modified,omitempty"`
	GoVersion        string `json:"go_version"`
	Platform         string `json:"platform"`
	RendererProtocol string `json:"renderer_protocol"`
}

// GetInfo returns the build information of the running binary.
func GetInfo() Info {
	info := Info{
		Version:          Version,
		Commit:           Commit,
		Date:             Date,
		GoVersion:        runtime.Version(),
		Platform:         runtime.GOOS + "/" + runtime.GOARCH,
		RendererProtocol: renderer.ProtocolVersion,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = withBuildInfo(info, bi)
	}
	return info
}

// withBuildInfo fills fields still at their defaults from module build info.
func withBuildInfo(info Info, bi *debug.BuildInfo) Info {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String formats info on one line.
func (i Info) String() string {
	var details []string
	if i.Commit != "unknown" {
		commit := i.Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		if i.Modified {
			commit += "-dirty"
		}
		details = append(details, "commit: "+commit)
	}
	if i.Date != "unknown" {
		details = append(details, "built: "+i.Date)
	}
	details = append(details, i.GoVersion, i.Platform, "renderer protocol "+i.RendererProtocol)
	return fmt.Sprintf("threadmatch version %s (%s)", i.Version, strings.Join(details, ", "))
}

// String returns the version line of the running binary.
func String() string {
	return GetInfo().String()
}
