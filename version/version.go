// Package version reports the build the binary was produced from.
package version

import (
	"runtime/debug"
	"strings"
	"time"
)

// Tag is set at link time: -ldflags "-X github.com/agalitsyn/taskdash/version.Tag=v1.2.3".
var Tag string

type Info struct {
	Tag      string
	Revision string
	Time     time.Time
	Dirty    bool
}

// Get reads the VCS stamp embedded by the go tool.
func Get() Info {
	info := Info{Tag: Tag}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.Time, _ = time.Parse(time.RFC3339, s.Value)
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

func (i Info) String() string {
	if i.Revision == "" {
		if i.Tag != "" {
			return i.Tag
		}
		return "dev"
	}

	parts := []string{}
	if i.Tag != "" {
		parts = append(parts, i.Tag)
	}
	parts = append(parts, shortRevision(i.Revision))
	if !i.Time.IsZero() {
		parts = append(parts, "at "+i.Time.UTC().Format("2006-01-02 15:04:05"))
	}
	if i.Dirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, " ")
}

func String() string {
	return Get().String()
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
