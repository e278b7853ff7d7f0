package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

const appName = "task-tracker"

// Tag is set at link time: -ldflags "-X github.com/agalitsyn/task-tracker/version.Tag=v1.0.0".
var Tag string

type buildInfo struct {
	revision string
	builtAt  string
	dirty    bool
}

func readBuildInfo() (buildInfo, bool) {
	var info buildInfo
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info, false
	}
	for _, setting := range bi.Settings {
		// https://pkg.go.dev/runtime/debug#BuildSetting
		switch setting.Key {
		case "vcs.revision":
			info.revision = setting.Value
		case "vcs.time":
			info.builtAt = setting.Value
		case "vcs.modified":
			info.dirty = setting.Value == "true"
		}
	}
	return info, info.revision != ""
}

func String() string {
	info, ok := readBuildInfo()
	if !ok {
		return appName + " dev"
	}
	return format(Tag, info)
}

func format(tag string, info buildInfo) string {
	revision := info.revision
	if len(revision) > 7 {
		revision = revision[:7]
	}

	builtAt := info.builtAt
	if t, err := time.Parse(time.RFC3339, builtAt); err == nil {
		builtAt = t.Format("2006-01-02 15:04:05")
	}

	s := appName
	if tag != "" {
		s += " " + tag
	}
	s += fmt.Sprintf(" %s at %s", revision, builtAt)
	if info.dirty {
		s += " dirty"
	}
	return s
}
