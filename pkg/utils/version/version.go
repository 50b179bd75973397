// Package version 保存构建时注入的版本信息
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// 以下变量通过 -ldflags "-X" 注入
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	Modified  = "false"
)

// Info 版本信息
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
	Modified  string `json:"modified" yaml:"modified"`
}

// GetVersion 返回版本信息，未注入的字段尝试从 debug.BuildInfo 的 vcs 设置中补全
func GetVersion() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Modified:  Modified,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			if GitCommit == "unknown" {
				info.Modified = s.Value
			}
		}
	}
	return info
}

// GetVersionString 返回详细版本字符串
func GetVersionString() string {
	info := GetVersion()
	return fmt.Sprintf("gosloc has version %s built with %s from %s (%s, modified: %s) on %s",
		info.Version, info.GoVersion, info.GitCommit, info.Platform, info.Modified, info.BuildDate)
}

// GetShortVersionString 返回简短版本字符串
func GetShortVersionString() string {
	info := GetVersion()
	date := info.BuildDate
	if t, err := time.Parse(time.RFC3339, info.BuildDate); err == nil {
		date = t.Format("2006-01-02")
	}
	return fmt.Sprintf("gosloc version %s (%s)", info.Version, date)
}
