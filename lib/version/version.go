// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/aifbin/aifbin/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// FormatVersion is the container format version this build writes.
// Decoding accepts any version; only the magic is checked.
const FormatVersion = 2

// commitFromBuildInfo returns the VCS revision and modified flag
// stamped by the toolchain, shortened to 7 characters.
func commitFromBuildInfo(info *debug.BuildInfo) (commit string, dirty bool) {
	if info == nil {
		return "", false
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return commit, dirty
}

// Commit returns the git commit SHA, from -ldflags or the toolchain's
// VCS stamp.
func Commit() string {
	commit, _ := resolve()
	return commit
}

func resolve() (string, bool) {
	if GitCommit != "unknown" {
		return GitCommit, GitDirty == "true"
	}
	info, _ := debug.ReadBuildInfo()
	if commit, dirty := commitFromBuildInfo(info); commit != "" {
		return commit, dirty
	}
	return GitCommit, GitDirty == "true"
}

// Info returns a formatted version string suitable for version output.
func Info() string {
	commit, dirty := resolve()
	suffix := ""
	if dirty {
		suffix = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, commit, suffix, BuildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s\n  Container format: writes v%d, reads any version",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH, FormatVersion)
}

// Short returns just the version number.
func Short() string {
	return Version
}
