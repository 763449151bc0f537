// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func withBuildVariables(t *testing.T, commit, dirty string) {
	t.Helper()
	savedCommit, savedDirty := GitCommit, GitDirty
	GitCommit, GitDirty = commit, dirty
	t.Cleanup(func() { GitCommit, GitDirty = savedCommit, savedDirty })
}

func TestInfoUsesLinkerVariables(t *testing.T) {
	withBuildVariables(t, "abc1234", "true")
	info := Info()
	if !strings.HasPrefix(info, Version+" (abc1234-dirty, ") {
		t.Errorf("Info() = %q", info)
	}
	if Commit() != "abc1234" {
		t.Errorf("Commit() = %q", Commit())
	}
}

func TestFull(t *testing.T) {
	full := Full()
	for _, want := range []string{runtime.Version(), runtime.GOOS + "/" + runtime.GOARCH, "writes v2"} {
		if !strings.Contains(full, want) {
			t.Errorf("Full() missing %q:\n%s", want, full)
		}
	}
	if Short() != Version {
		t.Errorf("Short() = %q", Short())
	}
}

func TestCommitFromBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
	}}
	commit, dirty := commitFromBuildInfo(info)
	if commit != "0123456" || !dirty {
		t.Errorf("commitFromBuildInfo = %q, %v", commit, dirty)
	}
	if commit, dirty := commitFromBuildInfo(nil); commit != "" || dirty {
		t.Errorf("commitFromBuildInfo(nil) = %q, %v", commit, dirty)
	}
	if commit, _ := commitFromBuildInfo(&debug.BuildInfo{}); commit != "" {
		t.Errorf("commit without VCS stamp = %q", commit)
	}
}
