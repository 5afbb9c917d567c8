package util

import (
	"os"
	"path/filepath"
	"runtime/debug"

	git "github.com/go-git/go-git/v5"
)

// FbtVersion is the release version of the tool.
const FbtVersion = "v0.3.1"

// GitRevision returns the revision of the tool for generated file headers.
// When the binary runs from a source checkout, the revision of that checkout
// is used. Otherwise the revision is taken from the build info stamped into
// the binary at build time.
func GitRevision() string {
	if rev := checkoutRevision(); rev != "" {
		return rev
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) >= 8 {
				return setting.Value[:8]
			}
		}
	}
	return "unknown"
}

func checkoutRevision() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	repo, err := git.PlainOpenWithOptions(filepath.Dir(exe), &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()[:8]
}
