package bom

import (
	"os/exec"
	"runtime/debug"
	"strings"
)

// Build metadata, injected with
// -ldflags "-X github.com/idlab-discover/ecoscore-cli/internal/bom.Version=v1.2.0 -X ...bom.Commit=abc123"
var (
	Version = ""
	Commit  = ""
)

// develVersion is recorded when no source knows the build.
const develVersion = "devel"

var readBuildInfo = debug.ReadBuildInfo

// versionSources are tried in order; the first non-empty answer wins.
var versionSources = []func() string{
	ldflagsVersion,
	moduleVersion,
	gitVersion,
	commitVersion,
}

// ToolVersion is the ecoscore version shown by --version and recorded as
// the tool component of every ML-BOM.
func ToolVersion() string {
	for _, src := range versionSources {
		if v := src(); v != "" {
			return v
		}
	}
	return develVersion
}

// "dev" is what local release scripts inject for unreleased builds.
func ldflagsVersion() string {
	if Version == "dev" {
		return ""
	}
	return Version
}

func moduleVersion() string {
	info, ok := readBuildInfo()
	if !ok || info == nil || info.Main.Version == "(devel)" {
		return ""
	}
	return info.Main.Version
}

// gitVersion covers `go run .` inside a checkout.
func gitVersion() string {
	if v := runGit("describe", "--tags", "--always", "--dirty"); v != "" {
		return v
	}
	return runGit("rev-parse", "--short", "HEAD")
}

func commitVersion() string {
	if Commit == "" {
		return ""
	}
	return "commit-" + Commit
}

func runGit(args ...string) string {
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
