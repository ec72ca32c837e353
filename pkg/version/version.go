package version

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Info contains versioning information.
type Info struct {
	GitVersion              string `json:"gitVersion"`
	GitCommit               string `json:"gitCommit"`
	BuildDate               string `json:"buildDate"`
	GoVersion               string `json:"goVersion"`
	Compiler                string `json:"compiler"`
	Platform                string `json:"platform"`
	KubernetesClientVersion string `json:"kubernetesClientVersion"`
}

// String returns info as a human-friendly version string.
func (info Info) String() string {
	return info.GitVersion
}

// Get returns the overall codebase version. It's for detecting
// what code a binary was built from.
func Get() Info {
	// These variables typically come from -ldflags settings and in
	// their absence fall back to the values in pkg/version/base.go

	// this only happens when running from a dev build; release builds are correct
	if strings.Contains(gitVersion, "$Format") {
		gitVersion = os.Getenv("FLOW_DEV_VERSION")
		if gitVersion == "" {
			gitVersion = "not-built-on-release"
		}
		gitCommit = "dev"
	}

	result := Info{
		GitVersion: gitVersion,
		GitCommit:  gitCommit,
		BuildDate:  buildDate,
		GoVersion:  runtime.Version(),
		Compiler:   runtime.Compiler,
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range info.Deps {
			if dep.Path == "k8s.io/client-go" {
				result.KubernetesClientVersion = dep.Version
			}
		}
	}

	return result
}

// MeetsMinimum reports whether the server version string (e.g. "v1.20.2" as
// returned by the discovery client) satisfies the given minimum version.
// GKE-style suffixes ("v1.20.2-gke.1") compare on their semver core.
func MeetsMinimum(server, min string) (bool, error) {
	sv, err := semver.NewVersion(server)
	if err != nil {
		return false, fmt.Errorf("could not parse server version %q: %v", server, err)
	}
	mv, err := semver.NewVersion(min)
	if err != nil {
		return false, fmt.Errorf("could not parse minimum version %q: %v", min, err)
	}

	// compare release cores only so that pre-release suffixes do not rank a
	// matching server version below the minimum
	core := *sv
	if sv.Prerelease() != "" {
		core, err = sv.SetPrerelease("")
		if err != nil {
			return false, err
		}
	}
	return !core.LessThan(mv), nil
}
