package version

// Base version information.
//
// This is the fallback data used when version information from git is not
// provided via go ldflags. The in-tree values are dummy values used for
// "git archive", which also works for GitHub tar downloads.

var (
	gitVersion = "v0.0.0-master+$Format:%h$"
	gitCommit  = "$Format:%H$" // sha1 from git, output of $(git rev-parse HEAD)

	buildDate = "1970-01-01T00:00:00Z" // build date in ISO8601 format, output of $(date -u +'%Y-%m-%dT%H:%M:%SZ')
)
