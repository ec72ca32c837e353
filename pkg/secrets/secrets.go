// Package secrets provides the secret-lookup capability consumed by the
// credential resolver. The host engine owns the actual secret backend; the
// stores here cover the common deployment layouts (environment variables,
// files mounted into a pod) plus an in-memory store for tests and for engines
// that resolve secrets ahead of task execution.
package secrets

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Store looks up secrets by name.
type Store interface {
	// Get returns the secret value for name. found is false when the backend
	// has no entry for the name; err is reserved for backend failures.
	Get(ctx context.Context, name string) (value string, found bool, err error)
}

// Static is an in-memory Store.
type Static map[string]string

func (s Static) Get(_ context.Context, name string) (string, bool, error) {
	v, ok := s[name]
	return v, ok, nil
}

// EnvStore resolves secrets from environment variables. With Prefix
// "FLOW_SECRET_", the secret name "KUBERNETES_API_KEY" maps to the variable
// FLOW_SECRET_KUBERNETES_API_KEY. Secret names are upper-cased and characters
// invalid in variable names are replaced with underscores.
type EnvStore struct {
	Prefix string
}

func (s EnvStore) Get(_ context.Context, name string) (string, bool, error) {
	v, ok := os.LookupEnv(s.Prefix + envKey(name))
	return v, ok, nil
}

func envKey(name string) string {
	r := strings.NewReplacer("-", "_", ".", "_", "/", "_")
	return strings.ToUpper(r.Replace(name))
}

// FileStore reads secrets from a directory holding one file per secret, the
// layout of a Kubernetes secret volume mount. Values are trimmed of trailing
// whitespace so that newline-terminated files round-trip cleanly.
type FileStore struct {
	Fs  afero.Fs
	Dir string
}

// NewFileStore returns a FileStore reading from dir on the OS filesystem.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Fs: afero.NewOsFs(), Dir: dir}
}

func (s *FileStore) Get(_ context.Context, name string) (string, bool, error) {
	path := filepath.Join(s.Dir, name)

	exists, err := afero.Exists(s.Fs, path)
	if err != nil {
		return "", false, err
	}
	if !exists {
		return "", false, nil
	}

	b, err := afero.ReadFile(s.Fs, path)
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(string(b)), true, nil
}
