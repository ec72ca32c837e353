package env

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"k8s.io/client-go/util/homedir"

	"github.com/flowbuilder/flow/pkg/kube"
	"github.com/flowbuilder/flow/pkg/secrets"
)

// SecretEnvPrefix is prepended to secret names when they are resolved from
// the CLI process environment.
const SecretEnvPrefix = "FLOW_SECRET_"

// DefaultKubeConfig is the conventional kubeconfig location. The place is
// determined by homedir.HomeDir() and can differ from os.UserHomeDir().
var DefaultKubeConfig = filepath.Join(homedir.HomeDir(), ".kube", "config")

func kubeConfigHome() string {
	if val, ok := os.LookupEnv("KUBECONFIG"); ok {
		return val
	}
	return DefaultKubeConfig
}

// Settings defines global variables and settings
type Settings struct {
	// KubeConfig is the path to an explicit kubeconfig file. This overwrites the value in $KUBECONFIG
	KubeConfig string
	// Namespace used when working with Kubernetes
	Namespace string
	// RequestTimeout is the timeout value (in seconds) when making API calls
	RequestTimeout int64
	// APIServer is the cluster address used together with a bearer-token secret
	APIServer string
	// TokenSecret is the name of the secret holding a bearer token for the cluster
	TokenSecret string
}

// DefaultSettings initializes the settings to its defaults
var DefaultSettings = &Settings{
	Namespace:   "default",
	TokenSecret: "KUBERNETES_API_KEY",
}

// AddFlags binds flags to the given flagset.
func (s *Settings) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.KubeConfig, "kubeconfig", kubeConfigHome(), "Path to your Kubernetes configuration file.")
	fs.StringVarP(&s.Namespace, "namespace", "n", "default", "Target namespace for the job.")
	fs.Int64Var(&s.RequestTimeout, "request-timeout", 0, "Request timeout value, in seconds. Defaults to 0 (unlimited)")
	fs.StringVar(&s.APIServer, "api-server", kube.DefaultHost, "API server address used together with a bearer-token secret.")
	fs.StringVar(&s.TokenSecret, "token-secret", "KUBERNETES_API_KEY", "Name of the secret holding a bearer token for the cluster.")
}

// GetResolver is a helper function that takes the Settings struct and returns
// a credential resolver bound to them. CLI secrets come from FLOW_SECRET_-
// prefixed environment variables.
func GetResolver(s *Settings) *kube.Resolver {
	r := kube.NewResolver(secrets.EnvStore{Prefix: SecretEnvPrefix})
	r.Host = s.APIServer
	r.KubeConfig = s.KubeConfig
	r.Timeout = time.Duration(s.RequestTimeout) * time.Second
	return r
}
