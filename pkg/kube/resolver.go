// Package kube resolves cluster credentials and builds API clients for task
// invocations.
package kube

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	// Import Kubernetes authentication providers to support GKE, etc.
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	"github.com/flowbuilder/flow/pkg/secrets"
)

// Strategy identifies the credential source that produced a client
// configuration.
type Strategy string

const (
	// StrategyBearerToken authenticates with a token looked up from the
	// engine's secret store.
	StrategyBearerToken Strategy = "BearerToken"
	// StrategyInCluster uses the service-account credentials mounted into a
	// pod.
	StrategyInCluster Strategy = "InCluster"
	// StrategyKubeConfig loads a local kubeconfig file, the out-of-cluster
	// developer workflow.
	StrategyKubeConfig Strategy = "KubeConfig"
)

// DefaultHost is the API server address used by the bearer-token strategy
// when the resolver is not given an explicit host. It is the in-cluster
// service DNS name.
const DefaultHost = "https://kubernetes.default.svc"

// Factory builds an API client for a single task invocation.
type Factory interface {
	Client(ctx context.Context, credentialSecret string) (kubernetes.Interface, error)
}

// Resolver picks cluster credentials for a task invocation. Strategies are
// probed in strict order, first success wins:
//
//  1. A bearer token named by credentialSecret in the secret store.
//  2. The in-cluster service-account context.
//  3. A local kubeconfig file.
//
// Nothing is cached between invocations; credentials may change from one run
// to the next.
type Resolver struct {
	// Secrets is the engine's secret-lookup capability. A nil store disables
	// the bearer-token strategy.
	Secrets secrets.Store

	// Host is the API server targeted by the bearer-token strategy. Empty
	// means DefaultHost.
	Host string

	// KubeConfig is an explicit kubeconfig path for the local-file strategy.
	// When empty the usual loading rules apply ($KUBECONFIG, ~/.kube/config).
	KubeConfig string

	// Timeout applies to every request made by clients built by this
	// resolver. Zero means no timeout.
	Timeout time.Duration

	// probe points, replaced in tests
	inCluster      func() (*rest.Config, error)
	fromKubeConfig func(path string) (*rest.Config, error)
}

// NewResolver returns a Resolver backed by the given secret store.
func NewResolver(store secrets.Store) *Resolver {
	return &Resolver{Secrets: store}
}

// Resolve returns the client configuration for one invocation together with
// the strategy that produced it. Resolution failures are *CredentialError.
func (r *Resolver) Resolve(ctx context.Context, credentialSecret string) (*rest.Config, Strategy, error) {
	if r.Secrets != nil && credentialSecret != "" {
		token, found, err := r.Secrets.Get(ctx, credentialSecret)
		if err != nil {
			return nil, StrategyBearerToken, &CredentialError{Strategy: StrategyBearerToken, Err: err}
		}
		if found && token != "" {
			return r.bearerConfig(token), StrategyBearerToken, nil
		}
	}

	config, err := r.loadInCluster()
	if err == nil {
		config.Timeout = r.Timeout
		return config, StrategyInCluster, nil
	}
	if !errors.Is(err, rest.ErrNotInCluster) {
		return nil, StrategyInCluster, &CredentialError{Strategy: StrategyInCluster, Err: err}
	}

	config, err = r.loadKubeConfig()
	if err != nil {
		return nil, StrategyKubeConfig, &CredentialError{Strategy: StrategyKubeConfig, Err: err}
	}
	config.Timeout = r.Timeout
	return config, StrategyKubeConfig, nil
}

// Client builds a clientset bound to whichever strategy succeeded.
func (r *Resolver) Client(ctx context.Context, credentialSecret string) (kubernetes.Interface, error) {
	config, _, err := r.Resolve(ctx, credentialSecret)
	if err != nil {
		return nil, err
	}
	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("could not get Kubernetes client: %v", err)
	}
	return client, nil
}

func (r *Resolver) bearerConfig(token string) *rest.Config {
	host := r.Host
	if host == "" {
		host = DefaultHost
	}
	return &rest.Config{
		Host:        host,
		BearerToken: token,
		Timeout:     r.Timeout,
	}
}

func (r *Resolver) loadInCluster() (*rest.Config, error) {
	if r.inCluster != nil {
		return r.inCluster()
	}
	return rest.InClusterConfig()
}

func (r *Resolver) loadKubeConfig() (*rest.Config, error) {
	if r.fromKubeConfig != nil {
		return r.fromKubeConfig(r.KubeConfig)
	}
	return getRestConfig(r.KubeConfig)
}

// GetConfig returns a deferred-loading client config for the given kubeconfig
// path. An empty path falls back to $KUBECONFIG and then ~/.kube/config.
func GetConfig(kubeconfig string) clientcmd.ClientConfig {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	rules.DefaultClientConfig = &clientcmd.DefaultClientConfig

	overrides := &clientcmd.ConfigOverrides{ClusterDefaults: clientcmd.ClusterDefaults}

	if kubeconfig != "" {
		rules.ExplicitPath = kubeconfig
	}

	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides)
}

func getRestConfig(kubeconfig string) (*rest.Config, error) {
	config, err := GetConfig(kubeconfig).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("could not load Kubernetes config %q: %v", kubeconfig, err)
	}
	return config, nil
}
