package task

import (
	"context"

	"github.com/flowbuilder/flow/pkg/kube"
)

// Context is the task execution context provided by the host engine. Clients
// is the client-acquisition capability; the engine normally injects a
// *kube.Resolver so every invocation re-resolves credentials.
type Context struct {
	context.Context
	Clients kube.Factory
}
