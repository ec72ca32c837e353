package task

import (
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/flowbuilder/flow/pkg/engine/params"
)

// Verb enumerates the Job operations a task can perform.
type Verb string

// Available task verbs
const (
	VerbCreate  Verb = "create"
	VerbDelete  Verb = "delete"
	VerbList    Verb = "list"
	VerbPatch   Verb = "patch"
	VerbRead    Verb = "read"
	VerbReplace Verb = "replace"
)

// shape describes what a verb requires before its API call can be issued.
// Verbs that carry a body also merge it with run-time overrides.
type shape struct {
	needsName bool
	needsBody bool
}

var shapes = map[Verb]shape{
	VerbCreate:  {needsBody: true},
	VerbDelete:  {needsName: true},
	VerbList:    {},
	VerbPatch:   {needsName: true, needsBody: true},
	VerbRead:    {needsName: true},
	VerbReplace: {needsName: true, needsBody: true},
}

// Tasker is an interface that represents any runnable workflow task. Run
// issues exactly one API call and returns its result: a *batchv1.Job for
// create/patch/read/replace, a *batchv1.JobList for list, nil for delete.
// Errors are never retried internally; the host engine owns retry policy and
// can use engine.IsFatal to tell misconfiguration from transient failures.
type Tasker interface {
	Run(ctx Context, overrides Overrides) (runtime.Object, error)
}

// Spec is the serialized task configuration handed over by the host engine.
type Spec struct {
	Verb             string                 `json:"verb"`
	Name             string                 `json:"name,omitempty"`
	Namespace        string                 `json:"namespace,omitempty"`
	Body             map[string]interface{} `json:"body,omitempty"`
	Options          map[string]string      `json:"options,omitempty"`
	CredentialSecret string                 `json:"credentialSecret,omitempty"`
}

// Build takes a task spec and returns the corresponding JobTask. The verb
// must be known; required fields are checked at run time, after run-time
// overrides have been applied. The task gets private copies of the body and
// option mappings so later mutation of the spec does not leak in.
func Build(s Spec) (*JobTask, error) {
	verb := Verb(s.Verb)
	if _, ok := shapes[verb]; !ok {
		return nil, fmt.Errorf("unknown task verb %q", s.Verb)
	}

	namespace := s.Namespace
	if namespace == "" {
		namespace = metav1.NamespaceDefault
	}

	return &JobTask{
		Verb:             verb,
		Name:             s.Name,
		Namespace:        namespace,
		Body:             params.Merge(s.Body, nil),
		Options:          params.MergeOptions(s.Options, nil),
		CredentialSecret: s.CredentialSecret,
	}, nil
}
