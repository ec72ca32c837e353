package task

import (
	"context"
	"encoding/json"
	"fmt"

	batchv1 "k8s.io/api/batch/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	batchv1client "k8s.io/client-go/kubernetes/typed/batch/v1"

	"github.com/flowbuilder/flow/pkg/engine"
	"github.com/flowbuilder/flow/pkg/engine/params"
)

// JobTask performs a single Batch API operation against a namespaced Job.
// Every field can be set at construction and overridden per invocation; each
// invocation is strictly sequential: merge, validate, resolve credentials,
// build a client, issue the call.
type JobTask struct {
	Verb Verb

	// Name identifies the Job for delete, patch, read and replace.
	Name string

	// Namespace scopes the operation, "default" when left empty.
	Namespace string

	// Body is a mapping representation of a batch/v1 Job manifest (create,
	// replace) or a strategic merge patch (patch).
	Body params.Body

	// Options are extra call options passed to the API, e.g. dryRun or
	// labelSelector. Keys a verb does not accept fail the invocation.
	Options params.Options

	// CredentialSecret names the engine secret holding a bearer token for
	// the cluster. When the secret does not resolve, ambient credentials are
	// used instead (see pkg/kube).
	CredentialSecret string
}

// Overrides are run-time parameters merged over the stored task
// configuration for one invocation. Body and Options merge shallowly with
// the override entries winning; scalar fields replace the stored value when
// non-empty.
type Overrides struct {
	Name             string
	Namespace        string
	Body             params.Body
	Options          params.Options
	CredentialSecret string
}

// Run resolves parameters and credentials and issues the task's API call.
// Overrides apply to this invocation only; the stored configuration is left
// untouched, so Run is safe for concurrent use on a single task instance.
func (t *JobTask) Run(ctx Context, overrides Overrides) (runtime.Object, error) {
	body := params.Merge(t.Body, overrides.Body)
	options := params.MergeOptions(t.Options, overrides.Options)
	return t.run(ctx, overrides, body, options)
}

// RunAndPersist behaves like Run but keeps the merged body and options as
// the new task defaults, so overrides from one invocation carry over to the
// next. This matches the reusable-task semantics of engines that treat a
// task instance as accumulating state. Not safe for concurrent invocations
// of the same task instance.
func (t *JobTask) RunAndPersist(ctx Context, overrides Overrides) (runtime.Object, error) {
	t.Body = params.MergeInto(t.Body, overrides.Body)
	t.Options = params.MergeOptionsInto(t.Options, overrides.Options)
	return t.run(ctx, overrides, t.Body, t.Options)
}

func (t *JobTask) run(ctx Context, o Overrides, body params.Body, options params.Options) (runtime.Object, error) {
	sh, ok := shapes[t.Verb]
	if !ok {
		return nil, fmt.Errorf("unknown task verb %q", t.Verb)
	}

	name := t.Name
	if o.Name != "" {
		name = o.Name
	}
	namespace := t.Namespace
	if o.Namespace != "" {
		namespace = o.Namespace
	}
	if namespace == "" {
		namespace = metav1.NamespaceDefault
	}
	credentialSecret := t.CredentialSecret
	if o.CredentialSecret != "" {
		credentialSecret = o.CredentialSecret
	}

	// validation precedes credential resolution so that misconfigured tasks
	// fail without a secret lookup or network round trip
	if sh.needsBody && len(body) == 0 {
		return nil, &engine.ValidationError{Field: "body"}
	}
	if sh.needsName && name == "" {
		return nil, &engine.ValidationError{Field: "name"}
	}

	if ctx.Clients == nil {
		return nil, fmt.Errorf("task context has no client factory")
	}
	client, err := ctx.Clients.Client(ctx, credentialSecret)
	if err != nil {
		return nil, err
	}

	return t.invoke(ctx, client.BatchV1().Jobs(namespace), name, body, options)
}

// invoke issues exactly one API call. API errors pass through untranslated.
func (t *JobTask) invoke(ctx context.Context, jobs batchv1client.JobInterface, name string, body params.Body, options params.Options) (runtime.Object, error) {
	switch t.Verb {
	case VerbCreate:
		job, err := decodeJob(body)
		if err != nil {
			return nil, err
		}
		opts, err := createOptions(options)
		if err != nil {
			return nil, err
		}
		created, err := jobs.Create(ctx, job, opts)
		if err != nil {
			return nil, err
		}
		return created, nil

	case VerbDelete:
		opts, err := deleteOptions(options)
		if err != nil {
			return nil, err
		}
		return nil, jobs.Delete(ctx, name, opts)

	case VerbList:
		opts, err := listOptions(options)
		if err != nil {
			return nil, err
		}
		list, err := jobs.List(ctx, opts)
		if err != nil {
			return nil, err
		}
		return list, nil

	case VerbPatch:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%winvalid Job patch body: %v", engine.ErrFatalExecution, err)
		}
		opts, err := patchOptions(options)
		if err != nil {
			return nil, err
		}
		patched, err := jobs.Patch(ctx, name, types.StrategicMergePatchType, data, opts)
		if err != nil {
			return nil, err
		}
		return patched, nil

	case VerbRead:
		opts, err := getOptions(options)
		if err != nil {
			return nil, err
		}
		job, err := jobs.Get(ctx, name, opts)
		if err != nil {
			return nil, err
		}
		return job, nil

	case VerbReplace:
		job, err := decodeJob(body)
		if err != nil {
			return nil, err
		}
		if job.Name == "" {
			job.Name = name
		}
		opts, err := updateOptions(options)
		if err != nil {
			return nil, err
		}
		replaced, err := jobs.Update(ctx, job, opts)
		if err != nil {
			return nil, err
		}
		return replaced, nil
	}

	return nil, fmt.Errorf("unknown task verb %q", t.Verb)
}

// decodeJob converts a mapping body into a typed Job. Unknown keys are
// dropped, matching the permissive decoding of the upstream client.
func decodeJob(body params.Body) (*batchv1.Job, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%winvalid Job body: %v", engine.ErrFatalExecution, err)
	}
	job := &batchv1.Job{}
	if err := json.Unmarshal(data, job); err != nil {
		return nil, fmt.Errorf("%winvalid Job body: %v", engine.ErrFatalExecution, err)
	}
	return job, nil
}
