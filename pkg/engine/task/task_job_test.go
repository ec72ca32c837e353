package task

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
	clienttesting "k8s.io/client-go/testing"

	"github.com/flowbuilder/flow/pkg/engine"
	"github.com/flowbuilder/flow/pkg/engine/params"
)

// fakeFactory hands out a fake clientset and records how often credential
// resolution was attempted.
type fakeFactory struct {
	client kubernetes.Interface
	calls  int
	secret string
}

func (f *fakeFactory) Client(_ context.Context, credentialSecret string) (kubernetes.Interface, error) {
	f.calls++
	f.secret = credentialSecret
	return f.client, nil
}

func testContext(factory *fakeFactory) Context {
	return Context{Context: context.Background(), Clients: factory}
}

func testJob(name string) *batchv1.Job {
	return &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default"},
	}
}

func TestCreateMergesBodyWithOverrides(t *testing.T) {
	client := fake.NewSimpleClientset()
	factory := &fakeFactory{client: client}

	task, err := Build(Spec{
		Verb: "create",
		Body: params.Body{
			"apiVersion": "batch/v1",
			"kind":       "Job",
			"metadata":   map[string]interface{}{"name": "pi"},
		},
	})
	require.NoError(t, err)

	overrides := Overrides{
		Body: params.Body{
			"spec": map[string]interface{}{"backoffLimit": 3},
		},
	}

	result, err := task.Run(testContext(factory), overrides)
	require.NoError(t, err)

	created, ok := result.(*batchv1.Job)
	require.True(t, ok)
	assert.Equal(t, "pi", created.Name, "name comes from the stored body")
	require.NotNil(t, created.Spec.BackoffLimit, "backoffLimit comes from the override")
	assert.Equal(t, int32(3), *created.Spec.BackoffLimit)

	// Run must not persist the override into the stored configuration
	assert.NotContains(t, task.Body, "spec")
}

func TestRunAndPersistKeepsMergedDefaults(t *testing.T) {
	client := fake.NewSimpleClientset()
	factory := &fakeFactory{client: client}

	task, err := Build(Spec{
		Verb: "create",
		Body: params.Body{"metadata": map[string]interface{}{"name": "pi"}},
	})
	require.NoError(t, err)

	overrides := Overrides{
		Body: params.Body{"spec": map[string]interface{}{"backoffLimit": 3}},
	}

	_, err = task.RunAndPersist(testContext(factory), overrides)
	require.NoError(t, err)

	// the override is now part of the stored configuration
	assert.Contains(t, task.Body, "metadata")
	assert.Contains(t, task.Body, "spec")
}

func TestListUsesDefaults(t *testing.T) {
	client := fake.NewSimpleClientset(testJob("pi-1"), testJob("pi-2"))
	factory := &fakeFactory{client: client}

	task, err := Build(Spec{Verb: "list"})
	require.NoError(t, err)

	result, err := task.Run(testContext(factory), Overrides{})
	require.NoError(t, err)

	list, ok := result.(*batchv1.JobList)
	require.True(t, ok)
	assert.Len(t, list.Items, 2)

	actions := client.Actions()
	require.Len(t, actions, 1, "exactly one API call")
	assert.Equal(t, "list", actions[0].GetVerb())
	assert.Equal(t, "default", actions[0].GetNamespace())
}

func TestReadReturnsJob(t *testing.T) {
	client := fake.NewSimpleClientset(testJob("pi"))
	factory := &fakeFactory{client: client}

	task, err := Build(Spec{Verb: "read", Name: "pi", CredentialSecret: "CLUSTER_TOKEN"})
	require.NoError(t, err)

	result, err := task.Run(testContext(factory), Overrides{})
	require.NoError(t, err)

	job, ok := result.(*batchv1.Job)
	require.True(t, ok)
	assert.Equal(t, "pi", job.Name)
	assert.Equal(t, "CLUSTER_TOKEN", factory.secret, "credential reference reaches the client factory")
}

func TestDelete(t *testing.T) {
	client := fake.NewSimpleClientset(testJob("pi"))
	factory := &fakeFactory{client: client}

	task, err := Build(Spec{Verb: "delete", Name: "pi"})
	require.NoError(t, err)

	result, err := task.Run(testContext(factory), Overrides{})
	require.NoError(t, err)
	assert.Nil(t, result, "delete discards the API result")

	// the job is gone; a second delete surfaces the API error untranslated
	_, err = task.Run(testContext(factory), Overrides{})
	require.Error(t, err)
	assert.True(t, apierrors.IsNotFound(err))
}

func TestPatchAppliesStrategicMerge(t *testing.T) {
	client := fake.NewSimpleClientset(testJob("pi"))
	factory := &fakeFactory{client: client}

	task, err := Build(Spec{
		Verb: "patch",
		Name: "pi",
		Body: params.Body{
			"metadata": map[string]interface{}{
				"labels": map[string]interface{}{"team": "data"},
			},
		},
	})
	require.NoError(t, err)

	result, err := task.Run(testContext(factory), Overrides{})
	require.NoError(t, err)

	patched, ok := result.(*batchv1.Job)
	require.True(t, ok)
	assert.Equal(t, "data", patched.Labels["team"])
}

func TestReplace(t *testing.T) {
	client := fake.NewSimpleClientset(testJob("pi"))
	factory := &fakeFactory{client: client}

	task, err := Build(Spec{
		Verb: "replace",
		Name: "pi",
		Body: params.Body{
			"metadata": map[string]interface{}{"name": "pi", "namespace": "default"},
			"spec":     map[string]interface{}{"parallelism": 2},
		},
	})
	require.NoError(t, err)

	result, err := task.Run(testContext(factory), Overrides{})
	require.NoError(t, err)

	replaced, ok := result.(*batchv1.Job)
	require.True(t, ok)
	require.NotNil(t, replaced.Spec.Parallelism)
	assert.Equal(t, int32(2), *replaced.Spec.Parallelism)

	actions := client.Actions()
	require.Len(t, actions, 1)
	assert.Equal(t, "update", actions[0].GetVerb())
}

func TestCreateConflictPassesThrough(t *testing.T) {
	client := fake.NewSimpleClientset(testJob("pi"))
	factory := &fakeFactory{client: client}

	task, err := Build(Spec{
		Verb: "create",
		Body: params.Body{"metadata": map[string]interface{}{"name": "pi"}},
	})
	require.NoError(t, err)

	_, err = task.Run(testContext(factory), Overrides{})
	require.Error(t, err)
	assert.True(t, apierrors.IsAlreadyExists(err))
	assert.False(t, engine.IsFatal(err), "API errors are left to the engine's retry policy")
}

func TestValidationPrecedesCredentialResolution(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{name: "create without body", spec: Spec{Verb: "create"}},
		{name: "delete without name", spec: Spec{Verb: "delete"}},
		{name: "patch without name", spec: Spec{Verb: "patch", Body: params.Body{"x": 1}}},
		{name: "patch without body", spec: Spec{Verb: "patch", Name: "pi"}},
		{name: "read without name", spec: Spec{Verb: "read"}},
		{name: "replace without body", spec: Spec{Verb: "replace", Name: "pi"}},
		{name: "replace without name", spec: Spec{Verb: "replace", Body: params.Body{"x": 1}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			client := fake.NewSimpleClientset()
			factory := &fakeFactory{client: client}

			task, err := Build(tt.spec)
			require.NoError(t, err)

			_, err = task.Run(testContext(factory), Overrides{})
			require.Error(t, err)

			var validationErr *engine.ValidationError
			assert.True(t, errors.As(err, &validationErr))
			assert.True(t, engine.IsFatal(err))
			assert.Contains(t, err.Error(), "must be provided")
			assert.Equal(t, 0, factory.calls, "no credential resolution before validation passes")
			assert.Empty(t, client.Actions(), "no API call was issued")
		})
	}
}

func TestOverridesSupplyRequiredFields(t *testing.T) {
	client := fake.NewSimpleClientset(testJob("pi"))
	factory := &fakeFactory{client: client}

	// name absent at construction, supplied at run time
	task, err := Build(Spec{Verb: "read"})
	require.NoError(t, err)

	result, err := task.Run(testContext(factory), Overrides{Name: "pi"})
	require.NoError(t, err)
	assert.Equal(t, "pi", result.(*batchv1.Job).Name)
}

func TestNamespaceOverride(t *testing.T) {
	job := testJob("pi")
	job.Namespace = "workers"
	client := fake.NewSimpleClientset(job)
	factory := &fakeFactory{client: client}

	task, err := Build(Spec{Verb: "read", Name: "pi"})
	require.NoError(t, err)

	_, err = task.Run(testContext(factory), Overrides{Namespace: "workers"})
	require.NoError(t, err)

	actions := client.Actions()
	require.Len(t, actions, 1)
	assert.Equal(t, "workers", actions[0].GetNamespace())
}

func TestUnknownOptionFailsBeforeCall(t *testing.T) {
	client := fake.NewSimpleClientset()
	factory := &fakeFactory{client: client}

	task, err := Build(Spec{
		Verb:    "create",
		Body:    params.Body{"metadata": map[string]interface{}{"name": "pi"}},
		Options: params.Options{"labelSelector": "team=data"},
	})
	require.NoError(t, err)

	_, err = task.Run(testContext(factory), Overrides{})
	require.Error(t, err)
	assert.True(t, engine.IsFatal(err))
	assert.Empty(t, client.Actions())
}

func TestListOptionsReachTheCall(t *testing.T) {
	client := fake.NewSimpleClientset()
	factory := &fakeFactory{client: client}

	task, err := Build(Spec{
		Verb:    "list",
		Options: params.Options{"labelSelector": "team=data"},
	})
	require.NoError(t, err)

	_, err = task.Run(testContext(factory), Overrides{})
	require.NoError(t, err)

	actions := client.Actions()
	require.Len(t, actions, 1)
	listAction, ok := actions[0].(clienttesting.ListAction)
	require.True(t, ok)
	assert.Equal(t, "team=data", listAction.GetListRestrictions().Labels.String())
}
