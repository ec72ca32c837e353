package engine

/*

Package engine holds the error taxonomy shared by all workflow tasks.

A task surfaces exactly three classes of failure:

1. Validation errors: a required field was absent. These wrap ErrFatalExecution
   and are raised before any I/O happens.
2. Credential errors: no credential strategy produced a usable cluster
   configuration. See pkg/kube. These also wrap ErrFatalExecution.
3. API errors: the cluster rejected the call. These pass through untouched from
   client-go so callers can use k8s.io/apimachinery/pkg/api/errors predicates
   (IsNotFound, IsConflict, ...) directly.

Tasks never retry internally; retry and backoff policy belongs to the host
engine, which uses IsFatal to decide whether retrying can ever help.

*/
