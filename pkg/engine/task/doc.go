package task

/*

Package task contains the Kubernetes Job tasks of the flow execution engine.

A JobTask performs exactly one Batch API operation per invocation, selected by
its Verb: create, delete, list, patch, read or replace. Every invocation runs
the same sequence: merge run-time overrides over the stored configuration,
validate required fields, resolve cluster credentials, build an API client and
issue the call. Nothing is cached or shared across invocations.

Run merges into a scratch copy and leaves the stored configuration untouched.
RunAndPersist keeps the merged values as the new defaults, for engines that
want overrides from one invocation to carry over to the next; it must not be
invoked concurrently on one task instance.

*/
