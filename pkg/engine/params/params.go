// Package params implements the shallow-merge policy for task parameters.
//
// Task configurations carry two mapping-valued fields: the resource body and
// the extra API options. Both can be set when the task is constructed and
// overridden per invocation. Merging is shallow: only top-level keys are
// combined, the override value wins on conflict, nested mappings are replaced
// wholesale.
package params

// Body is a mapping representation of a Kubernetes resource manifest or a
// strategic merge patch.
type Body = map[string]interface{}

// Options are extra call options passed to the API, keyed by the query
// parameter name (e.g. "dryRun", "labelSelector").
type Options = map[string]string

// Merge returns a new body containing every key of stored and overrides, with
// the override value winning on conflict. Neither input is modified. The
// result is never nil.
func Merge(stored, overrides Body) Body {
	merged := make(Body, len(stored)+len(overrides))
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// MergeInto updates stored in place with the entries of overrides and returns
// it. Overrides supplied in one invocation persist as the defaults for the
// next. A nil stored map is replaced, so callers must use the return value.
func MergeInto(stored, overrides Body) Body {
	if stored == nil {
		return Merge(nil, overrides)
	}
	for k, v := range overrides {
		stored[k] = v
	}
	return stored
}

// MergeOptions is Merge for option mappings.
func MergeOptions(stored, overrides Options) Options {
	merged := make(Options, len(stored)+len(overrides))
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// MergeOptionsInto is MergeInto for option mappings.
func MergeOptionsInto(stored, overrides Options) Options {
	if stored == nil {
		return MergeOptions(nil, overrides)
	}
	for k, v := range overrides {
		stored[k] = v
	}
	return stored
}
