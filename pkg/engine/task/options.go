package task

import (
	"fmt"
	"strconv"

	"github.com/thoas/go-funk"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/flowbuilder/flow/pkg/engine"
	"github.com/flowbuilder/flow/pkg/engine/params"
)

// Option keys accepted per verb. They mirror the query parameters of the
// Batch API operations that the typed client exposes; a key outside the
// verb's set fails the invocation before any call is made.
var (
	createOptionKeys = []string{"dryRun", "fieldManager"}
	deleteOptionKeys = []string{"dryRun", "gracePeriodSeconds", "propagationPolicy"}
	listOptionKeys   = []string{"labelSelector", "fieldSelector", "limit", "continue", "resourceVersion", "timeoutSeconds"}
	patchOptionKeys  = []string{"dryRun", "fieldManager"}
	getOptionKeys    = []string{"resourceVersion"}
	updateOptionKeys = []string{"dryRun", "fieldManager"}
)

func checkOptionKeys(options params.Options, allowed []string) error {
	for k := range options {
		if !funk.ContainsString(allowed, k) {
			return fmt.Errorf("%wunknown API option %q", engine.ErrFatalExecution, k)
		}
	}
	return nil
}

func createOptions(options params.Options) (metav1.CreateOptions, error) {
	opts := metav1.CreateOptions{}
	if err := checkOptionKeys(options, createOptionKeys); err != nil {
		return opts, err
	}
	opts.FieldManager = options["fieldManager"]
	if v, ok := options["dryRun"]; ok {
		opts.DryRun = []string{v}
	}
	return opts, nil
}

func deleteOptions(options params.Options) (metav1.DeleteOptions, error) {
	opts := metav1.DeleteOptions{}
	if err := checkOptionKeys(options, deleteOptionKeys); err != nil {
		return opts, err
	}
	if v, ok := options["dryRun"]; ok {
		opts.DryRun = []string{v}
	}
	if v, ok := options["gracePeriodSeconds"]; ok {
		n, err := parseInt64("gracePeriodSeconds", v)
		if err != nil {
			return opts, err
		}
		opts.GracePeriodSeconds = &n
	}
	if v, ok := options["propagationPolicy"]; ok {
		policy := metav1.DeletionPropagation(v)
		opts.PropagationPolicy = &policy
	}
	return opts, nil
}

func listOptions(options params.Options) (metav1.ListOptions, error) {
	opts := metav1.ListOptions{}
	if err := checkOptionKeys(options, listOptionKeys); err != nil {
		return opts, err
	}
	opts.LabelSelector = options["labelSelector"]
	opts.FieldSelector = options["fieldSelector"]
	opts.Continue = options["continue"]
	opts.ResourceVersion = options["resourceVersion"]
	if v, ok := options["limit"]; ok {
		n, err := parseInt64("limit", v)
		if err != nil {
			return opts, err
		}
		opts.Limit = n
	}
	if v, ok := options["timeoutSeconds"]; ok {
		n, err := parseInt64("timeoutSeconds", v)
		if err != nil {
			return opts, err
		}
		opts.TimeoutSeconds = &n
	}
	return opts, nil
}

func patchOptions(options params.Options) (metav1.PatchOptions, error) {
	opts := metav1.PatchOptions{}
	if err := checkOptionKeys(options, patchOptionKeys); err != nil {
		return opts, err
	}
	opts.FieldManager = options["fieldManager"]
	if v, ok := options["dryRun"]; ok {
		opts.DryRun = []string{v}
	}
	return opts, nil
}

func getOptions(options params.Options) (metav1.GetOptions, error) {
	opts := metav1.GetOptions{}
	if err := checkOptionKeys(options, getOptionKeys); err != nil {
		return opts, err
	}
	opts.ResourceVersion = options["resourceVersion"]
	return opts, nil
}

func updateOptions(options params.Options) (metav1.UpdateOptions, error) {
	opts := metav1.UpdateOptions{}
	if err := checkOptionKeys(options, updateOptionKeys); err != nil {
		return opts, err
	}
	opts.FieldManager = options["fieldManager"]
	if v, ok := options["dryRun"]; ok {
		opts.DryRun = []string{v}
	}
	return opts, nil
}

func parseInt64(key, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%winvalid value for API option %q: %v", engine.ErrFatalExecution, key, err)
	}
	return n, nil
}
