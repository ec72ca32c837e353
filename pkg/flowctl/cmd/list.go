package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	batchv1 "k8s.io/api/batch/v1"
	"k8s.io/apimachinery/pkg/util/duration"

	"github.com/flowbuilder/flow/pkg/engine/task"
)

const listExample = `  # List jobs in the default namespace
  flowctl list

  # List jobs in a namespace, filtered by label
  flowctl list -n workers --option labelSelector=team=data`

type listOptions struct {
	out        io.Writer
	rawOptions []string
}

// newListCmd creates a command that lists the jobs in a namespace
func newListCmd(out io.Writer) *cobra.Command {
	opts := &listOptions{out: out}

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the namespaced jobs on the cluster.",
		Example: listExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run()
		},
	}

	cmd.Flags().StringArrayVar(&opts.rawOptions, "option", nil, "Extra API option as key=value. May be repeated.")

	return cmd
}

func (o *listOptions) run() error {
	apiOptions, err := parseAPIOptions(o.rawOptions)
	if err != nil {
		return err
	}

	t, err := task.Build(task.Spec{
		Verb:             string(task.VerbList),
		Namespace:        Settings.Namespace,
		Options:          apiOptions,
		CredentialSecret: Settings.TokenSecret,
	})
	if err != nil {
		return err
	}

	result, err := t.Run(taskContext(), task.Overrides{})
	if err != nil {
		return err
	}

	list := result.(*batchv1.JobList)

	table := uitable.New()
	table.AddRow("NAME", "COMPLETIONS", "AGE")
	for i := range list.Items {
		job := &list.Items[i]
		table.AddRow(job.Name, completions(job), duration.HumanDuration(time.Since(job.CreationTimestamp.Time)))
	}
	fmt.Fprintln(o.out, table)
	return nil
}

func completions(job *batchv1.Job) string {
	if job.Spec.Completions != nil {
		return fmt.Sprintf("%d/%d", job.Status.Succeeded, *job.Spec.Completions)
	}
	return fmt.Sprintf("%d/1", job.Status.Succeeded)
}
