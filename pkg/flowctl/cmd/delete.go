package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/flowbuilder/flow/pkg/engine/task"
	"github.com/flowbuilder/flow/pkg/flowctl/clog"
)

const deleteExample = `  # Delete a job
  flowctl delete pi

  # Delete a job and its pods in the foreground
  flowctl delete pi --option propagationPolicy=Foreground`

type deleteOptions struct {
	out        io.Writer
	rawOptions []string
}

// newDeleteCmd creates a command that deletes a job by name
func newDeleteCmd(out io.Writer) *cobra.Command {
	opts := &deleteOptions{out: out}

	cmd := &cobra.Command{
		Use:     "delete <name>",
		Short:   "Delete a namespaced job from the cluster.",
		Example: deleteExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(args[0])
		},
	}

	cmd.Flags().StringArrayVar(&opts.rawOptions, "option", nil, "Extra API option as key=value. May be repeated.")

	return cmd
}

func (o *deleteOptions) run(name string) error {
	apiOptions, err := parseAPIOptions(o.rawOptions)
	if err != nil {
		return err
	}

	t, err := task.Build(task.Spec{
		Verb:             string(task.VerbDelete),
		Name:             name,
		Namespace:        Settings.Namespace,
		Options:          apiOptions,
		CredentialSecret: Settings.TokenSecret,
	})
	if err != nil {
		return err
	}

	if _, err := t.Run(taskContext(), task.Overrides{}); err != nil {
		return err
	}

	clog.Printf("job.batch/%s deleted", name)
	return nil
}
