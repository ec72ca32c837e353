package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/flowbuilder/flow/pkg/engine/task"
)

const readExample = `  # Read a job as YAML
  flowctl read pi

  # Read a job as JSON
  flowctl read pi -o json`

type readOptions struct {
	out        io.Writer
	output     string
	rawOptions []string
}

// newReadCmd creates a command that reads a single job by name
func newReadCmd(out io.Writer) *cobra.Command {
	opts := &readOptions{out: out}

	cmd := &cobra.Command{
		Use:     "read <name>",
		Short:   "Read a namespaced job from the cluster.",
		Example: readExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "yaml", "Output format. One of: json|yaml")
	cmd.Flags().StringArrayVar(&opts.rawOptions, "option", nil, "Extra API option as key=value. May be repeated.")

	return cmd
}

func (o *readOptions) run(name string) error {
	apiOptions, err := parseAPIOptions(o.rawOptions)
	if err != nil {
		return err
	}

	t, err := task.Build(task.Spec{
		Verb:             string(task.VerbRead),
		Name:             name,
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

	return printObject(o.out, result, o.output)
}
