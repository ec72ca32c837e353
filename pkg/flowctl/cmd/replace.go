package cmd

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	batchv1 "k8s.io/api/batch/v1"

	"github.com/flowbuilder/flow/pkg/engine/task"
	"github.com/flowbuilder/flow/pkg/flowctl/clog"
)

const replaceExample = `  # Replace a job with the manifest in job.yaml
  flowctl replace pi -f job.yaml`

type replaceOptions struct {
	fs         afero.Fs
	out        io.Writer
	path       string
	rawOptions []string
}

// newReplaceCmd creates a command that replaces a job with a full manifest
func newReplaceCmd(fs afero.Fs, out io.Writer) *cobra.Command {
	opts := &replaceOptions{fs: fs, out: out}

	cmd := &cobra.Command{
		Use:     "replace <name> -f job.yaml",
		Short:   "Replace a namespaced job on the cluster.",
		Example: replaceExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.path, "filename", "f", "", "Path to a YAML or JSON Job manifest.")
	cmd.Flags().StringArrayVar(&opts.rawOptions, "option", nil, "Extra API option as key=value. May be repeated.")

	return cmd
}

func (o *replaceOptions) run(name string) error {
	body, err := readBody(o.fs, o.path)
	if err != nil {
		return err
	}
	apiOptions, err := parseAPIOptions(o.rawOptions)
	if err != nil {
		return err
	}

	t, err := task.Build(task.Spec{
		Verb:             string(task.VerbReplace),
		Name:             name,
		Namespace:        Settings.Namespace,
		Body:             body,
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

	job := result.(*batchv1.Job)
	clog.Printf("job.batch/%s replaced", job.Name)
	return nil
}
