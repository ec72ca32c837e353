package cmd

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	batchv1 "k8s.io/api/batch/v1"

	"github.com/flowbuilder/flow/pkg/engine/task"
	"github.com/flowbuilder/flow/pkg/flowctl/clog"
)

const createExample = `  # Create the Job defined in job.yaml in the default namespace
  flowctl create -f job.yaml

  # Server-side dry run
  flowctl create -f job.yaml --option dryRun=All`

type createOptions struct {
	fs         afero.Fs
	out        io.Writer
	path       string
	rawOptions []string
}

// newCreateCmd creates a command that creates a job from a manifest file
func newCreateCmd(fs afero.Fs, out io.Writer) *cobra.Command {
	opts := &createOptions{fs: fs, out: out}

	cmd := &cobra.Command{
		Use:     "create -f job.yaml",
		Short:   "Create a namespaced job on the cluster.",
		Example: createExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run()
		},
	}

	cmd.Flags().StringVarP(&opts.path, "filename", "f", "", "Path to a YAML or JSON Job manifest.")
	cmd.Flags().StringArrayVar(&opts.rawOptions, "option", nil, "Extra API option as key=value. May be repeated.")

	return cmd
}

func (o *createOptions) run() error {
	body, err := readBody(o.fs, o.path)
	if err != nil {
		return err
	}
	apiOptions, err := parseAPIOptions(o.rawOptions)
	if err != nil {
		return err
	}

	t, err := task.Build(task.Spec{
		Verb:             string(task.VerbCreate),
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
	clog.Printf("job.batch/%s created", job.Name)
	return nil
}
