package cmd

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	batchv1 "k8s.io/api/batch/v1"

	"github.com/flowbuilder/flow/pkg/engine/task"
	"github.com/flowbuilder/flow/pkg/flowctl/clog"
)

const patchExample = `  # Apply a strategic merge patch to a job
  flowctl patch pi -f patch.yaml`

type patchOptions struct {
	fs         afero.Fs
	out        io.Writer
	path       string
	rawOptions []string
}

// newPatchCmd creates a command that patches a job with a strategic merge patch
func newPatchCmd(fs afero.Fs, out io.Writer) *cobra.Command {
	opts := &patchOptions{fs: fs, out: out}

	cmd := &cobra.Command{
		Use:     "patch <name> -f patch.yaml",
		Short:   "Patch a namespaced job on the cluster.",
		Example: patchExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.path, "filename", "f", "", "Path to a YAML or JSON patch for the Job.")
	cmd.Flags().StringArrayVar(&opts.rawOptions, "option", nil, "Extra API option as key=value. May be repeated.")

	return cmd
}

func (o *patchOptions) run(name string) error {
	body, err := readBody(o.fs, o.path)
	if err != nil {
		return err
	}
	apiOptions, err := parseAPIOptions(o.rawOptions)
	if err != nil {
		return err
	}

	t, err := task.Build(task.Spec{
		Verb:             string(task.VerbPatch),
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
	clog.Printf("job.batch/%s patched", job.Name)
	return nil
}
