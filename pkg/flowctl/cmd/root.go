package cmd

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/flowbuilder/flow/pkg/flowctl/clog"
	"github.com/flowbuilder/flow/pkg/flowctl/env"
	"github.com/flowbuilder/flow/pkg/version"
)

// Settings are the global CLI settings shared by all subcommands.
var Settings env.Settings

// NewFlowctlCmd creates a new root command for flowctl
func NewFlowctlCmd(fs afero.Fs, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flowctl",
		Short: "Run one-shot Kubernetes Job operations the way flow tasks run them.",
		Long: `
flowctl performs a single Batch API operation per invocation, using the same
parameter and credential resolution as flow's Job tasks: a bearer token from a
FLOW_SECRET_-prefixed environment variable, then the in-cluster service
account, then a local kubeconfig file.
`,
		Example: `
	# Create the Job defined in job.yaml
	flowctl create -f job.yaml

	# List jobs in a namespace
	flowctl list -n workers

	# Read a single job as YAML
	flowctl read pi

	# Delete a job, letting its pods terminate in the foreground
	flowctl delete pi --option propagationPolicy=Foreground
`,
		Version:      version.Get().GitVersion,
		SilenceUsage: true,
	}

	Settings.AddFlags(cmd.PersistentFlags())
	clog.InitWithFlags(cmd.PersistentFlags(), out)

	cmd.AddCommand(newCreateCmd(fs, out))
	cmd.AddCommand(newDeleteCmd(out))
	cmd.AddCommand(newListCmd(out))
	cmd.AddCommand(newPatchCmd(fs, out))
	cmd.AddCommand(newReadCmd(out))
	cmd.AddCommand(newReplaceCmd(fs, out))
	cmd.AddCommand(newVersionCmd(out))

	return cmd
}
