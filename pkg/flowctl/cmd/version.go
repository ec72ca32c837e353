package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/flowbuilder/flow/pkg/flowctl/clog"
	"github.com/flowbuilder/flow/pkg/flowctl/env"
	"github.com/flowbuilder/flow/pkg/version"
)

const versionExample = `  # Print the flowctl version
  flowctl version

  # Fail unless the cluster runs at least Kubernetes 1.16
  flowctl version --min-server-version 1.16.0`

// newVersionCmd returns a new initialized instance of the version sub command
func newVersionCmd(out io.Writer) *cobra.Command {
	var minServerVersion string

	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the current flowctl version, optionally checking the cluster's server version.",
		Example: versionExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(out, "flowctl version %s\n", version.Get())

			if minServerVersion == "" {
				return nil
			}

			client, err := env.GetResolver(&Settings).Client(context.Background(), Settings.TokenSecret)
			if err != nil {
				return err
			}
			serverVersion, err := client.Discovery().ServerVersion()
			if err != nil {
				return err
			}
			ok, err := version.MeetsMinimum(serverVersion.GitVersion, minServerVersion)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("server version %s is below the required minimum %s", serverVersion.GitVersion, minServerVersion)
			}
			clog.V(1).Printf("server version %s meets the required minimum %s", serverVersion.GitVersion, minServerVersion)
			return nil
		},
	}

	cmd.Flags().StringVar(&minServerVersion, "min-server-version", "", "Fail unless the cluster's server version satisfies this version.")

	return cmd
}
