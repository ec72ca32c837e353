package main

import (
	"os"

	"github.com/spf13/afero"

	"github.com/flowbuilder/flow/pkg/flowctl/cmd"
)

func main() {
	if err := cmd.NewFlowctlCmd(afero.NewOsFs(), os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
