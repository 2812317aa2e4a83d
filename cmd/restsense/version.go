package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/restsense/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if a.output == formatRaw {
				return render(a.out, formatRaw, version.Full()+"\n")
			}
			return render(a.out, a.output, version.Get())
		},
	}
}
