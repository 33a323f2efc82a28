package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "routectl",
		Short:         "Compute closed tours over planar destinations",
		SilenceUsage: true,
	}

	root.AddCommand(newSolveCmd())
	return root
}
