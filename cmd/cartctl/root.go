package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cartctl",
		Short:         "Operator tools for the storefront cart",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newCardCmd(),
		newPriceCmd(),
		newInspectCmd(),
		newClearCmd(),
	)
	return root
}
