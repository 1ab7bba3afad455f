package main

import (
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fare-tracker",
		Short:         "Telegram bot that tracks flight prices and reports changes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServerCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newOffersCmd())
	root.AddCommand(newFindCmd())
	root.AddCommand(newVersionCmd())

	return root
}
