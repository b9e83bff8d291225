package main

import "github.com/spf13/cobra"

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "print a deterministic, sorted dump of the current cache state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cache.Dump(cmd.OutOrStdout())
	},
}
