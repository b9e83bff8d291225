package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ros2/rmw-dds-common-go/internal/rmwconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "manage graphdump's graphcache.yaml configuration",
}

var configInitOut string

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "write a starter graphcache.yaml with the library defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configInitOut == "" {
			return fmt.Errorf("graphdump config init: --out is required")
		}
		return rmwconfig.WriteDefault(configInitOut)
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitOut, "out", "graphcache.yaml", "path to write the starter config to")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
