// Command graphdump is a CLI front-end for the discovery graph cache:
// it replays a recorded JSONL trace into an in-memory cache and then
// dumps or queries the resulting state, the way bd's CLI front-ends
// its own storage layer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ros2/rmw-dds-common-go/internal/graphcache"
	"github.com/ros2/rmw-dds-common-go/internal/rmwconfig"
	"github.com/ros2/rmw-dds-common-go/internal/rmwlog"
)

var (
	tracePath   string
	configPath  string
	metricsFlag bool
	cache       *graphcache.Cache
	cfg         rmwconfig.Config
	log         = rmwlog.For("graphdump")
)

var rootCmd = &cobra.Command{
	Use:   "graphdump",
	Short: "graphdump - inspect and replay discovery graph cache state",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := rmwconfig.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded

		if metricsFlag {
			mp := buildMeterProvider()
			c, err := graphcache.NewWithOptions(graphcache.WithMeter(mp.Meter("graphdump")))
			if err != nil {
				return fmt.Errorf("configuring graphcache metrics: %w", err)
			}
			cache = c
		} else {
			cache = graphcache.New()
		}
		if tracePath == "" {
			return nil
		}
		return replayTraceFile(cache, tracePath)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if !metricsFlag {
			return nil
		}
		return printCollectedMetrics(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tracePath, "trace", "", "JSONL discovery trace to replay before running the command")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "graphcache.yaml configuration file")
	rootCmd.PersistentFlags().BoolVar(&metricsFlag, "metrics", false, "collect and print graphcache otel metrics after the command runs")
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
