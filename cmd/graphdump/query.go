package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ros2/rmw-dds-common-go/internal/graphcache"
	"github.com/ros2/rmw-dds-common-go/internal/rmwconfig"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "run an introspection query against the cache",
}

var namesAndTypesCmd = &cobra.Command{
	Use:   "names-and-types",
	Short: "list every known topic name mapped to its publisher/subscriber types",
	RunE: func(cmd *cobra.Command, args []string) error {
		demangle := loggingDemangle()
		result := cache.GetNamesAndTypes(demangle, demangle)
		return printJSON(cmd, result)
	},
}

var topicName string

var writersByTopicCmd = &cobra.Command{
	Use:   "writers",
	Short: "list data writers on --topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		if topicName == "" {
			return fmt.Errorf("graphdump query writers: --topic is required")
		}
		return printJSON(cmd, cache.GetWritersInfoByTopic(topicName, loggingDemangle()))
	},
}

var readersByTopicCmd = &cobra.Command{
	Use:   "readers",
	Short: "list data readers on --topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		if topicName == "" {
			return fmt.Errorf("graphdump query readers: --topic is required")
		}
		return printJSON(cmd, cache.GetReadersInfoByTopic(topicName, loggingDemangle()))
	},
}

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "list every known node (name, namespace, enclave)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd, cache.GetNodeNames())
	},
}

func init() {
	writersByTopicCmd.Flags().StringVar(&topicName, "topic", "", "topic name to filter on, matched directly against recorded entries")
	readersByTopicCmd.Flags().StringVar(&topicName, "topic", "", "topic name to filter on, matched directly against recorded entries")
	queryCmd.AddCommand(namesAndTypesCmd, writersByTopicCmd, readersByTopicCmd, nodesCmd)
}

// loggingDemangle wraps the identity demangler with cfg's strict/soft
// reporting of empty demangle results, per rmwconfig.DemangleMode.
func loggingDemangle() graphcache.DemangleFunc {
	base := graphcache.Identity()
	if cfg.DemangleMode != rmwconfig.DemangleModeStrict {
		return base
	}
	return func(mangled string) string {
		demangled := base(mangled)
		if demangled == "" {
			log.Info("dropped entry with empty demangled name", "mangled", mangled)
		}
		return demangled
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
