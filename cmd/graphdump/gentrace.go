package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ros2/rmw-dds-common-go/internal/gidgen"
	"github.com/ros2/rmw-dds-common-go/internal/graphtrace"
)

var genTraceNodes int

var genTraceCmd = &cobra.Command{
	Use:   "gen-trace",
	Short: "synthesize a demo JSONL discovery trace with --nodes writers under one demo_talker node",
	RunE: func(cmd *cobra.Command, args []string) error {
		if genTraceNodes < 1 {
			return fmt.Errorf("graphdump gen-trace: --nodes must be at least 1")
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		participant := gidgen.New()
		if err := enc.Encode(graphtrace.Event{
			Op:             graphtrace.OpAddParticipant,
			ParticipantGid: hex.EncodeToString(participant[:]),
			Enclave:        "/demo",
		}); err != nil {
			return err
		}

		var writerGids []string
		for i := 0; i < genTraceNodes; i++ {
			w := gidgen.New()
			writerGids = append(writerGids, hex.EncodeToString(w[:]))
			if err := enc.Encode(graphtrace.Event{
				Op:             graphtrace.OpAddWriter,
				ParticipantGid: hex.EncodeToString(participant[:]),
				EntityGid:      writerGids[i],
				TopicName:      fmt.Sprintf("/demo/topic_%d", i),
				TopicType:      "demo_msgs/String",
			}); err != nil {
				return err
			}
		}

		return enc.Encode(graphtrace.Event{
			Op:             graphtrace.OpUpdateParticipantEntities,
			ParticipantGid: hex.EncodeToString(participant[:]),
			NodeName:       "demo_talker",
			WriterGids:     writerGids,
		})
	},
}

func init() {
	genTraceCmd.Flags().IntVar(&genTraceNodes, "nodes", 1, "number of writer endpoints to synthesize under the demo node")
	rootCmd.AddCommand(genTraceCmd)
}
