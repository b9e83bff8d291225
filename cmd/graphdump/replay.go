package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ros2/rmw-dds-common-go/internal/graphcache"
	"github.com/ros2/rmw-dds-common-go/internal/graphdumppb"
	"github.com/ros2/rmw-dds-common-go/internal/graphtrace"
)

var replayAddr string

var replayCmd = &cobra.Command{
	Use:   "replay <trace.jsonl>",
	Short: "replay a JSONL discovery trace into a fresh cache and dump the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fresh := graphcache.New()
		if err := replayTraceFile(fresh, args[0]); err != nil {
			return err
		}
		return fresh.Dump(cmd.OutOrStdout())
	},
}

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "stream a recorded trace from a GraphFeed gRPC server and apply events as they arrive",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayAddr == "" {
			return fmt.Errorf("graphdump stream: --addr is required")
		}
		conn, err := grpc.NewClient(replayAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return fmt.Errorf("graphdump stream: dialing %s: %w", replayAddr, err)
		}
		defer conn.Close()

		client := graphdumppb.NewGraphFeedClient(conn)
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		stream, err := client.StreamEvents(ctx, &graphdumppb.Empty{})
		if err != nil {
			return fmt.Errorf("graphdump stream: opening stream: %w", err)
		}

		applied := 0
		for {
			ev, err := stream.Recv()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("graphdump stream: receiving event: %w", err)
			}
			if err := applyGraphEvent(cache, ev); err != nil {
				return fmt.Errorf("graphdump stream: applying event %d: %w", applied, err)
			}
			applied++
		}
		log.Info("applied streamed events", "count", applied)
		return cache.Dump(cmd.OutOrStdout())
	},
}

func init() {
	streamCmd.Flags().StringVar(&replayAddr, "addr", "", "GraphFeed gRPC server address, e.g. localhost:50051")
	replayCmd.AddCommand(streamCmd)
}

func replayTraceFile(c *graphcache.Cache, path string) error {
	events, err := graphtrace.ReadFile(path)
	if err != nil {
		return err
	}
	if err := graphtrace.Apply(c, events); err != nil {
		return err
	}
	log.Info("replayed trace", "path", path, "events", len(events))
	return nil
}

func applyGraphEvent(c *graphcache.Cache, ev *graphdumppb.GraphEvent) error {
	e := graphtrace.Event{
		ParticipantGid: hex.EncodeToString(ev.ParticipantGid),
		EntityGid:      hex.EncodeToString(ev.EntityGid),
		TopicName:      ev.TopicName,
		TopicType:      ev.TopicType,
		Enclave:        ev.Enclave,
	}
	switch ev.Kind {
	case graphdumppb.EventAddParticipant:
		e.Op = graphtrace.OpAddParticipant
	case graphdumppb.EventRemoveParticipant:
		e.Op = graphtrace.OpRemoveParticipant
	case graphdumppb.EventAddWriter:
		e.Op = graphtrace.OpAddWriter
	case graphdumppb.EventAddReader:
		e.Op = graphtrace.OpAddReader
	case graphdumppb.EventRemoveWriter:
		e.Op = graphtrace.OpRemoveWriter
	case graphdumppb.EventRemoveReader:
		e.Op = graphtrace.OpRemoveReader
	case graphdumppb.EventUpdateParticipantEntities:
		e.Op = graphtrace.OpUpdateParticipantEntities
	default:
		return fmt.Errorf("unrecognized event kind %d", ev.Kind)
	}
	return graphtrace.Apply(c, []graphtrace.Event{e})
}
