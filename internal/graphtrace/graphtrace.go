// Package graphtrace reads and applies a JSONL-encoded sequence of
// discovery-plane operations against a graph cache, letting
// cmd/graphdump replay spec.md §8's end-to-end scenarios (and any
// hand-authored fixture in the same shape) as a reusable trace file.
package graphtrace

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ros2/rmw-dds-common-go/internal/entities"
	"github.com/ros2/rmw-dds-common-go/internal/gid"
	"github.com/ros2/rmw-dds-common-go/internal/graphcache"
	"github.com/ros2/rmw-dds-common-go/internal/qos"
	"github.com/ros2/rmw-dds-common-go/internal/wire"
)

// Op names understood by a trace line's "op" field.
const (
	OpAddParticipant            = "add_participant"
	OpRemoveParticipant         = "remove_participant"
	OpAddWriter                 = "add_writer"
	OpAddReader                 = "add_reader"
	OpRemoveWriter              = "remove_writer"
	OpRemoveReader              = "remove_reader"
	OpUpdateParticipantEntities = "update_participant_entities"
)

// Event is one line of a trace file: a discovery-plane operation plus
// whichever fields it needs. Unused fields are left zero-valued.
type Event struct {
	Op             string   `json:"op"`
	ParticipantGid string   `json:"participant_gid,omitempty"`
	EntityGid      string   `json:"entity_gid,omitempty"`
	TopicName      string   `json:"topic_name,omitempty"`
	TopicType      string   `json:"topic_type,omitempty"`
	Enclave        string   `json:"enclave,omitempty"`
	NodeName       string   `json:"node_name,omitempty"`
	NodeNamespace  string   `json:"node_namespace,omitempty"`
	WriterGids     []string `json:"writer_gids,omitempty"`
	ReaderGids     []string `json:"reader_gids,omitempty"`
}

func parseGid(s string) (gid.Gid, error) {
	if s == "" {
		return gid.Zero, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return gid.Zero, fmt.Errorf("graphtrace: bad hex gid %q: %w", s, err)
	}
	return gid.FromBytes(b)
}

// ReadFile parses every event in a trace.jsonl file at path.
func ReadFile(path string) ([]Event, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied trace path
	if err != nil {
		return nil, fmt.Errorf("graphtrace: reading %s: %w", path, err)
	}
	return ReadData(data)
}

// ReadData parses every event in in-memory JSONL data.
func ReadData(data []byte) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, fmt.Errorf("graphtrace: parsing line %d: %w", lineNum, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("graphtrace: scanning trace: %w", err)
	}
	return events, nil
}

// Apply replays every event against cache, in order, stopping at the
// first unrecognized op or malformed gid.
func Apply(cache *graphcache.Cache, events []Event) error {
	for i, ev := range events {
		if err := applyOne(cache, ev); err != nil {
			return fmt.Errorf("graphtrace: event %d (%s): %w", i, ev.Op, err)
		}
	}
	return nil
}

func applyOne(cache *graphcache.Cache, ev Event) error {
	switch ev.Op {
	case OpAddParticipant:
		pg, err := parseGid(ev.ParticipantGid)
		if err != nil {
			return err
		}
		cache.AddParticipant(pg, ev.Enclave)
	case OpRemoveParticipant:
		pg, err := parseGid(ev.ParticipantGid)
		if err != nil {
			return err
		}
		cache.RemoveParticipant(pg)
	case OpAddWriter, OpAddReader:
		eg, err := parseGid(ev.EntityGid)
		if err != nil {
			return err
		}
		pg, err := parseGid(ev.ParticipantGid)
		if err != nil {
			return err
		}
		info := entities.EntityInfo{
			TopicName:      ev.TopicName,
			TopicType:      ev.TopicType,
			ParticipantGid: pg,
			QoS:            qos.Profile{},
		}
		if ev.Op == OpAddWriter {
			cache.AddWriter(eg, info)
		} else {
			cache.AddReader(eg, info)
		}
	case OpRemoveWriter:
		eg, err := parseGid(ev.EntityGid)
		if err != nil {
			return err
		}
		cache.RemoveWriter(eg)
	case OpRemoveReader:
		eg, err := parseGid(ev.EntityGid)
		if err != nil {
			return err
		}
		cache.RemoveReader(eg)
	case OpUpdateParticipantEntities:
		pg, err := parseGid(ev.ParticipantGid)
		if err != nil {
			return err
		}
		node := wire.NodeEntitiesInfo{NodeName: ev.NodeName, NodeNamespace: ev.NodeNamespace}
		for _, s := range ev.WriterGids {
			g, err := parseGid(s)
			if err != nil {
				return err
			}
			node.WriterGidSeq = append(node.WriterGidSeq, wire.FromGid(g))
		}
		for _, s := range ev.ReaderGids {
			g, err := parseGid(s)
			if err != nil {
				return err
			}
			node.ReaderGidSeq = append(node.ReaderGidSeq, wire.FromGid(g))
		}
		msg := wire.ParticipantEntitiesInfo{Gid: wire.FromGid(pg)}
		if ev.NodeName != "" {
			msg.NodeEntitiesInfoSeq = []wire.NodeEntitiesInfo{node}
		}
		cache.UpdateParticipantEntities(msg)
	default:
		return fmt.Errorf("unrecognized op %q", ev.Op)
	}
	return nil
}
