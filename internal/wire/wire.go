// Package wire defines the discovery-topic message schema exchanged
// between peers — Gid, NodeEntitiesInfo, and ParticipantEntitiesInfo —
// plus the user-data QoS string codec for the type-hash auxiliary
// field. The struct layout below is written in the shape
// protoc-gen-go would emit for a discovery.proto describing these
// three messages (field-ordered, export-only, no unexported runtime
// state) so that a real protobuf toolchain run can be swapped in
// later without changing call sites; see DESIGN.md for why generated
// code isn't checked in here.
package wire

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/ros2/rmw-dds-common-go/internal/entities"
	"github.com/ros2/rmw-dds-common-go/internal/gid"
)

// Gid is the wire form of gid.Gid: a fixed-size byte array, a straight
// memory copy away from the in-process representation.
type Gid [gid.StorageSize]byte

// FromGid converts an in-process Gid to its wire form.
func FromGid(g gid.Gid) Gid {
	return Gid(g)
}

// ToGid converts a wire Gid back to the in-process representation.
func (w Gid) ToGid() gid.Gid {
	return gid.Gid(w)
}

// NodeEntitiesInfo is the wire form of a single node's endpoint
// membership.
type NodeEntitiesInfo struct {
	NodeNamespace string `protobuf:"bytes,1,opt,name=node_namespace,json=nodeNamespace,proto3" json:"node_namespace"`
	NodeName      string `protobuf:"bytes,2,opt,name=node_name,json=nodeName,proto3" json:"node_name"`
	ReaderGidSeq  []Gid  `protobuf:"bytes,3,rep,name=reader_gid_seq,json=readerGidSeq,proto3" json:"reader_gid_seq"`
	WriterGidSeq  []Gid  `protobuf:"bytes,4,rep,name=writer_gid_seq,json=writerGidSeq,proto3" json:"writer_gid_seq"`
}

// ParticipantEntitiesInfo is the authoritative state-delta message a
// participant publishes on the discovery topic so peers can update
// their graph caches.
type ParticipantEntitiesInfo struct {
	Gid                 Gid                `protobuf:"bytes,1,opt,name=gid,proto3" json:"gid"`
	NodeEntitiesInfoSeq []NodeEntitiesInfo `protobuf:"bytes,2,rep,name=node_entities_info_seq,json=nodeEntitiesInfoSeq,proto3" json:"node_entities_info_seq"`
}

// FromNodeEntitiesInfo converts the in-process record to its wire form.
func FromNodeEntitiesInfo(n entities.NodeEntitiesInfo) NodeEntitiesInfo {
	out := NodeEntitiesInfo{
		NodeNamespace: n.NodeNamespace,
		NodeName:      n.NodeName,
	}
	for _, g := range n.WriterGidSeq {
		out.WriterGidSeq = append(out.WriterGidSeq, FromGid(g))
	}
	for _, g := range n.ReaderGidSeq {
		out.ReaderGidSeq = append(out.ReaderGidSeq, FromGid(g))
	}
	return out
}

// ToNodeEntitiesInfo converts the wire record back to the in-process form.
func (n NodeEntitiesInfo) ToNodeEntitiesInfo() entities.NodeEntitiesInfo {
	out := entities.NodeEntitiesInfo{
		NodeNamespace: n.NodeNamespace,
		NodeName:      n.NodeName,
	}
	for _, g := range n.WriterGidSeq {
		out.WriterGidSeq = append(out.WriterGidSeq, g.ToGid())
	}
	for _, g := range n.ReaderGidSeq {
		out.ReaderGidSeq = append(out.ReaderGidSeq, g.ToGid())
	}
	return out
}

// FromParticipantInfo builds the wire message describing participant
// pg's full current node-entities state, suitable for publishing on
// the discovery topic.
func FromParticipantInfo(pg gid.Gid, p entities.ParticipantInfo) ParticipantEntitiesInfo {
	msg := ParticipantEntitiesInfo{Gid: FromGid(pg)}
	for _, n := range p.NodeEntitiesInfoSeq {
		msg.NodeEntitiesInfoSeq = append(msg.NodeEntitiesInfoSeq, FromNodeEntitiesInfo(n))
	}
	return msg
}

// ToNodeEntitiesInfoSeq converts every node record in msg back to the
// in-process form, preserving order.
func (msg ParticipantEntitiesInfo) ToNodeEntitiesInfoSeq() []entities.NodeEntitiesInfo {
	if len(msg.NodeEntitiesInfoSeq) == 0 {
		return nil
	}
	out := make([]entities.NodeEntitiesInfo, len(msg.NodeEntitiesInfoSeq))
	for i, n := range msg.NodeEntitiesInfoSeq {
		out[i] = n.ToNodeEntitiesInfo()
	}
	return out
}

// userDataTypeHashKey is the well-known user-data QoS key carrying the
// type hash's canonical string form.
const userDataTypeHashKey = "typehash"

// ParseTypeHashFromUserData locates the "typehash" key in a ';'-delimited
// "key=value;" user-data byte string. If the key is absent, the zero
// (unknown) hash is returned with no error. Other keys are ignored.
func ParseTypeHashFromUserData(data []byte) (entities.TypeHash, error) {
	for _, pair := range strings.Split(string(data), ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 || kv[0] != userDataTypeHashKey {
			continue
		}
		return parseTypeHashString(kv[1])
	}
	return entities.TypeHash{}, nil
}

// parseTypeHashString parses the RIHS<version>_<hex> canonical form
// produced by EncodeTypeHashForUserDataQoS / TypeHash.String.
func parseTypeHashString(s string) (entities.TypeHash, error) {
	var h entities.TypeHash
	if !strings.HasPrefix(s, "RIHS") {
		return h, fmt.Errorf("wire: malformed type hash %q: missing RIHS prefix", s)
	}
	rest := s[len("RIHS"):]
	us := strings.IndexByte(rest, '_')
	if us < 0 {
		return h, fmt.Errorf("wire: malformed type hash %q: missing version separator", s)
	}
	version, err := strconv.ParseUint(rest[:us], 10, 8)
	if err != nil {
		return h, fmt.Errorf("wire: malformed type hash %q: bad version: %w", s, err)
	}
	hexPart := rest[us+1:]
	if len(hexPart) != entities.TypeHashSize*2 {
		return h, fmt.Errorf("wire: malformed type hash %q: expected %d hex chars, got %d", s, entities.TypeHashSize*2, len(hexPart))
	}
	decoded, err := hex.DecodeString(hexPart)
	if err != nil {
		return h, fmt.Errorf("wire: malformed type hash %q: bad hex digest: %w", s, err)
	}
	var value [entities.TypeHashSize]byte
	copy(value[:], decoded)
	h.Version = uint8(version)
	h.Value = value
	return h, nil
}

// EncodeTypeHashForUserDataQoS returns the "typehash=<value>;" fragment
// to embed in a user-data QoS string, or the empty string if h's
// version is unset.
func EncodeTypeHashForUserDataQoS(h entities.TypeHash) string {
	if h.IsUnset() {
		return ""
	}
	return userDataTypeHashKey + "=" + h.String() + ";"
}

// Field numbers match the protobuf tags on NodeEntitiesInfo and
// ParticipantEntitiesInfo above, so MarshalBinary uses the field
// numbers and wire types a protoc-gen-go encoder would use for the
// same .proto, and a generated decoder can read its output. Unlike a
// proto3 generated encoder, it also writes string fields that are empty.
const (
	fieldParticipantGid    = protowire.Number(1)
	fieldNodeEntitiesInfos = protowire.Number(2)

	fieldNodeNamespace = protowire.Number(1)
	fieldNodeName      = protowire.Number(2)
	fieldReaderGidSeq  = protowire.Number(3)
	fieldWriterGidSeq  = protowire.Number(4)
)

func appendNodeEntitiesInfo(b []byte, n NodeEntitiesInfo) []byte {
	b = protowire.AppendTag(b, fieldNodeNamespace, protowire.BytesType)
	b = protowire.AppendString(b, n.NodeNamespace)
	b = protowire.AppendTag(b, fieldNodeName, protowire.BytesType)
	b = protowire.AppendString(b, n.NodeName)
	for _, g := range n.ReaderGidSeq {
		b = protowire.AppendTag(b, fieldReaderGidSeq, protowire.BytesType)
		b = protowire.AppendBytes(b, g[:])
	}
	for _, g := range n.WriterGidSeq {
		b = protowire.AppendTag(b, fieldWriterGidSeq, protowire.BytesType)
		b = protowire.AppendBytes(b, g[:])
	}
	return b
}

func consumeNodeEntitiesInfo(b []byte) (NodeEntitiesInfo, error) {
	var n NodeEntitiesInfo
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return n, fmt.Errorf("wire: malformed node_entities_info tag: %w", protowire.ParseError(tagLen))
		}
		b = b[tagLen:]
		if typ != protowire.BytesType {
			return n, fmt.Errorf("wire: unexpected wire type %v for field %d", typ, num)
		}
		val, fieldLen := protowire.ConsumeBytes(b)
		if fieldLen < 0 {
			return n, fmt.Errorf("wire: malformed node_entities_info field %d: %w", num, protowire.ParseError(fieldLen))
		}
		b = b[fieldLen:]
		switch num {
		case fieldNodeNamespace:
			n.NodeNamespace = string(val)
		case fieldNodeName:
			n.NodeName = string(val)
		case fieldReaderGidSeq:
			g, err := gidFromWireBytes(val)
			if err != nil {
				return n, err
			}
			n.ReaderGidSeq = append(n.ReaderGidSeq, g)
		case fieldWriterGidSeq:
			g, err := gidFromWireBytes(val)
			if err != nil {
				return n, err
			}
			n.WriterGidSeq = append(n.WriterGidSeq, g)
		}
	}
	return n, nil
}

func gidFromWireBytes(val []byte) (Gid, error) {
	var g Gid
	if len(val) != gid.StorageSize {
		return g, fmt.Errorf("wire: expected %d-byte gid, got %d", gid.StorageSize, len(val))
	}
	copy(g[:], val)
	return g, nil
}

// MarshalBinary encodes msg in the protobuf wire format implied by its
// field tags, using google.golang.org/protobuf's low-level protowire
// primitives directly rather than full message reflection (no
// generated proto.Message implementation backs these structs; see
// DESIGN.md).
func (msg ParticipantEntitiesInfo) MarshalBinary() ([]byte, error) {
	var b []byte
	b = protowire.AppendTag(b, fieldParticipantGid, protowire.BytesType)
	b = protowire.AppendBytes(b, msg.Gid[:])
	for _, n := range msg.NodeEntitiesInfoSeq {
		b = protowire.AppendTag(b, fieldNodeEntitiesInfos, protowire.BytesType)
		b = protowire.AppendBytes(b, appendNodeEntitiesInfo(nil, n))
	}
	return b, nil
}

// UnmarshalBinary decodes the format MarshalBinary produces.
func (msg *ParticipantEntitiesInfo) UnmarshalBinary(data []byte) error {
	*msg = ParticipantEntitiesInfo{}
	for len(data) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(data)
		if tagLen < 0 {
			return fmt.Errorf("wire: malformed participant_entities_info tag: %w", protowire.ParseError(tagLen))
		}
		data = data[tagLen:]
		if typ != protowire.BytesType {
			return fmt.Errorf("wire: unexpected wire type %v for field %d", typ, num)
		}
		val, fieldLen := protowire.ConsumeBytes(data)
		if fieldLen < 0 {
			return fmt.Errorf("wire: malformed participant_entities_info field %d: %w", num, protowire.ParseError(fieldLen))
		}
		data = data[fieldLen:]
		switch num {
		case fieldParticipantGid:
			g, err := gidFromWireBytes(val)
			if err != nil {
				return err
			}
			msg.Gid = g
		case fieldNodeEntitiesInfos:
			n, err := consumeNodeEntitiesInfo(val)
			if err != nil {
				return err
			}
			msg.NodeEntitiesInfoSeq = append(msg.NodeEntitiesInfoSeq, n)
		}
	}
	return nil
}
