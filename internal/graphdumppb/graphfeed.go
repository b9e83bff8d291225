// Package graphdumppb defines the GraphFeed gRPC service used by
// cmd/graphdump to stream a recorded discovery trace to a live cache
// instead of replaying it from a local file. The message and service
// types below are written in the shape protoc-gen-go and
// protoc-gen-go-grpc would emit for a graphfeed.proto describing one
// streaming RPC; see DESIGN.md for why generated code isn't checked
// in here.
package graphdumppb

import (
	"context"

	"google.golang.org/grpc"
)

// Empty is the request message for StreamEvents; it carries no fields.
type Empty struct{}

// EventKind mirrors the JSONL trace op field.
type EventKind int32

const (
	EventUnknown EventKind = iota
	EventAddParticipant
	EventRemoveParticipant
	EventAddWriter
	EventAddReader
	EventRemoveWriter
	EventRemoveReader
	EventUpdateParticipantEntities
)

// GraphEvent is one recorded discovery-plane operation, the streaming
// wire form of a trace.jsonl line.
type GraphEvent struct {
	Kind           EventKind `protobuf:"varint,1,opt,name=kind,proto3" json:"kind"`
	ParticipantGid []byte    `protobuf:"bytes,2,opt,name=participant_gid,json=participantGid,proto3" json:"participant_gid"`
	EntityGid      []byte    `protobuf:"bytes,3,opt,name=entity_gid,json=entityGid,proto3" json:"entity_gid"`
	TopicName      string    `protobuf:"bytes,4,opt,name=topic_name,json=topicName,proto3" json:"topic_name"`
	TopicType      string    `protobuf:"bytes,5,opt,name=topic_type,json=topicType,proto3" json:"topic_type"`
	Enclave        string    `protobuf:"bytes,6,opt,name=enclave,proto3" json:"enclave"`
}

// GraphFeedServer is the server API for the GraphFeed service.
type GraphFeedServer interface {
	// StreamEvents sends every event in a recorded trace to the caller,
	// in recorded order, then closes the stream.
	StreamEvents(*Empty, GraphFeed_StreamEventsServer) error
}

// GraphFeed_StreamEventsServer is the server-side stream handle for
// StreamEvents.
type GraphFeed_StreamEventsServer interface {
	Send(*GraphEvent) error
	grpc.ServerStream
}

type graphFeedStreamEventsServer struct {
	grpc.ServerStream
}

func (s *graphFeedStreamEventsServer) Send(e *GraphEvent) error {
	return s.ServerStream.SendMsg(e)
}

func _GraphFeed_StreamEvents_Handler(srv interface{}, stream grpc.ServerStream) error {
	req := new(Empty)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(GraphFeedServer).StreamEvents(req, &graphFeedStreamEventsServer{stream})
}

// ServiceDesc is the grpc.ServiceDesc for the GraphFeed service,
// registered via RegisterGraphFeedServer.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "graphdumppb.GraphFeed",
	HandlerType: (*GraphFeedServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamEvents",
			Handler:       _GraphFeed_StreamEvents_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "graphfeed.proto",
}

// RegisterGraphFeedServer registers srv as the implementation backing
// the GraphFeed service on s.
func RegisterGraphFeedServer(s *grpc.Server, srv GraphFeedServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// GraphFeedClient is the client API for the GraphFeed service.
type GraphFeedClient interface {
	StreamEvents(ctx context.Context, in *Empty, opts ...grpc.CallOption) (GraphFeed_StreamEventsClient, error)
}

type graphFeedClient struct {
	cc grpc.ClientConnInterface
}

// NewGraphFeedClient returns a GraphFeedClient backed by cc.
func NewGraphFeedClient(cc grpc.ClientConnInterface) GraphFeedClient {
	return &graphFeedClient{cc}
}

func (c *graphFeedClient) StreamEvents(ctx context.Context, in *Empty, opts ...grpc.CallOption) (GraphFeed_StreamEventsClient, error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], "/graphdumppb.GraphFeed/StreamEvents", opts...)
	if err != nil {
		return nil, err
	}
	x := &graphFeedStreamEventsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// GraphFeed_StreamEventsClient is the client-side stream handle for
// StreamEvents.
type GraphFeed_StreamEventsClient interface {
	Recv() (*GraphEvent, error)
	grpc.ClientStream
}

type graphFeedStreamEventsClient struct {
	grpc.ClientStream
}

func (x *graphFeedStreamEventsClient) Recv() (*GraphEvent, error) {
	e := new(GraphEvent)
	if err := x.ClientStream.RecvMsg(e); err != nil {
		return nil, err
	}
	return e, nil
}
