package main

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
)

// jsonCodec replaces the usual protobuf wire codec with plain JSON, so
// the service descriptor below needs no .proto/protoc step, matching
// the teacher's cmd/server/main.go exactly.
type jsonCodec struct{}

func (jsonCodec) Name() string                      { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// AproposServer is the gRPC-visible surface of server, kept as an
// interface so the generated-by-hand descriptor below can dispatch to
// any implementation.
type AproposServer interface {
	Search(context.Context, *searchRequest) (*searchResponse, error)
}

func registerAproposServer(s *grpc.Server, srv AproposServer) {
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: "aproposd.Apropos",
		HandlerType: (*AproposServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "Search", Handler: _Apropos_Search_Handler},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "aproposd",
	}, srv)
}

func _Apropos_Search_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(searchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AproposServer).Search(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/aproposd.Apropos/Search"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AproposServer).Search(ctx, req.(*searchRequest))
	}
	return interceptor(ctx, in, info, handler)
}
