// Package grpcjson carries gRPC messages as JSON so services can be declared
// with plain Go structs instead of generated protobuf types.
package grpcjson

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// Name is the codec name and the content-subtype clients must send.
const Name = "json"

// Codec marshals messages with encoding/json.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (Codec) Name() string { return Name }

func init() {
	encoding.RegisterCodec(Codec{})
}

// Unary builds the method descriptor of a unary RPC whose server
// implementation is fn.
func Unary[S, Req, Resp any](service, method string, fn func(srv S, ctx context.Context, req *Req) (*Resp, error)) grpc.MethodDesc {
	full := fmt.Sprintf("/%s/%s", service, method)
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			handler := func(ctx context.Context, req any) (any, error) {
				return fn(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Invoke calls a unary method on cc using the JSON codec.
func Invoke(ctx context.Context, cc grpc.ClientConnInterface, service, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append(opts, grpc.CallContentSubtype(Name))
	return cc.Invoke(ctx, fmt.Sprintf("/%s/%s", service, method), in, out, opts...)
}
