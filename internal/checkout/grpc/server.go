package grpc

import (
	"context"
	"errors"

	"github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/handoff"
	"github.com/dwikikusuma/storefront/pkg/grpcjson"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "storefront.checkout.v1.CheckoutService"

type CheckoutServer interface {
	ResolveCart(ctx context.Context, req *IdentityRequest) (*ResolveCartReply, error)
	Cancel(ctx context.Context, req *IdentityRequest) (*CancelReply, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CheckoutServer)(nil),
	Methods: []grpc.MethodDesc{
		grpcjson.Unary(ServiceName, "ResolveCart", CheckoutServer.ResolveCart),
		grpcjson.Unary(ServiceName, "Cancel", CheckoutServer.Cancel),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/checkout/v1/checkout.proto",
}

func Register(r grpc.ServiceRegistrar, srv CheckoutServer) {
	r.RegisterService(&ServiceDesc, srv)
}

type IdentityRequest struct {
	TabID    string `json:"tab_id"`
	ClientID string `json:"client_id"`
}

type ResolveCartReply struct {
	Items   []handoff.Item `json:"items"`
	Source  string         `json:"source"`
	Key     string         `json:"key,omitempty"`
	Total   int64          `json:"total"`
	Display string         `json:"display"`
}

type CancelReply struct{}

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) ResolveCart(ctx context.Context, req *IdentityRequest) (*ResolveCartReply, error) {
	sum, res, err := s.svc.Load(ctx, handoff.Identity{TabID: req.TabID, ClientID: req.ClientID})
	if err != nil {
		return nil, mapErr(err)
	}
	return &ResolveCartReply{
		Items:   res.Items,
		Source:  res.Source.String(),
		Key:     res.Key,
		Total:   sum.Amount(),
		Display: sum.Total(),
	}, nil
}

func (s *Server) Cancel(ctx context.Context, req *IdentityRequest) (*CancelReply, error) {
	if err := s.svc.Cancel(ctx, handoff.Identity{TabID: req.TabID, ClientID: req.ClientID}); err != nil {
		return nil, mapErr(err)
	}
	return &CancelReply{}, nil
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrNoSummary):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
