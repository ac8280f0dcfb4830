package grpc

import (
	"context"
	"errors"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/grpcjson"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "storefront.cart.v1.CartService"

// CartServer is the server API of ServiceName.
type CartServer interface {
	Open(ctx context.Context, req *IdentityRequest) (*CartReply, error)
	AddItem(ctx context.Context, req *AddItemRequest) (*CartReply, error)
	AdjustQuantity(ctx context.Context, req *AdjustQuantityRequest) (*CartReply, error)
	RemoveItem(ctx context.Context, req *RemoveItemRequest) (*CartReply, error)
	PrepareCheckout(ctx context.Context, req *IdentityRequest) (*HandoffReply, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CartServer)(nil),
	Methods: []grpc.MethodDesc{
		grpcjson.Unary(ServiceName, "Open", CartServer.Open),
		grpcjson.Unary(ServiceName, "AddItem", CartServer.AddItem),
		grpcjson.Unary(ServiceName, "AdjustQuantity", CartServer.AdjustQuantity),
		grpcjson.Unary(ServiceName, "RemoveItem", CartServer.RemoveItem),
		grpcjson.Unary(ServiceName, "PrepareCheckout", CartServer.PrepareCheckout),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/cart/v1/cart.proto",
}

func Register(r grpc.ServiceRegistrar, srv CartServer) {
	r.RegisterService(&ServiceDesc, srv)
}

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) Open(ctx context.Context, req *IdentityRequest) (*CartReply, error) {
	st, err := s.svc.Open(ctx, req.identity())
	if err != nil {
		return nil, mapErr(err)
	}
	return toReply(st.Cart()), nil
}

func (s *Server) AddItem(ctx context.Context, req *AddItemRequest) (*CartReply, error) {
	st, err := s.svc.Open(ctx, req.identity())
	if err != nil {
		return nil, mapErr(err)
	}
	st.AddItem(ctx, req.Name, req.Price, req.Image)
	return toReply(st.Cart()), nil
}

func (s *Server) AdjustQuantity(ctx context.Context, req *AdjustQuantityRequest) (*CartReply, error) {
	st, err := s.svc.Open(ctx, req.identity())
	if err != nil {
		return nil, mapErr(err)
	}
	if _, err := st.AdjustQuantity(ctx, req.LineID, req.Delta); err != nil {
		return nil, mapErr(err)
	}
	return toReply(st.Cart()), nil
}

func (s *Server) RemoveItem(ctx context.Context, req *RemoveItemRequest) (*CartReply, error) {
	st, err := s.svc.Open(ctx, req.identity())
	if err != nil {
		return nil, mapErr(err)
	}
	if err := st.RemoveItem(ctx, req.LineID); err != nil {
		return nil, mapErr(err)
	}
	return toReply(st.Cart()), nil
}

func (s *Server) PrepareCheckout(ctx context.Context, req *IdentityRequest) (*HandoffReply, error) {
	st, err := s.svc.Open(ctx, req.identity())
	if err != nil {
		return nil, mapErr(err)
	}
	return &HandoffReply{Items: st.PrepareCheckoutHandoff(ctx)}, nil
}

func toReply(c domain.Cart) *CartReply {
	out := &CartReply{
		Lines:   make([]Line, 0, len(c.Lines)),
		Total:   c.Total.Amount,
		Display: c.Total.Display,
		Visible: c.Panel.Visible,
	}
	for _, l := range c.Lines {
		out.Lines = append(out.Lines, Line{
			ID:       l.ID,
			Name:     l.Name,
			Qty:      l.Qty,
			Price:    l.Price,
			Img:      l.Img,
			Subtotal: l.Subtotal(),
		})
	}
	return out
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrLineNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

