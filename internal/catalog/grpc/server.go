package grpc

import (
	"context"
	"errors"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/pkg/grpcjson"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "storefront.catalog.v1.CatalogService"

type CatalogServer interface {
	GetProduct(ctx context.Context, req *GetProductRequest) (*ProductReply, error)
	ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsReply, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		grpcjson.Unary(ServiceName, "GetProduct", CatalogServer.GetProduct),
		grpcjson.Unary(ServiceName, "ListProducts", CatalogServer.ListProducts),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/catalog/v1/catalog.proto",
}

func Register(r grpc.ServiceRegistrar, srv CatalogServer) {
	r.RegisterService(&ServiceDesc, srv)
}

type GetProductRequest struct {
	ID string `json:"id"`
}

type ListProductsRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type ProductReply struct {
	Product domain.Product `json:"product"`
	Amount  int64          `json:"amount"`
}

type ListProductsReply struct {
	Products []domain.Product `json:"products"`
}

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) GetProduct(ctx context.Context, req *GetProductRequest) (*ProductReply, error) {
	p, err := s.svc.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &ProductReply{Product: p, Amount: p.Amount()}, nil
}

func (s *Server) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsReply, error) {
	products, err := s.svc.ListProducts(ctx, req.Query, req.Limit)
	if err != nil {
		return nil, mapErr(err)
	}
	return &ListProductsReply{Products: products}, nil
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, app.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
