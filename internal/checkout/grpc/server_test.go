package grpc

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/handoff"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/infra/memory"
	"github.com/dwikikusuma/storefront/internal/storage"
	"github.com/dwikikusuma/storefront/pkg/grpcjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCheckoutService(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tab, durable := storage.NewMemory(0), storage.NewMemory(0)
	resolver := app.NewResolver(tab, durable, nil, nil, log)
	svc := app.NewService(resolver, orderapp.NewService(memory.NewOrderRepo()), nil, log)

	id := handoff.Identity{TabID: "tab-1", ClientID: "client-1"}
	ch := handoff.Bind(tab, durable, id)
	require.NoError(t, ch.WriteCheckout(ctx, []handoff.Item{{Name: "Guantes", Qty: 2, Price: 12000}}))

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	Register(srv, NewServer(svc))
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	req := &IdentityRequest{TabID: id.TabID, ClientID: id.ClientID}

	var reply ResolveCartReply
	require.NoError(t, grpcjson.Invoke(ctx, conn, ServiceName, "ResolveCart", req, &reply))
	assert.Equal(t, "tab", reply.Source)
	assert.Equal(t, handoff.KeyCheckout, reply.Key)
	assert.Equal(t, "24 000 $", reply.Display)
	require.Len(t, reply.Items, 1)

	require.NoError(t, grpcjson.Invoke(ctx, conn, ServiceName, "Cancel", req, &CancelReply{}))

	reply = ResolveCartReply{}
	require.NoError(t, grpcjson.Invoke(ctx, conn, ServiceName, "ResolveCart", req, &reply))
	assert.Equal(t, "none", reply.Source)
	assert.Empty(t, reply.Items)
	assert.Equal(t, "0 $", reply.Display)

	err = grpcjson.Invoke(ctx, conn, ServiceName, "ResolveCart", &IdentityRequest{}, &reply)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
