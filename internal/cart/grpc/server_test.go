package grpc

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/dwikikusuma/storefront/internal/cart/app"
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

func dial(t *testing.T, persist bool) (*grpc.ClientConn, *app.Service) {
	t.Helper()
	svc := app.NewService(storage.NewMemory(0), storage.NewMemory(0), app.Options{
		Persist: persist,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	Register(srv, NewServer(svc))
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
	})
	return conn, svc
}

func call(ctx context.Context, conn *grpc.ClientConn, method string, in, out any) error {
	return grpcjson.Invoke(ctx, conn, ServiceName, method, in, out)
}

func TestCartService(t *testing.T) {
	ctx := context.Background()
	conn, _ := dial(t, false)
	id := IdentityRequest{TabID: "tab-1", ClientID: "client-1"}

	var reply CartReply
	require.NoError(t, call(ctx, conn, "Open", &id, &reply))
	assert.Empty(t, reply.Lines)
	assert.False(t, reply.Visible)
	assert.Equal(t, "0 $", reply.Display)

	add := AddItemRequest{IdentityRequest: id, Name: "Guantes", Price: "$ 12.000"}
	require.NoError(t, call(ctx, conn, "AddItem", &add, &reply))
	add.Name = " guantes "
	require.NoError(t, call(ctx, conn, "AddItem", &add, &reply))
	require.Len(t, reply.Lines, 1)
	assert.Equal(t, 2, reply.Lines[0].Qty)
	assert.Equal(t, "24 000 $", reply.Display)
	assert.True(t, reply.Visible)

	lineID := reply.Lines[0].ID
	adj := AdjustQuantityRequest{IdentityRequest: id, LineID: lineID, Delta: -1}
	require.NoError(t, call(ctx, conn, "AdjustQuantity", &adj, &reply))
	assert.Equal(t, 1, reply.Lines[0].Qty)

	var handoffReply HandoffReply
	require.NoError(t, call(ctx, conn, "PrepareCheckout", &id, &handoffReply))
	require.Len(t, handoffReply.Items, 1)
	assert.Equal(t, int64(12000), handoffReply.Items[0].Price)

	rm := RemoveItemRequest{IdentityRequest: id, LineID: lineID}
	require.NoError(t, call(ctx, conn, "RemoveItem", &rm, &reply))
	assert.Empty(t, reply.Lines)
	assert.False(t, reply.Visible)
}

func TestCartServiceErrors(t *testing.T) {
	ctx := context.Background()
	conn, _ := dial(t, false)

	t.Run("missing identity -> InvalidArgument", func(t *testing.T) {
		var reply CartReply
		err := call(ctx, conn, "Open", &IdentityRequest{TabID: "t"}, &reply)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("unknown line -> NotFound", func(t *testing.T) {
		var reply CartReply
		req := RemoveItemRequest{IdentityRequest: IdentityRequest{TabID: "t", ClientID: "c"}, LineID: "nope"}
		err := call(ctx, conn, "RemoveItem", &req, &reply)
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("bad delta -> InvalidArgument", func(t *testing.T) {
		var reply CartReply
		req := AdjustQuantityRequest{IdentityRequest: IdentityRequest{TabID: "t", ClientID: "c"}, LineID: "x", Delta: 3}
		err := call(ctx, conn, "AdjustQuantity", &req, &reply)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}
