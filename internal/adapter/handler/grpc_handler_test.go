package handler

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/rl1809/rocketshoes-cart/internal/adapter/handler/cartrpc"
	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
)

func newTestGRPCClient(t *testing.T) *cartrpc.CartServiceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	cartrpc.RegisterCartServiceServer(srv, NewGRPCHandler(newTestStore(t)))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return cartrpc.NewCartServiceClient(conn)
}

func TestGRPC_AddAndUpdate(t *testing.T) {
	client := newTestGRPCClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.AddProduct(ctx, &cartrpc.AddProductRequest{ProductID: 1})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, resp.Cart.Items, 1)

	resp, err = client.UpdateProductAmount(ctx, &cartrpc.UpdateProductAmountRequest{ProductID: 1, Amount: 3})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Cart.Items[0].Amount)
	assert.Equal(t, "539.70", resp.Cart.Total)

	resp, err = client.UpdateProductAmount(ctx, &cartrpc.UpdateProductAmountRequest{ProductID: 1, Amount: 4})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Quantidade solicitada fora de estoque", resp.Message)
	assert.Equal(t, 3, resp.Cart.Items[0].Amount)

	resp, err = client.GetCart(ctx, &cartrpc.GetCartRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Cart.Size)
	assert.Equal(t, 3, resp.Cart.Items[0].Amount)
}

func TestGRPC_RemoveNotInCart(t *testing.T) {
	client := newTestGRPCClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.RemoveProduct(ctx, &cartrpc.RemoveProductRequest{ProductID: 2})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Erro na remoção do produto", resp.Message)
	assert.Empty(t, resp.Cart.Items)
}

func TestGRPC_Watch(t *testing.T) {
	client := newTestGRPCClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.Watch(ctx, &cartrpc.WatchRequest{})
	require.NoError(t, err)

	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Empty(t, first.Items)

	_, err = client.AddProduct(ctx, &cartrpc.AddProductRequest{ProductID: 2})
	require.NoError(t, err)

	next, err := stream.Recv()
	require.NoError(t, err)
	require.Len(t, next.Items, 1)
	assert.Equal(t, 2, next.Items[0].ID)
}

func TestOfferLatest(t *testing.T) {
	ch := make(chan domain.Cart, 1)

	offerLatest(ch, domain.Cart{{ID: 1, Amount: 1}})
	offerLatest(ch, domain.Cart{{ID: 1, Amount: 2}})

	got := <-ch
	assert.Equal(t, 2, got[0].Amount)
	select {
	case <-ch:
		t.Fatal("expected only the latest cart")
	default:
	}
}
