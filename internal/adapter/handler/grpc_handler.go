package handler

import (
	"context"

	"github.com/rl1809/rocketshoes-cart/internal/adapter/handler/cartrpc"
	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/core/service"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

type GRPCHandler struct {
	store *service.CartStore
}

func NewGRPCHandler(store *service.CartStore) *GRPCHandler {
	return &GRPCHandler{store: store}
}

func (h *GRPCHandler) GetCart(ctx context.Context, req *cartrpc.GetCartRequest) (*cartrpc.CartResponse, error) {
	return h.respond(nil), nil
}

func (h *GRPCHandler) AddProduct(ctx context.Context, req *cartrpc.AddProductRequest) (*cartrpc.CartResponse, error) {
	return h.respond(h.store.AddProduct(ctx, req.ProductID)), nil
}

func (h *GRPCHandler) RemoveProduct(ctx context.Context, req *cartrpc.RemoveProductRequest) (*cartrpc.CartResponse, error) {
	return h.respond(h.store.RemoveProduct(ctx, req.ProductID)), nil
}

func (h *GRPCHandler) UpdateProductAmount(ctx context.Context, req *cartrpc.UpdateProductAmountRequest) (*cartrpc.CartResponse, error) {
	return h.respond(h.store.UpdateProductAmount(ctx, req.ProductID, req.Amount)), nil
}

func (h *GRPCHandler) Watch(req *cartrpc.WatchRequest, stream cartrpc.CartService_WatchServer) error {
	updates := make(chan domain.Cart, 1)
	unsubscribe := h.store.Subscribe(port.ObserverFunc(func(change domain.CartChange) {
		offerLatest(updates, change.Current)
	}))
	defer unsubscribe()

	if err := stream.Send(toWireCart(h.store.Cart())); err != nil {
		return err
	}

	for {
		select {
		case <-stream.Context().Done():
			return nil
		case cart := <-updates:
			if err := stream.Send(toWireCart(cart)); err != nil {
				return err
			}
		}
	}
}

func (h *GRPCHandler) respond(err error) *cartrpc.CartResponse {
	if err != nil {
		return &cartrpc.CartResponse{
			Success: false,
			Message: failureMessage(err),
			Cart:    toWireCart(h.store.Cart()),
		}
	}

	return &cartrpc.CartResponse{
		Success: true,
		Cart:    toWireCart(h.store.Cart()),
	}
}

// offerLatest replaces a pending cart nobody has read yet, so a slow watcher
// only ever sees the newest state.
func offerLatest(ch chan domain.Cart, cart domain.Cart) {
	for {
		select {
		case ch <- cart:
			return
		default:
		}

		select {
		case <-ch:
		default:
		}
	}
}
