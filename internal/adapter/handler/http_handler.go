package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rl1809/rocketshoes-cart/internal/adapter/handler/cartrpc"
	"github.com/rl1809/rocketshoes-cart/internal/core/service"
)

type HTTPHandler struct {
	store *service.CartStore
}

type AddProductHTTPRequest struct {
	ProductID int `json:"product_id"`
}

type UpdateAmountHTTPRequest struct {
	Amount *int `json:"amount"`
}

type CartHTTPResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Cart    *cartrpc.Cart `json:"cart,omitempty"`
}

func NewHTTPHandler(store *service.CartStore) *HTTPHandler {
	return &HTTPHandler{store: store}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /api/cart", h.GetCart)
	mux.HandleFunc("POST /api/cart/items", h.AddProduct)
	mux.HandleFunc("PUT /api/cart/items/{id}", h.UpdateProductAmount)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.RemoveProduct)
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CartHTTPResponse{
		Success: true,
		Cart:    toWireCart(h.store.Cart()),
	})
}

func (h *HTTPHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req AddProductHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CartHTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	if req.ProductID <= 0 {
		writeJSON(w, http.StatusBadRequest, CartHTTPResponse{
			Success: false,
			Message: "missing required fields",
		})
		return
	}

	h.respond(w, h.store.AddProduct(r.Context(), req.ProductID))
}

func (h *HTTPHandler) UpdateProductAmount(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathProductID(w, r)
	if !ok {
		return
	}

	var req UpdateAmountHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CartHTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	if req.Amount == nil {
		writeJSON(w, http.StatusBadRequest, CartHTTPResponse{
			Success: false,
			Message: "missing required fields",
		})
		return
	}

	h.respond(w, h.store.UpdateProductAmount(r.Context(), productID, *req.Amount))
}

func (h *HTTPHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathProductID(w, r)
	if !ok {
		return
	}

	h.respond(w, h.store.RemoveProduct(r.Context(), productID))
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) respond(w http.ResponseWriter, err error) {
	if err != nil {
		writeJSON(w, failureStatus(err), CartHTTPResponse{
			Success: false,
			Message: failureMessage(err),
			Cart:    toWireCart(h.store.Cart()),
		})
		return
	}

	writeJSON(w, http.StatusOK, CartHTTPResponse{
		Success: true,
		Cart:    toWireCart(h.store.Cart()),
	})
}

func pathProductID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, CartHTTPResponse{
			Success: false,
			Message: "invalid product id",
		})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
