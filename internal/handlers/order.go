package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/diewo77/cafe-pos/internal/httpx"
	"github.com/diewo77/cafe-pos/internal/services"
)

type OrderHandler struct {
	Billing *services.BillingService
}

func NewOrderHandler(billing *services.BillingService) *OrderHandler {
	return &OrderHandler{Billing: billing}
}

// Create: POST /orders – JSON body with customer, table, payment method
// and item requests. Prices are resolved server-side; any the caller
// sends are ignored by decoding into OrderLineRequest.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	order, err := h.Billing.CreateOrder(in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

// Get: GET /orders?id=...
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	order, err := h.Billing.GetOrder(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// Bill: GET /orders/bill?id=... – the printable text bill.
func (h *OrderHandler) Bill(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	order, err := h.Billing.GetOrder(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	bill, err := h.Billing.RenderBill(order)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "render_failed", nil)
		return
	}
	httpx.Text(w, http.StatusOK, bill)
}

func orderID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return 0, false
	}
	return uint(id), true
}
