package handler

import (
	"context"
	"net/http"
	"time"

	"pizza-orders-be/internal/logger"
	"pizza-orders-be/internal/order"
	"pizza-orders-be/internal/utils"

	"go.uber.org/zap"
)

// OrderStore is the part of *order.Store the HTTP layer needs.
type OrderStore interface {
	Snapshot() order.Snapshot
	Order(orderID string) (order.Order, error)
	Stats() order.Stats
	Dashboard(now time.Time) order.Dashboard
	SetSearchQuery(ctx context.Context, query string)
	SetFilterConfig(ctx context.Context, cfg order.FilterConfig) error
	SetSortConfig(ctx context.Context, cfg order.SortConfig) error
	ResetFilters(ctx context.Context)
	UpdateOrderStatus(ctx context.Context, orderID string, status order.OrderStatus) error
}

var _ OrderStore = (*order.Store)(nil)

type OrderHandler struct {
	store OrderStore
	now   func() time.Time
}

func NewOrderHandler(store OrderStore) *OrderHandler {
	return &OrderHandler{store: store, now: time.Now}
}

type statusRequest struct {
	Status string `json:"status"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type dateRangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type filterRequest struct {
	Status    string            `json:"status"`
	DateRange *dateRangeRequest `json:"dateRange"`
}

// sortRequest with an empty direction behaves like a column header click.
type sortRequest struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

func (req filterRequest) toFilterConfig() (order.FilterConfig, error) {
	status, err := order.ParseStatusFilter(req.Status)
	if err != nil {
		return order.FilterConfig{}, err
	}

	cfg := order.FilterConfig{Status: status}
	if req.DateRange == nil {
		return cfg, nil
	}

	r, err := order.ParseDateRange(req.DateRange.Start, req.DateRange.End)
	if err != nil {
		return order.FilterConfig{}, err
	}
	cfg.DateRange = r
	return cfg, nil
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, toOrdersResponse(h.store.Snapshot()))
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.store.Order(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, toStatsResponse(h.store.Stats()))
}

func (h *OrderHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, toDashboardResponse(h.store.Dashboard(h.now())))
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	log := logger.For(r.Context(), "handler", "UpdateStatus").With(
		zap.String("order_id", orderID),
	)

	var req statusRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", zap.Error(err))
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	if err := h.store.UpdateOrderStatus(r.Context(), orderID, status); err != nil {
		writeStoreError(w, r, err)
		return
	}

	o, err := h.store.Order(orderID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	h.store.SetSearchQuery(r.Context(), req.Query)
	utils.WriteJSON(w, http.StatusOK, toOrdersResponse(h.store.Snapshot()))
}

func (h *OrderHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	cfg, err := req.toFilterConfig()
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if err := h.store.SetFilterConfig(r.Context(), cfg); err != nil {
		writeStoreError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toOrdersResponse(h.store.Snapshot()))
}

func (h *OrderHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	key, err := order.ParseSortField(req.Key)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	var cfg order.SortConfig
	if req.Direction == "" {
		cfg = h.store.Snapshot().View.Sort.NextSort(key)
	} else {
		dir, err := order.ParseSortDirection(req.Direction)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		cfg = order.SortConfig{Key: key, Direction: dir}
	}

	if err := h.store.SetSortConfig(r.Context(), cfg); err != nil {
		writeStoreError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toOrdersResponse(h.store.Snapshot()))
}

func (h *OrderHandler) ResetView(w http.ResponseWriter, r *http.Request) {
	h.store.ResetFilters(r.Context())
	utils.WriteJSON(w, http.StatusOK, toOrdersResponse(h.store.Snapshot()))
}
