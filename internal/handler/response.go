package handler

import (
	"errors"
	"net/http"

	"pizza-orders-be/internal/format"
	"pizza-orders-be/internal/logger"
	"pizza-orders-be/internal/order"
	"pizza-orders-be/internal/utils"

	"go.uber.org/zap"
)

type orderDisplay struct {
	Price       string `json:"price"`
	OrderDate   string `json:"orderDate"`
	StatusColor string `json:"statusColor"`
}

// orderResponse is an order plus the strings the dashboard renders for it.
type orderResponse struct {
	order.Order
	Display orderDisplay `json:"display"`
}

func toOrderResponse(o order.Order) orderResponse {
	return orderResponse{
		Order: o,
		Display: orderDisplay{
			Price:       format.Currency(o.Price),
			OrderDate:   format.Date(o.OrderDate),
			StatusColor: format.StatusColor(o.Status),
		},
	}
}

func toOrderResponses(orders []order.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

type ordersResponse struct {
	Orders         []orderResponse `json:"orders"`
	Count          int             `json:"count"`
	View           order.View      `json:"view"`
	FiltersApplied bool            `json:"filtersApplied"`
}

func toOrdersResponse(s order.Snapshot) ordersResponse {
	return ordersResponse{
		Orders:         toOrderResponses(s.Orders),
		Count:          len(s.Orders),
		View:           s.View,
		FiltersApplied: s.FiltersApplied,
	}
}

type statsResponse struct {
	order.Stats
	FormattedRevenue string `json:"formattedRevenue"`
}

func toStatsResponse(s order.Stats) statsResponse {
	return statsResponse{Stats: s, FormattedRevenue: format.Currency(s.TotalRevenue)}
}

type dashboardResponse struct {
	Stats        statsResponse   `json:"stats"`
	TodayOrders  int             `json:"todayOrders"`
	RecentOrders []orderResponse `json:"recentOrders"`
}

func toDashboardResponse(d order.Dashboard) dashboardResponse {
	return dashboardResponse{
		Stats:        toStatsResponse(d.Stats),
		TodayOrders:  d.TodayOrders,
		RecentOrders: toOrderResponses(d.RecentOrders),
	}
}

// writeStoreError maps store errors onto status codes.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, order.ErrValidation):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, order.ErrOrderNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	default:
		logger.For(r.Context(), "handler", "writeStoreError").Error("unexpected store error",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
