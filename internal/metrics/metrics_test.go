package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pizza-orders-be/internal/order"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_StoreRecorder(t *testing.T) {
	m := New()

	m.ObserveStatusChange(order.StatusPending, order.StatusDelivered)
	m.ObserveStatusChange(order.StatusPending, order.StatusDelivered)
	m.ObserveViewChange("sort")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StatusChanges.WithLabelValues("Pending", "Delivered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ViewChanges.WithLabelValues("sort")))
}

func TestMetrics_Instrument(t *testing.T) {
	m := New()
	handler := m.Instrument("orders", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/orders/PZA999", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("orders", "404")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveViewChange("reset")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `pizza_orders_view_changes_total{operation="reset"} 1`)
}
