package handler

import (
	"net/http"

	"pizza-orders-be/internal/auth"
	"pizza-orders-be/internal/order"
	"pizza-orders-be/internal/utils"
)

// Page routes answer with the data each screen needs. Redirects between
// them are handled by middleware.SessionGate.

type landingPage struct {
	Page      string `json:"page"`
	LoginPath string `json:"loginPath"`
}

type loginPage struct {
	Page   string `json:"page"`
	Action string `json:"action"`
}

type dashboardPage struct {
	Page      string            `json:"page"`
	User      *auth.User        `json:"user"`
	Dashboard dashboardResponse `json:"dashboard"`
}

type ordersPage struct {
	Page     string         `json:"page"`
	User     *auth.User     `json:"user"`
	Orders   ordersResponse `json:"orders"`
	Statuses []string       `json:"statuses"`
}

func (h *OrderHandler) LandingPage(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, landingPage{Page: "landing", LoginPath: "/login"})
}

func (h *OrderHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, loginPage{Page: "login", Action: "/api/auth/login"})
}

func (h *OrderHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())
	utils.WriteJSON(w, http.StatusOK, dashboardPage{
		Page:      "dashboard",
		User:      user,
		Dashboard: toDashboardResponse(h.store.Dashboard(h.now())),
	})
}

func (h *OrderHandler) OrdersPage(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())
	utils.WriteJSON(w, http.StatusOK, ordersPage{
		Page:     "orders",
		User:     user,
		Orders:   toOrdersResponse(h.store.Snapshot()),
		Statuses: statusOptions(),
	})
}

// statusOptions lists the values the status filter accepts.
func statusOptions() []string {
	out := []string{string(order.StatusAll)}
	for _, s := range order.Statuses {
		out = append(out, string(s))
	}
	return out
}
