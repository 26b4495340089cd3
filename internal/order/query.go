package order

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SearchOrders keeps orders whose customer name, pizza type or id contains
// query, ignoring case. An empty query keeps everything.
func SearchOrders(orders []Order, query string) []Order {
	if query == "" {
		return slices.Clone(orders)
	}

	q := strings.ToLower(query)
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.CustomerName), q) ||
			strings.Contains(strings.ToLower(o.PizzaType), q) ||
			strings.Contains(strings.ToLower(o.ID), q) {
			result = append(result, o)
		}
	}
	return result
}

// FilterOrders applies the status and date range filters.
func FilterOrders(orders []Order, cfg FilterConfig) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		if !cfg.Status.Matches(o.Status) {
			continue
		}
		if cfg.DateRange != nil && !cfg.DateRange.Contains(o.OrderDate) {
			continue
		}
		result = append(result, o)
	}
	return result
}

// Apply derives the visible orders: search, then filters, then sort.
func Apply(orders []Order, v View) []Order {
	visible := SearchOrders(orders, v.SearchQuery)
	visible = FilterOrders(visible, v.Filter)
	return SortOrders(visible, v.Sort)
}

func ComputeStats(orders []Order) Stats {
	stats := Stats{
		Total:        len(orders),
		TotalRevenue: decimal.Zero,
	}

	for _, o := range orders {
		switch o.Status {
		case StatusPending:
			stats.Pending++
		case StatusPreparing:
			stats.Preparing++
		case StatusOutForDelivery:
			stats.OutForDelivery++
		case StatusDelivered:
			stats.Delivered++
			stats.TotalRevenue = stats.TotalRevenue.Add(o.Price)
		case StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

// RecentOrders returns the n newest orders, newest first.
func RecentOrders(orders []Order, n int) []Order {
	sorted := SortOrders(orders, DefaultSortConfig())
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// CountOnDay counts orders placed on the same calendar day as day, in day's
// location.
func CountOnDay(orders []Order, day time.Time) int {
	y, m, d := day.Date()
	count := 0
	for _, o := range orders {
		oy, om, od := o.OrderDate.In(day.Location()).Date()
		if oy == y && om == m && od == d {
			count++
		}
	}
	return count
}
