package order

import (
	"fmt"
	"slices"
	"strings"
)

// SortField names a sortable order column.
type SortField string

const (
	SortByID              SortField = "id"
	SortByCustomerName    SortField = "customerName"
	SortByCustomerEmail   SortField = "customerEmail"
	SortByDeliveryAddress SortField = "deliveryAddress"
	SortByPizzaType       SortField = "pizzaType"
	SortByQuantity        SortField = "quantity"
	SortByOrderDate       SortField = "orderDate"
	SortByPrice           SortField = "price"
	SortByStatus          SortField = "status"
)

type comparator func(a, b *Order) int

var comparators = map[SortField]comparator{
	SortByID:              textCompare(func(o *Order) string { return o.ID }),
	SortByCustomerName:    textCompare(func(o *Order) string { return o.CustomerName }),
	SortByCustomerEmail:   textCompare(func(o *Order) string { return o.CustomerEmail }),
	SortByDeliveryAddress: textCompare(func(o *Order) string { return o.DeliveryAddress }),
	SortByPizzaType:       textCompare(func(o *Order) string { return o.PizzaType }),
	SortByStatus:          textCompare(func(o *Order) string { return string(o.Status) }),
	SortByQuantity: func(a, b *Order) int {
		switch {
		case a.Quantity < b.Quantity:
			return -1
		case a.Quantity > b.Quantity:
			return 1
		}
		return 0
	},
	SortByOrderDate: func(a, b *Order) int {
		return a.OrderDate.Compare(b.OrderDate)
	},
	SortByPrice: func(a, b *Order) int {
		return a.Price.Cmp(b.Price)
	},
}

func textCompare(field func(*Order) string) comparator {
	return func(a, b *Order) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}

func (f SortField) Valid() bool {
	_, ok := comparators[f]
	return ok
}

func ParseSortField(s string) (SortField, error) {
	f := SortField(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
	return f, nil
}

func ParseSortDirection(s string) (SortDirection, error) {
	d := SortDirection(strings.ToLower(s))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortDirection, s)
	}
	return d, nil
}

// SortOrders returns a sorted copy of orders. Ties keep their input order.
// An invalid config leaves the order unchanged.
func SortOrders(orders []Order, cfg SortConfig) []Order {
	sorted := slices.Clone(orders)
	cmp, ok := comparators[cfg.Key]
	if !ok {
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b Order) int {
		c := cmp(&a, &b)
		if cfg.Direction == SortDesc {
			return -c
		}
		return c
	})
	return sorted
}
