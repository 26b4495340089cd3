package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedDateLayout is the layout seed order dates are written in (UTC).
const SeedDateLayout = "2006-01-02 15:04"

type seedOrder struct {
	id, customer, pizza string
	quantity            int
	date                string
	status              OrderStatus
	price               string
	email, address      string
}

var seedOrders = []seedOrder{
	{"PZA001", "John Doe", "Margherita Supreme", 2, "2024-12-01 14:30", StatusDelivered, "24.99", "john.doe@email.com", "123 Main St, City"},
	{"PZA002", "Sarah Wilson", "Pepperoni Deluxe", 1, "2024-12-01 15:45", StatusOutForDelivery, "16.99", "sarah.wilson@email.com", "456 Oak Ave, Town"},
	{"PZA003", "Mike Johnson", "Veggie Supreme", 3, "2024-12-01 16:20", StatusPreparing, "45.97", "mike.j@email.com", "789 Pine Rd, Village"},
	{"PZA004", "Emily Chen", "BBQ Chicken", 1, "2024-12-01 17:10", StatusPending, "18.99", "emily.chen@email.com", "321 Elm St, District"},
	{"PZA005", "David Brown", "Hawaiian Paradise", 2, "2024-12-01 18:00", StatusCancelled, "33.98", "david.brown@email.com", "654 Maple Dr, Area"},
	{"PZA006", "Lisa Garcia", "Meat Lovers", 1, "2024-12-01 19:15", StatusPreparing, "21.99", "lisa.garcia@email.com", "987 Cedar Ln, Zone"},
	{"PZA007", "Tom Anderson", "Four Cheese", 2, "2024-12-01 20:30", StatusOutForDelivery, "37.98", "tom.anderson@email.com", "147 Birch Way, Sector"},
	{"PZA008", "Rachel Martinez", "Spicy Italian", 1, "2024-12-01 21:45", StatusDelivered, "19.99", "rachel.m@email.com", "258 Spruce Ave, Quarter"},
	{"PZA009", "Alex Thompson", "Mediterranean", 3, "2024-12-02 12:20", StatusPending, "56.97", "alex.thompson@email.com", "369 Willow St, Region"},
	{"PZA010", "Jessica Lee", "Buffalo Chicken", 1, "2024-12-02 13:40", StatusPreparing, "17.99", "jessica.lee@email.com", "741 Ash Blvd, Territory"},
}

// SeedOrders returns a fresh copy of the reference order dataset.
func SeedOrders() []Order {
	orders := make([]Order, 0, len(seedOrders))
	for _, s := range seedOrders {
		orders = append(orders, Order{
			ID:              s.id,
			CustomerName:    s.customer,
			CustomerEmail:   s.email,
			DeliveryAddress: s.address,
			PizzaType:       s.pizza,
			Quantity:        s.quantity,
			OrderDate:       mustParseSeedDate(s.date),
			Price:           decimal.RequireFromString(s.price),
			Status:          s.status,
		})
	}
	return orders
}

func mustParseSeedDate(s string) time.Time {
	t, err := time.ParseInLocation(SeedDateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}
