package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// Statuses lists every order status in fulfillment order.
var Statuses = []OrderStatus{
	StatusPending,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func ParseStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

type Order struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail,omitempty"`
	DeliveryAddress string          `json:"deliveryAddress,omitempty"`
	PizzaType       string          `json:"pizzaType"`
	Quantity        int             `json:"quantity"`
	OrderDate       time.Time       `json:"orderDate"`
	Price           decimal.Decimal `json:"price"`
	Status          OrderStatus     `json:"status"`
}

// StatusFilter is either StatusAll or one concrete OrderStatus.
type StatusFilter string

const StatusAll StatusFilter = "all"

func (f StatusFilter) Valid() bool {
	return f == StatusAll || OrderStatus(f).Valid()
}

func (f StatusFilter) Matches(s OrderStatus) bool {
	return f == StatusAll || OrderStatus(f) == s
}

func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" {
		return StatusAll, nil
	}
	f := StatusFilter(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return f, nil
}

// DateRange bounds are inclusive.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	SeedDateLayout,
	"2006-01-02",
}

// ParseDate accepts RFC 3339 and a few shorter layouts, read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse date %q", ErrInvalidDateRange, s)
}

func ParseDateRange(start, end string) (*DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	return &DateRange{Start: s, End: e}, nil
}

type FilterConfig struct {
	Status    StatusFilter `json:"status"`
	DateRange *DateRange   `json:"dateRange,omitempty"`
}

func DefaultFilterConfig() FilterConfig {
	return FilterConfig{Status: StatusAll}
}

func (c FilterConfig) Validate() error {
	if !c.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, c.Status)
	}
	if c.DateRange != nil && c.DateRange.Start.After(c.DateRange.End) {
		return fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidDateRange,
			c.DateRange.Start.Format(time.RFC3339),
			c.DateRange.End.Format(time.RFC3339),
		)
	}
	return nil
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// Toggle flips the direction, the way a column header click does.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

type SortConfig struct {
	Key       SortField     `json:"key"`
	Direction SortDirection `json:"direction"`
}

func DefaultSortConfig() SortConfig {
	return SortConfig{Key: SortByOrderDate, Direction: SortDesc}
}

func (c SortConfig) Validate() error {
	if !c.Key.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSortKey, c.Key)
	}
	if !c.Direction.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSortDirection, c.Direction)
	}
	return nil
}

// NextSort returns the config a header click on key produces: ascending on a
// new column, toggled when the column is already the active ascending key.
func (c SortConfig) NextSort(key SortField) SortConfig {
	if c.Key == key && c.Direction == SortAsc {
		return SortConfig{Key: key, Direction: SortDesc}
	}
	return SortConfig{Key: key, Direction: SortAsc}
}

// View holds the parameters the visible orders are derived from.
type View struct {
	SearchQuery string       `json:"searchQuery"`
	Filter      FilterConfig `json:"filterConfig"`
	Sort        SortConfig   `json:"sortConfig"`
}

func DefaultView() View {
	return View{
		Filter: DefaultFilterConfig(),
		Sort:   DefaultSortConfig(),
	}
}

// Preferences is the part of the view that survives restarts.
type Preferences struct {
	Sort   SortConfig   `json:"sortConfig"`
	Filter FilterConfig `json:"filterConfig"`
}

func (p Preferences) Validate() error {
	if err := p.Sort.Validate(); err != nil {
		return err
	}
	return p.Filter.Validate()
}

type Stats struct {
	Total          int             `json:"total"`
	Pending        int             `json:"pending"`
	Preparing      int             `json:"preparing"`
	OutForDelivery int             `json:"outForDelivery"`
	Delivered      int             `json:"delivered"`
	Cancelled      int             `json:"cancelled"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
}

// Count returns the number of orders in the given status.
func (s Stats) Count(status OrderStatus) int {
	switch status {
	case StatusPending:
		return s.Pending
	case StatusPreparing:
		return s.Preparing
	case StatusOutForDelivery:
		return s.OutForDelivery
	case StatusDelivered:
		return s.Delivered
	case StatusCancelled:
		return s.Cancelled
	}
	return 0
}

type Dashboard struct {
	Stats        Stats   `json:"stats"`
	TodayOrders  int     `json:"todayOrders"`
	RecentOrders []Order `json:"recentOrders"`
}
