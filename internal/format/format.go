// Package format renders order values the way the dashboard displays them.
package format

import (
	"math"
	"strings"
	"time"

	"pizza-orders-be/internal/order"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DateLayout = "Jan 2, 2006, 03:04 PM"

var printer = message.NewPrinter(language.AmericanEnglish)

var maxGrouped = decimal.NewFromInt(math.MaxInt64)

// Currency formats amount as US dollars with grouping, e.g. $1,234.50. The
// digits come from the decimal itself, never a float.
func Currency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	abs := rounded.Abs()

	whole, cents, _ := strings.Cut(abs.StringFixed(2), ".")
	if abs.LessThan(maxGrouped) {
		whole = printer.Sprintf("%d", abs.IntPart())
	}

	s := "$" + whole + "." + cents
	if rounded.IsNegative() {
		return "-" + s
	}
	return s
}

func Date(t time.Time) string {
	return t.Format(DateLayout)
}

var statusColors = map[order.OrderStatus]string{
	order.StatusPending:        "bg-yellow-100 text-yellow-800 border-yellow-200",
	order.StatusPreparing:      "bg-blue-100 text-blue-800 border-blue-200",
	order.StatusOutForDelivery: "bg-purple-100 text-purple-800 border-purple-200",
	order.StatusDelivered:      "bg-green-100 text-green-800 border-green-200",
	order.StatusCancelled:      "bg-red-100 text-red-800 border-red-200",
}

const defaultStatusColor = "bg-gray-100 text-gray-800 border-gray-200"

// StatusColor returns the badge classes for a status.
func StatusColor(s order.OrderStatus) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return defaultStatusColor
}
