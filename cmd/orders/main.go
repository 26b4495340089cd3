package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pizza-orders-be/internal/config"
	"pizza-orders-be/internal/db"
	"pizza-orders-be/internal/format"
	"pizza-orders-be/internal/logger"
	"pizza-orders-be/internal/order"
	"pizza-orders-be/internal/preference"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// statusUpdate is one -set-status ID=STATUS argument.
type statusUpdate struct {
	id     string
	status order.OrderStatus
}

type options struct {
	search    string
	status    string
	sortKey   string
	sortDir   string
	from, to  string
	reset     bool
	persist   bool
	updates   []statusUpdate
	setSearch bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.search, "search", "", "match customer name, pizza type or order id")
	fs.StringVar(&opts.status, "status", "", "status filter: all, Pending, Preparing, Out for Delivery, Delivered, Cancelled")
	fs.StringVar(&opts.sortKey, "sort", "", "sort column, e.g. orderDate, price, customerName")
	fs.StringVar(&opts.sortDir, "dir", "", "sort direction: asc or desc (default toggles like a header click)")
	fs.StringVar(&opts.from, "from", "", "start of the order date range (inclusive)")
	fs.StringVar(&opts.to, "to", "", "end of the order date range (inclusive)")
	fs.BoolVar(&opts.reset, "reset", false, "reset search, filter and sort before applying other flags")
	fs.BoolVar(&opts.persist, "persist", false, "load and save sort and filter preferences in the database")
	fs.Func("set-status", "update an order before listing, as ID=STATUS (repeatable)", func(v string) error {
		id, raw, ok := strings.Cut(v, "=")
		if !ok || id == "" {
			return fmt.Errorf("expected ID=STATUS, got %q", v)
		}
		status, err := order.ParseStatus(raw)
		if err != nil {
			return err
		}
		opts.updates = append(opts.updates, statusUpdate{id: id, status: status})
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "search" {
			opts.setSearch = true
		}
	})

	if (opts.from == "") != (opts.to == "") {
		return nil, errors.New("-from and -to must be given together")
	}
	return opts, nil
}

var openDBFunc = db.NewDatabase

// openPreferences connects the preference repository for -persist. An
// unreachable or unconfigured database only disables persistence.
func openPreferences(ctx context.Context, persist bool) (order.PreferenceRepository, func()) {
	if !persist {
		return nil, func() {}
	}

	log := logger.L()
	cfg := config.LoadConfig()
	if !cfg.DatabaseEnabled() {
		log.Warn("-persist needs DB_HOST to be set, preferences will not be saved")
		return nil, func() {}
	}
	database, err := openDBFunc(ctx, cfg)
	if err != nil {
		log.Warn("preference database unavailable, preferences will not be saved", zap.Error(err))
		return nil, func() {}
	}
	return preference.NewRepository(database), func() { database.Close() }
}

// applyOptions runs the requested mutations in the order a user would make
// them on the dashboard: status edits, reset, search, filter, sort.
func applyOptions(ctx context.Context, store *order.Store, opts *options) error {
	for _, u := range opts.updates {
		if err := store.UpdateOrderStatus(ctx, u.id, u.status); err != nil {
			return err
		}
	}

	if opts.reset {
		store.ResetFilters(ctx)
	}

	if opts.setSearch {
		store.SetSearchQuery(ctx, opts.search)
	}

	if opts.status != "" || opts.from != "" {
		filter := store.View().Filter
		if opts.status != "" {
			status, err := order.ParseStatusFilter(opts.status)
			if err != nil {
				return err
			}
			filter.Status = status
		}
		if opts.from != "" {
			r, err := order.ParseDateRange(opts.from, opts.to)
			if err != nil {
				return err
			}
			filter.DateRange = r
		}
		if err := store.SetFilterConfig(ctx, filter); err != nil {
			return err
		}
	}

	if opts.sortKey != "" {
		key, err := order.ParseSortField(opts.sortKey)
		if err != nil {
			return err
		}
		cfg := store.View().Sort.NextSort(key)
		if opts.sortDir != "" {
			dir, err := order.ParseSortDirection(opts.sortDir)
			if err != nil {
				return err
			}
			cfg.Direction = dir
		}
		if err := store.SetSortConfig(ctx, cfg); err != nil {
			return err
		}
	}
	return nil
}

func render(out io.Writer, snap order.Snapshot, stats order.Stats) error {
	table := tablewriter.NewWriter(out)
	table.Header("Order ID", "Customer", "Pizza", "Qty", "Order Date", "Price", "Status")

	for _, o := range snap.Orders {
		row := []string{
			o.ID,
			o.CustomerName,
			o.PizzaType,
			strconv.Itoa(o.Quantity),
			format.Date(o.OrderDate),
			format.Currency(o.Price),
			string(o.Status),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	v := snap.View
	fmt.Fprintf(out, "\nShowing %d of %d orders (sort: %s %s, status: %s",
		len(snap.Orders), stats.Total, v.Sort.Key, v.Sort.Direction, v.Filter.Status)
	if v.SearchQuery != "" {
		fmt.Fprintf(out, ", search: %q", v.SearchQuery)
	}
	if r := v.Filter.DateRange; r != nil {
		fmt.Fprintf(out, ", from %s to %s", format.Date(r.Start), format.Date(r.End))
	}
	fmt.Fprintln(out, ")")
	if len(snap.Orders) == 0 && snap.FiltersApplied {
		fmt.Fprintln(out, "No orders match the current search and filters.")
	}

	fmt.Fprintf(out, "Pending: %d  Preparing: %d  Out for Delivery: %d  Delivered: %d  Cancelled: %d\n",
		stats.Pending, stats.Preparing, stats.OutForDelivery, stats.Delivered, stats.Cancelled)
	fmt.Fprintf(out, "Revenue (delivered): %s\n", format.Currency(stats.TotalRevenue))
	return nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	prefs, closePrefs := openPreferences(ctx, opts.persist)
	defer closePrefs()

	var storeOpts []order.Option
	if prefs != nil {
		storeOpts = append(storeOpts, order.WithPreferences(prefs))
	}
	store := order.NewStore(ctx, order.SeedOrders(), storeOpts...)

	if err := applyOptions(ctx, store, opts); err != nil {
		return err
	}

	logger.L().Debug("rendering orders", zap.Int("visible", len(store.VisibleOrders())))
	return render(out, store.Snapshot(), store.Stats())
}
