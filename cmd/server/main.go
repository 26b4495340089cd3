package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizza-orders-be/internal/auth"
	"pizza-orders-be/internal/config"
	"pizza-orders-be/internal/db"
	"pizza-orders-be/internal/events"
	"pizza-orders-be/internal/handler"
	"pizza-orders-be/internal/logger"
	"pizza-orders-be/internal/metrics"
	"pizza-orders-be/internal/middleware"
	"pizza-orders-be/internal/order"
	"pizza-orders-be/internal/preference"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	shutdownTimeout  = 10 * time.Second
	limiterSweepTime = time.Minute
)

var (
	initDBFunc      = db.NewDatabase
	startServerFunc = startServer
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

// app holds everything the router needs.
type app struct {
	orders     *handler.OrderHandler
	auth       *handler.AuthHandler
	sessions   middleware.SessionParser
	limiter    *middleware.RateLimiter
	metrics    *metrics.Metrics
	corsOrigin string
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func setupRouter(a *app) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler)
	mux.Handle("GET /metrics", a.metrics.Handler())

	public := func(pattern, route string, h http.HandlerFunc) {
		mux.Handle(pattern, a.metrics.Instrument(route, h))
	}
	api := func(pattern, route string, h http.HandlerFunc) {
		mux.Handle(pattern, a.metrics.Instrument(route, middleware.RequireSession(h)))
	}
	page := func(pattern, route string, h http.Handler) {
		mux.Handle(pattern, a.metrics.Instrument(route, middleware.SessionGate(h)))
	}

	public("POST /api/auth/login", "auth_login", a.auth.Login)
	public("POST /api/auth/logout", "auth_logout", a.auth.Logout)
	public("GET /api/auth/session", "auth_session", a.auth.Session)

	api("GET /api/orders", "orders_list", a.orders.ListOrders)
	api("GET /api/orders/stats", "orders_stats", a.orders.GetStats)
	api("GET /api/orders/{id}", "orders_get", a.orders.GetOrder)
	api("PATCH /api/orders/{id}/status", "orders_update_status", a.orders.UpdateStatus)
	api("PUT /api/orders/view/search", "view_search", a.orders.SetSearch)
	api("PUT /api/orders/view/filter", "view_filter", a.orders.SetFilter)
	api("PUT /api/orders/view/sort", "view_sort", a.orders.SetSort)
	api("POST /api/orders/view/reset", "view_reset", a.orders.ResetView)
	api("GET /api/dashboard", "dashboard", a.orders.GetDashboard)

	page("GET /{$}", "page_landing", http.HandlerFunc(a.orders.LandingPage))
	page("GET /login", "page_login", http.HandlerFunc(a.orders.LoginPage))
	page("GET /dashboard", "page_dashboard", http.HandlerFunc(a.orders.DashboardPage))
	page("GET /orders", "page_orders", http.HandlerFunc(a.orders.OrdersPage))
	page("/dashboard/", "page_unknown", http.NotFoundHandler())
	page("/orders/", "page_unknown", http.NotFoundHandler())

	var h http.Handler = mux
	h = a.limiter.Middleware(h)
	h = middleware.AuthMiddleware(a.sessions)(h)
	h = middleware.CORS(a.corsOrigin)(h)
	h = logger.LoggingMiddleware(h)
	h = logger.RequestIDMiddleware(h)
	return h
}

// newServer wires the order store and its collaborators. database may be
// nil, in which case preferences live in memory. The returned func releases
// the event publisher.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) (http.Handler, func(), error) {
	log := logger.L()

	var prefs order.PreferenceRepository
	if database != nil {
		prefs = preference.NewRepository(database)
	} else {
		log.Warn("no database configured, preferences are kept in memory")
		prefs = preference.NewMemoryRepository()
	}

	secret := cfg.JWTSecret
	if secret == "" {
		if cfg.IsProduction() {
			return nil, nil, auth.ErrMissingSecret
		}
		log.Warn("JWT_SECRET not set, using an ephemeral secret")
		secret = uuid.NewString()
	}
	tokens, err := auth.NewTokenManager(secret, auth.DefaultTokenTTL)
	if err != nil {
		return nil, nil, err
	}

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
	m := metrics.New()

	store := order.NewStore(ctx, order.SeedOrders(),
		order.WithPreferences(prefs),
		order.WithPublisher(publisher),
		order.WithRecorder(m),
	)

	limiter := middleware.NewRateLimiter()
	go limiter.Run(ctx, limiterSweepTime)

	a := &app{
		orders:     handler.NewOrderHandler(store),
		auth:       handler.NewAuthHandler(auth.NewAuthenticator(cfg.AdminEmail, cfg.AdminName, cfg.AdminPasswordHash), tokens, cfg.IsProduction()),
		sessions:   tokens,
		limiter:    limiter,
		metrics:    m,
		corsOrigin: cfg.CORSOrigin,
	}

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Warn("failed to close event publisher", zap.Error(err))
		}
	}
	return setupRouter(a), cleanup, nil
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	log := logger.L()

	var database *sql.DB
	if cfg.DatabaseEnabled() {
		var err error
		database, err = initDBFunc(ctx, cfg)
		if err != nil {
			log.Warn("preference database unavailable, continuing without it", zap.Error(err))
			database = nil
		} else {
			defer database.Close()
		}
	}

	h, cleanup, err := newServer(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := ":" + cfg.AppPort
	log.Info("server starting",
		zap.String("addr", addr),
		zap.String("env", cfg.AppEnv),
		zap.Bool("database", database != nil),
		zap.Int("kafka_brokers", len(cfg.KafkaBrokers)),
	)
	return startServerFunc(ctx, addr, h)
}

// startServer serves until ctx is done, then drains in-flight requests.
func startServer(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
