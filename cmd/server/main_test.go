package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pizza-orders-be/internal/auth"
	"pizza-orders-be/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	return &config.Config{
		AppPort:           "8080",
		AppEnv:            "test",
		JWTSecret:         "test-secret",
		AdminEmail:        "ops@pizza.test",
		AdminName:         "Ops",
		AdminPasswordHash: hash,
		KafkaOrderTopic:   "orders.status-changed",
		CORSOrigin:        "http://localhost:3000",
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router, cleanup, err := newServer(ctx, testConfig(t), nil)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return router
}

func do(router http.Handler, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()
	rr := do(router, http.MethodPost, "/api/auth/login", `{"email":"ops@pizza.test","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestSetupRouter(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Health Check", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "OK")
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("API requires session", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/api/orders", "")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "unauthenticated")
	})

	t.Run("Wrong password", func(t *testing.T) {
		rr := do(router, http.MethodPost, "/api/auth/login", `{"email":"ops@pizza.test","password":"nope"}`)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Signed-out page redirects to login", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/orders", "")

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})

	t.Run("Landing page without session", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"page":"landing"`)
	})

	t.Run("CORS preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSignedInFlow(t *testing.T) {
	router := newTestRouter(t)
	session := login(t, router)

	t.Run("Session", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/api/auth/session", "", session)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"authenticated":true`)
	})

	t.Run("Login page redirects to dashboard", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/login", "", session)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
	})

	t.Run("Root redirects to dashboard", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/", "", session)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
	})

	t.Run("Dashboard page", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/dashboard", "", session)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"page":"dashboard"`)
	})

	t.Run("Filter then update status", func(t *testing.T) {
		rr := do(router, http.MethodPut, "/api/orders/view/filter", `{"status":"Pending"}`, session)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"count":2`)

		rr = do(router, http.MethodPatch, "/api/orders/PZA004/status", `{"status":"Delivered"}`, session)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = do(router, http.MethodGet, "/api/orders", "", session)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"count":1`)
		assert.NotContains(t, rr.Body.String(), "PZA004")

		rr = do(router, http.MethodGet, "/api/orders/stats", "", session)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"formattedRevenue":"$63.97"`)
	})

	t.Run("Metrics reflect activity", func(t *testing.T) {
		rr := do(router, http.MethodGet, "/metrics", "")

		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "pizza_orders_status_changes_total")
		assert.True(t, strings.Contains(body, `route="orders_update_status"`))
	})

	t.Run("Logout", func(t *testing.T) {
		rr := do(router, http.MethodPost, "/api/auth/logout", "", session)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Set-Cookie"), auth.CookieName+"=;")
	})
}

func TestNewServer(t *testing.T) {
	t.Run("With database", func(t *testing.T) {
		database, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer database.Close()

		mock.ExpectQuery(`SELECT payload\s+FROM ui_preferences`).
			WithArgs("order-store").
			WillReturnError(sql.ErrNoRows)

		router, cleanup, err := newServer(context.Background(), testConfig(t), database)
		require.NoError(t, err)
		defer cleanup()

		rr := do(router, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Production requires a secret", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.AppEnv = "production"
		cfg.JWTSecret = ""

		_, _, err := newServer(context.Background(), cfg, nil)

		assert.ErrorIs(t, err, auth.ErrMissingSecret)
	})

	t.Run("Development falls back to an ephemeral secret", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.JWTSecret = ""

		router, cleanup, err := newServer(context.Background(), cfg, nil)
		require.NoError(t, err)
		defer cleanup()

		login(t, router)
	})
}

func TestRun(t *testing.T) {
	setEnv := func(t *testing.T) {
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("KAFKA_BROKERS", "")
	}

	t.Run("Success", func(t *testing.T) {
		origInitDB := initDBFunc
		defer func() { initDBFunc = origInitDB }()
		initDBFunc = func(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
			database, mock, err := sqlmock.New()
			if err != nil {
				return nil, err
			}
			mock.ExpectQuery(`SELECT payload\s+FROM ui_preferences`).WillReturnError(sql.ErrNoRows)
			mock.ExpectClose()
			return database, nil
		}

		origStartServer := startServerFunc
		defer func() { startServerFunc = origStartServer }()
		var gotAddr string
		startServerFunc = func(ctx context.Context, addr string, h http.Handler) error {
			gotAddr = addr
			return nil
		}

		setEnv(t)
		t.Setenv("DB_HOST", "localhost")

		assert.NoError(t, run(context.Background()))
		assert.Equal(t, ":8080", gotAddr)
	})

	t.Run("DBError", func(t *testing.T) {
		origInitDB := initDBFunc
		defer func() { initDBFunc = origInitDB }()
		initDBFunc = func(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
			return nil, errors.New("failed to ping DB")
		}

		origStartServer := startServerFunc
		defer func() { startServerFunc = origStartServer }()
		var served http.Handler
		startServerFunc = func(ctx context.Context, addr string, h http.Handler) error {
			served = h
			return nil
		}

		setEnv(t)
		t.Setenv("DB_HOST", "localhost")

		require.NoError(t, run(context.Background()))
		require.NotNil(t, served, "server should start with in-memory preferences")

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		served.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Without database", func(t *testing.T) {
		origStartServer := startServerFunc
		defer func() { startServerFunc = origStartServer }()
		startServerFunc = func(ctx context.Context, addr string, h http.Handler) error {
			return nil
		}

		setEnv(t)
		t.Setenv("DB_HOST", "")

		assert.NoError(t, run(context.Background()))
	})
}

func TestStartServer_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := startServer(ctx, "127.0.0.1:0", http.NotFoundHandler())

	assert.NoError(t, err)
}
