package server

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/cafe-pos/internal/config"
	"github.com/diewo77/cafe-pos/internal/handlers"
	"github.com/diewo77/cafe-pos/internal/httpx"
	"github.com/diewo77/cafe-pos/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Lightweight DB check (SELECT 1) – detailed errors stay out of the body
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Menu endpoint (read-only catalog)
	mh := handlers.NewMenuHandler(services.NewCatalogService(db))
	mux.HandleFunc("/menu", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, "GET")
			return
		}
		mh.List(w, r)
	})

	// Order endpoints
	billing := services.NewBillingService(db, cfg.CafeName, cfg.CGSTRate, cfg.SGSTRate)
	oh := handlers.NewOrderHandler(billing)
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			oh.Get(w, r)
		case http.MethodPost:
			oh.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})
	mux.HandleFunc("/orders/bill", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, "GET")
			return
		}
		oh.Bill(w, r)
	})

	// Reporting endpoints
	rh := handlers.NewReportHandler(services.NewReportingService(db))
	mux.HandleFunc("/reports/daily", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, "GET")
			return
		}
		rh.Daily(w, r)
	})
	mux.HandleFunc("/reports/sales", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, "GET")
			return
		}
		rh.Sales(w, r)
	})
	mux.HandleFunc("/customers/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, "GET")
			return
		}
		rh.CustomerHistory(w, r)
	})

	// Root placeholder
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, werr := w.Write([]byte("Cafe POS API")); werr != nil {
			_ = werr
		}
	})

	return withRecover(withLogging(mux))
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}

// Simple middleware logging & recovery kept private to this package to avoid duplication.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
