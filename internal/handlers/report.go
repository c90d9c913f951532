package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/cafe-pos/internal/httpx"
	"github.com/diewo77/cafe-pos/internal/services"
)

type ReportHandler struct {
	Reports *services.ReportingService
}

func NewReportHandler(reports *services.ReportingService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

// Daily: GET /reports/daily?date=YYYY-MM-DD (defaults to today).
func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_date", nil)
			return
		}
		day = parsed
	}
	rep, err := h.Reports.DailySalesReport(day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rep)
}

// Sales: GET /reports/sales?from=YYYY-MM-DD&to=YYYY-MM-DD – per-day
// breakdown over the range, days without orders omitted.
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	from, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("from"), time.Local)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_from", nil)
		return
	}
	to, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("to"), time.Local)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_to", nil)
		return
	}
	days, err := h.Reports.SalesByDay(from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if days == nil {
		days = []services.DailySales{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"days": days})
}

// CustomerHistory: GET /customers/orders?name=...
func (h *ReportHandler) CustomerHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Reports.CustomerHistory(r.URL.Query().Get("name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"orders": orders, "count": len(orders)})
}
