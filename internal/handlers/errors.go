package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/cafe-pos/internal/httpx"
	"github.com/diewo77/cafe-pos/internal/services"
)

// writeServiceError maps service failure kinds onto HTTP statuses.
// Anything unrecognized is a storage failure.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyOrder):
		httpx.JSONError(w, http.StatusBadRequest, "empty_order", nil)
	case errors.Is(err, services.ErrInvalidInput):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, services.ErrItemNotFound):
		httpx.JSONError(w, http.StatusBadRequest, "item_not_found", err.Error())
	case errors.Is(err, services.ErrOrderNotFound):
		httpx.JSONError(w, http.StatusNotFound, "order_not_found", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "storage_unavailable", nil)
	}
}
