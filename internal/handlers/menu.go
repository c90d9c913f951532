package handlers

import (
	"net/http"

	"github.com/diewo77/cafe-pos/internal/httpx"
	"github.com/diewo77/cafe-pos/internal/services"
)

type MenuHandler struct {
	Catalog *services.CatalogService
}

func NewMenuHandler(catalog *services.CatalogService) *MenuHandler {
	return &MenuHandler{Catalog: catalog}
}

// List: GET /menu – available items only.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListAvailableItems()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}
