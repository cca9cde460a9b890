// AngelaMos | 2026
// handler.go

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/viralboost/internal/core"
)

type Handler struct {
	catalog Catalog
}

func NewHandler(c Catalog) *Handler {
	return &Handler{catalog: c}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog", h.GetCatalog)
}

func (h *Handler) GetCatalog(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	core.OK(w, h.catalog)
}
