package httpadapter

import (
	"errors"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"techstartups/internal/badge"
	"techstartups/internal/domain"
)

// GET /api/badge?slug=<slug>&theme=<light|dark>
func (s *Server) handleBadge(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var slug, theme string
	if err := runtime.BindQueryParameter("form", true, true, "slug", query, &slug); err != nil || slug == "" {
		http.Error(w, "Missing slug parameter", http.StatusBadRequest)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "theme", query, &theme); err != nil {
		http.Error(w, "Invalid theme parameter", http.StatusBadRequest)
		return
	}

	svg, err := s.badges.SVG(r.Context(), slug, badge.ParseTheme(theme))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "Company not found", http.StatusNotFound)
		return
	case err != nil:
		s.log.Error("badge render failed", "slug", slug, "theme", theme, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "image/svg+xml")
	h.Set("Cache-Control", cacheControl)
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Cross-Origin-Resource-Policy", "cross-origin")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}
