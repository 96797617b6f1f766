package httpadapter

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"techstartups/internal/domain"
	"techstartups/internal/ports"
)

type homeView struct {
	Companies   int
	Subscribers int
	Trending    []domain.RankedCompany
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	var v homeView
	ranked, err := s.directory.Leaderboard(r.Context())
	if err != nil {
		s.log.Warn("leaderboard unavailable, rendering empty home", "error", err)
	}
	v.Companies = len(ranked)
	for _, c := range ranked {
		v.Subscribers += c.SubscriberCount
	}
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	v.Trending = ranked
	s.render(w, http.StatusOK, "home", pageData{
		Title:       "Tech Startups",
		Description: "A Discord community where founders build in public.",
		Body:        v,
	})
}

type directoryView struct {
	Query     string
	Sort      ports.SortOrder
	Companies []domain.RankedCompany
}

// GET /directory?q=<search>&sort=<rank|name>
func (s *Server) handleDirectory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var q ports.ListingQuery
	var sort string
	_ = runtime.BindQueryParameter("form", true, false, "q", query, &q.Search)
	_ = runtime.BindQueryParameter("form", true, false, "sort", query, &sort)
	q.Sort = ports.SortByRank
	if ports.SortOrder(sort) == ports.SortByName {
		q.Sort = ports.SortByName
	}

	companies, err := s.directory.Listing(r.Context(), q)
	if err != nil {
		s.log.Warn("directory unavailable, rendering empty list", "error", err)
		companies = nil
	}
	s.render(w, http.StatusOK, "directory", pageData{
		Title:       "Company Directory - Tech Startups",
		Description: "Browse our community of tech companies and startups",
		Body:        directoryView{Query: q.Search, Sort: q.Sort, Companies: companies},
	})
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p, err := s.directory.Profile(r.Context(), slug)
	if err != nil {
		s.lookupFailed(w, r, "company page", slug, err)
		return
	}
	s.render(w, http.StatusOK, "company", pageData{
		Title:       p.Company.Name + " - Tech Startups",
		Description: p.Company.Description,
		Body:        p,
	})
}

func (s *Server) handleBadgePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p, err := s.badges.Preview(r.Context(), slug)
	if err != nil {
		s.lookupFailed(w, r, "badge page", slug, err)
		return
	}
	s.render(w, http.StatusOK, "badge", pageData{
		Title:       p.Company.Name + " Badges - Tech Startups",
		Description: "Embeddable badges for " + p.Company.Name + " on Tech Startups",
		Body:        p,
	})
}

// lookupFailed serves the not-found page for both misses and upstream
// failures; only the latter is logged as an error.
func (s *Server) lookupFailed(w http.ResponseWriter, r *http.Request, page, slug string, err error) {
	if !errors.Is(err, domain.ErrNotFound) {
		s.log.Error("page lookup failed", "page", page, "slug", slug, "error", err)
	}
	s.handleNotFound(w, r)
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusNotFound, "notfound", pageData{Title: "Not Found - Tech Startups"})
}
