package httpadapter

import (
	"encoding/xml"
	"net/http"
	"time"

	"techstartups/internal/slug"
)

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// GET /sitemap.xml. Company entries are omitted when the store is down.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC().Format(time.RFC3339)
	set := urlset{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: s.opts.BaseURL, LastMod: now, ChangeFreq: "daily", Priority: 1},
			{Loc: s.opts.BaseURL + "/directory", LastMod: now, ChangeFreq: "daily", Priority: 0.9},
		},
	}

	companies, err := s.directory.Companies(r.Context())
	if err != nil {
		s.log.Warn("sitemap without companies", "error", err)
	}
	for _, c := range companies {
		u := sitemapURL{Loc: s.opts.BaseURL + "/company/" + slug.Make(c.Name), ChangeFreq: "daily", Priority: 0.8}
		if !c.LastUpdated.IsZero() {
			u.LastMod = c.LastUpdated.UTC().Format(time.RFC3339)
		}
		set.URLs = append(set.URLs, u)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		s.log.Error("encode sitemap", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", cacheControl)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}
