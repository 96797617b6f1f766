package httpadapter

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"

	"techstartups/internal/badge"
	"techstartups/internal/markdown"
	"techstartups/internal/slug"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "directory", "company", "badge", "notfound"}

type views struct {
	pages map[string]*template.Template
}

var viewFuncs = template.FuncMap{
	"slug":     slug.Make,
	"favicon":  faviconURL,
	"domain":   registrableDomain,
	"date":     func(t time.Time) string { return t.Format("January 2, 2006") },
	"markdown": markdown.Render,
	"width":    func() int { return badge.Width },
	"height":   func() int { return badge.Height },
}

func parseViews() (*views, error) {
	v := &views{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(viewFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s view: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// pageData is what every page template receives.
type pageData struct {
	Title       string
	Description string
	DiscordURL  string
	BaseURL     string
	Body        any
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	data.DiscordURL = s.opts.DiscordURL
	data.BaseURL = s.opts.BaseURL
	var buf bytes.Buffer
	if err := s.views.pages[name].Execute(&buf, data); err != nil {
		s.log.Error("render page failed", "page", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status == http.StatusOK {
		w.Header().Set("Cache-Control", cacheControl)
	}
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// faviconURL points at Google's favicon service for the site's host.
func faviconURL(website string) string {
	u, err := url.Parse(website)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return "https://www.google.com/s2/favicons?domain=" + url.QueryEscape(u.Hostname()) + "&sz=128"
}

// registrableDomain shortens a website to its eTLD+1 for display.
func registrableDomain(website string) string {
	u, err := url.Parse(website)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return d
}
