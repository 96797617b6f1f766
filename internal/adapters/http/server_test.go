package httpadapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"techstartups/internal/badge"
	"techstartups/internal/domain"
	"techstartups/internal/services/badges"
	"techstartups/internal/services/directory"
)

type fakeStore struct {
	companies []domain.Company
	counts    domain.SubscriberCounts
	updates   []domain.Update
	err       error
}

func (f *fakeStore) Companies(context.Context) ([]domain.Company, error) { return f.companies, f.err }
func (f *fakeStore) SubscriberCounts(context.Context) (domain.SubscriberCounts, error) {
	return f.counts, f.err
}
func (f *fakeStore) RecentUpdates(context.Context, domain.ChannelID, int) ([]domain.Update, error) {
	return f.updates, f.err
}
func (f *fakeStore) Ping(context.Context) error { return f.err }

var testAssets = fstest.MapFS{
	"logo-white.svg": {Data: []byte("<svg/>")},
	"logo-tp.png":    {Data: []byte("\x89PNG")},
}

func fixture() *fakeStore {
	return &fakeStore{
		companies: []domain.Company{
			{ChannelID: 10, Name: "Leader", WebsiteURL: "https://leader.example", LastUpdated: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
			{ChannelID: 20, Name: "Acme", Description: "Rockets <b>and</b> anvils", WebsiteURL: "https://www.acme.co.uk"},
			{ChannelID: 30, Name: "Third"},
			{ChannelID: 40, Name: "Fourth Co", WebsiteURL: "https://fourth.example"},
		},
		counts: domain.SubscriberCounts{10: 30, 20: 20, 30: 10, 40: 5},
		updates: []domain.Update{{
			Content:     "We **shipped** v2",
			CreatedAt:   time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC),
			Author:      domain.Author{DisplayName: "Ada"},
			Attachments: []domain.Attachment{{Filename: "shot.png", URL: "https://cdn.example/shot.png", ContentType: "image/png"}},
		}},
	}
}

func newTestServer(t *testing.T, store *fakeStore, assets fstest.MapFS) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := directory.New(store, log)
	b := badges.New(dir, badge.NewRenderer(assets), "https://techstartups.gg")
	srv, err := New(dir, b, store, Options{
		BaseURL:    "https://techstartups.gg",
		DiscordURL: "https://discord.gg/test",
		Assets:     assets,
		Logger:     log,
	})
	if err != nil {
		t.Fatal(err)
	}
	return srv.Routes()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestBadgeEndpoint(t *testing.T) {
	h := newTestServer(t, fixture(), testAssets)

	rec := get(t, h, "/api/badge?slug=acme&theme=light")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	hdr := rec.Header()
	if hdr.Get("Content-Type") != "image/svg+xml" {
		t.Errorf("Content-Type = %q", hdr.Get("Content-Type"))
	}
	if hdr.Get("Cache-Control") != "public, max-age=3600, s-maxage=3600" {
		t.Errorf("Cache-Control = %q", hdr.Get("Cache-Control"))
	}
	if hdr.Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", hdr.Get("Access-Control-Allow-Origin"))
	}
	body := rec.Body.String()
	if !strings.Contains(body, "#2 Trending Startup") || !strings.Contains(body, `fill="#ffffff"`) {
		t.Errorf("unexpected badge:\n%s", body)
	}
}

func TestBadgeEndpointDefaultsToDark(t *testing.T) {
	rec := get(t, newTestServer(t, fixture(), testAssets), "/api/badge?slug=fourth-co")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `fill="#1a1a1a"`) || !strings.Contains(body, "FEATURED ON") || !strings.Contains(body, ">5</text>") {
		t.Errorf("unexpected badge:\n%s", body)
	}
}

func TestBadgeEndpointErrors(t *testing.T) {
	cases := []struct {
		name   string
		store  *fakeStore
		assets fstest.MapFS
		target string
		want   int
	}{
		{"missing slug", fixture(), testAssets, "/api/badge", http.StatusBadRequest},
		{"empty slug", fixture(), testAssets, "/api/badge?slug=", http.StatusBadRequest},
		{"unknown slug", fixture(), testAssets, "/api/badge?slug=doesnotexist", http.StatusNotFound},
		{"missing logo", fixture(), fstest.MapFS{}, "/api/badge?slug=fourth-co", http.StatusInternalServerError},
		{"store down", &fakeStore{err: errors.New("db down")}, testAssets, "/api/badge?slug=acme", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, newTestServer(t, tc.store, tc.assets), tc.target)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (body %q)", rec.Code, tc.want, rec.Body)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
				t.Errorf("error Content-Type = %q", ct)
			}
		})
	}
}

func TestDirectoryPage(t *testing.T) {
	rec := get(t, newTestServer(t, fixture(), testAssets), "/directory?sort=name")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "Third") {
		t.Error("company without website must not be listed")
	}
	acme, fourth := strings.Index(body, "Acme"), strings.Index(body, "Fourth Co")
	if acme < 0 || fourth < 0 || acme > fourth {
		t.Errorf("expected Acme before Fourth Co when sorted by name")
	}
	if !strings.Contains(body, "acme.co.uk") || !strings.Contains(body, "Rockets &lt;b&gt;and&lt;/b&gt; anvils") {
		t.Error("expected registrable domain and escaped description")
	}
}

func TestDirectoryPageDegrades(t *testing.T) {
	rec := get(t, newTestServer(t, &fakeStore{err: errors.New("db down")}, testAssets), "/directory")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "No companies found") {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
}

func TestCompanyPage(t *testing.T) {
	h := newTestServer(t, fixture(), testAssets)
	rec := get(t, h, "/company/acme")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<strong>shipped</strong>", "May 4, 2025", "#2", "https://cdn.example/shot.png", "/company/acme/badge"} {
		if !strings.Contains(body, want) {
			t.Errorf("company page missing %q", want)
		}
	}
	if rec := get(t, h, "/company/nobody"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown company status = %d", rec.Code)
	}
}

func TestBadgePreviewPage(t *testing.T) {
	rec := get(t, newTestServer(t, fixture(), testAssets), "/company/leader/badge")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "#1 Trending Startup Badge") || !strings.Contains(body, `width=&#34;280&#34; height=&#34;60&#34;`) {
		t.Errorf("unexpected preview page:\n%s", body)
	}
}

func TestSitemap(t *testing.T) {
	h := newTestServer(t, fixture(), testAssets)
	body := get(t, h, "/sitemap.xml").Body.String()
	for _, want := range []string{"<loc>https://techstartups.gg</loc>", "<loc>https://techstartups.gg/directory</loc>", "<loc>https://techstartups.gg/company/third</loc>", "<lastmod>2025-03-01T00:00:00Z</lastmod>"} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}

	body = get(t, newTestServer(t, &fakeStore{err: errors.New("down")}, testAssets), "/sitemap.xml").Body.String()
	if strings.Count(body, "<url>") != 2 {
		t.Errorf("degraded sitemap should hold only static entries:\n%s", body)
	}
}

func TestHealth(t *testing.T) {
	if rec := get(t, newTestServer(t, fixture(), testAssets), "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("healthy status = %d", rec.Code)
	}
	if rec := get(t, newTestServer(t, &fakeStore{err: errors.New("down")}, testAssets), "/healthz"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy status = %d", rec.Code)
	}
}

func TestHomeAndStatic(t *testing.T) {
	h := newTestServer(t, fixture(), testAssets)
	rec := get(t, h, "/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Leader") || !strings.Contains(rec.Body.String(), "https://discord.gg/test") {
		t.Fatalf("home status = %d", rec.Code)
	}
	if rec := get(t, h, "/static/logo-white.svg"); rec.Code != http.StatusOK {
		t.Errorf("static status = %d", rec.Code)
	}
	if rec := get(t, h, "/no/such/page"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d", rec.Code)
	}
}

func TestViewHelpers(t *testing.T) {
	if got := faviconURL("https://www.acme.co.uk/about"); got != "https://www.google.com/s2/favicons?domain=www.acme.co.uk&sz=128" {
		t.Errorf("faviconURL = %q", got)
	}
	if got := faviconURL("not a url"); got != "" {
		t.Errorf("faviconURL(invalid) = %q", got)
	}
	if got := registrableDomain("https://app.eu.acme.co.uk"); got != "acme.co.uk" {
		t.Errorf("registrableDomain = %q", got)
	}
}
