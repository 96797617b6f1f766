package badges

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"techstartups/internal/badge"
	"techstartups/internal/domain"
	"techstartups/internal/ports"
)

type fakeDirectory struct {
	ports.Directory
	standings map[string]domain.RankedCompany
}

func (f fakeDirectory) Standing(_ context.Context, slug string) (domain.RankedCompany, error) {
	r, ok := f.standings[slug]
	if !ok {
		return domain.RankedCompany{}, domain.ErrNotFound
	}
	return r, nil
}

func newService() *Service {
	dir := fakeDirectory{standings: map[string]domain.RankedCompany{
		"acme":   {Company: domain.Company{ChannelID: 1, Name: "Acme"}, Rank: 1, SubscriberCount: 50},
		"globex": {Company: domain.Company{ChannelID: 2, Name: "Globex"}, Rank: 8, SubscriberCount: 3},
	}}
	assets := fstest.MapFS{"logo-white.svg": {Data: []byte("<svg/>")}}
	return New(dir, badge.NewRenderer(assets), "https://techstartups.gg")
}

func TestSVG(t *testing.T) {
	svg, err := newService().SVG(context.Background(), "acme", badge.Dark)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "#1 Trending Startup") || !strings.Contains(string(svg), "https://techstartups.gg/company/acme") {
		t.Fatalf("unexpected svg:\n%s", svg)
	}
}

func TestSVGErrors(t *testing.T) {
	svc := newService()
	if _, err := svc.SVG(context.Background(), "nope", badge.Dark); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	// the light logo is absent from the test assets
	if _, err := svc.SVG(context.Background(), "globex", badge.Light); !errors.Is(err, badge.ErrAsset) {
		t.Errorf("expected ErrAsset, got %v", err)
	}
}

func TestPreview(t *testing.T) {
	svc := newService()
	p, err := svc.Preview(context.Background(), "acme")
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "#1 Trending Startup Badge" {
		t.Errorf("title = %q", p.Title)
	}
	if len(p.Embeds) != 2 || p.Embeds[0].Theme != badge.Dark || p.Embeds[1].Theme != badge.Light {
		t.Fatalf("unexpected embeds %+v", p.Embeds)
	}
	if !strings.Contains(p.Embeds[1].Snippet, "slug=acme&theme=light") {
		t.Errorf("snippet = %s", p.Embeds[1].Snippet)
	}

	p, err = svc.Preview(context.Background(), "globex")
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "TechStartups Badge" {
		t.Errorf("title = %q", p.Title)
	}
}
