package badges

import (
	"context"
	"fmt"

	"techstartups/internal/badge"
	"techstartups/internal/ports"
)

type Service struct {
	directory ports.Directory
	renderer  *badge.Renderer
	baseURL   string
}

func New(directory ports.Directory, renderer *badge.Renderer, baseURL string) *Service {
	return &Service{directory: directory, renderer: renderer, baseURL: baseURL}
}

// SVG renders the badge for slug. domain.ErrNotFound and badge.ErrAsset
// pass through wrapped for the HTTP layer to map.
func (s *Service) SVG(ctx context.Context, slug string, theme badge.Theme) ([]byte, error) {
	r, err := s.directory.Standing(ctx, slug)
	if err != nil {
		return nil, err
	}
	svg, err := s.renderer.Render(badge.Spec{
		CompanyURL:  s.baseURL + "/company/" + slug,
		Rank:        r.Rank,
		Subscribers: r.SubscriberCount,
		Theme:       theme,
	})
	if err != nil {
		return nil, fmt.Errorf("badge for %s: %w", slug, err)
	}
	return svg, nil
}

func (s *Service) Preview(ctx context.Context, slug string) (ports.BadgePreview, error) {
	r, err := s.directory.Standing(ctx, slug)
	if err != nil {
		return ports.BadgePreview{}, err
	}
	p := ports.BadgePreview{
		Company:     r,
		Slug:        slug,
		Title:       "TechStartups Badge",
		Description: "Show that your company is featured on TechStartups",
	}
	if r.Top3() {
		p.Title = fmt.Sprintf("#%d Trending Startup Badge", r.Rank)
		p.Description = "Display your top 3 ranking with a medal badge"
	}
	for _, theme := range []badge.Theme{badge.Dark, badge.Light} {
		p.Embeds = append(p.Embeds, ports.Embed{
			Theme:    theme,
			ImageURL: fmt.Sprintf("/api/badge?slug=%s&theme=%s", slug, theme),
			Snippet:  badge.EmbedSnippet(s.baseURL, slug, r.Name, theme),
		})
	}
	return p, nil
}
