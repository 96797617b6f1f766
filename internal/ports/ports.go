package ports

import (
	"context"

	"techstartups/internal/badge"
	"techstartups/internal/domain"
)

// Directory serves the ranked company listing and per-company read paths.
type Directory interface {
	Leaderboard(ctx context.Context) ([]domain.RankedCompany, error)
	Listing(ctx context.Context, q ListingQuery) ([]domain.RankedCompany, error)
	Standing(ctx context.Context, slug string) (domain.RankedCompany, error)
	Profile(ctx context.Context, slug string) (Profile, error)
	Companies(ctx context.Context) ([]domain.Company, error)
}

// Badges renders badges and their embed snippets.
type Badges interface {
	SVG(ctx context.Context, slug string, theme badge.Theme) ([]byte, error)
	Preview(ctx context.Context, slug string) (BadgePreview, error)
}

type SortOrder string

const (
	SortByRank SortOrder = "rank"
	SortByName SortOrder = "name"
)

type ListingQuery struct {
	Search string
	Sort   SortOrder
}

type Profile struct {
	Company domain.RankedCompany
	Slug    string
	Updates []domain.Update
}

type BadgePreview struct {
	Company     domain.RankedCompany
	Slug        string
	Title       string
	Description string
	Embeds      []Embed
}

type Embed struct {
	Theme    badge.Theme
	ImageURL string
	Snippet  string
}
