package directory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"techstartups/internal/domain"
	"techstartups/internal/ports"
	"techstartups/internal/ranking"
)

// ProfileUpdates is how many builder updates a profile shows.
const ProfileUpdates = 3

// Service recomputes the leaderboard from the store on every call.
type Service struct {
	store ports.Store
	log   *slog.Logger
}

func New(store ports.Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) Companies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.store.Companies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}
	return companies, nil
}

// snapshot fetches both inputs of the ranking. Either fetch failing fails
// the whole call; a ranking is never built from partial data.
func (s *Service) snapshot(ctx context.Context) ([]domain.Company, []domain.RankedCompany, error) {
	companies, err := s.Companies(ctx)
	if err != nil {
		return nil, nil, err
	}
	counts, err := s.store.SubscriberCounts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load subscriber counts: %w", err)
	}
	return companies, ranking.Rank(companies, counts), nil
}

func (s *Service) Leaderboard(ctx context.Context) ([]domain.RankedCompany, error) {
	_, ranked, err := s.snapshot(ctx)
	return ranked, err
}

// Listing returns ranked companies that have a website, optionally filtered
// by a case-insensitive match on name or description.
func (s *Service) Listing(ctx context.Context, q ports.ListingQuery) ([]domain.RankedCompany, error) {
	ranked, err := s.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.RankedCompany, 0, len(ranked))
	for _, r := range ranked {
		if !r.Listed() {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Name), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			continue
		}
		out = append(out, r)
	}
	if q.Sort == ports.SortByName {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
			if a != b {
				return a < b
			}
			return out[i].Rank < out[j].Rank
		})
	}
	return out, nil
}

// Standing resolves a slug to the company's ranked entry.
func (s *Service) Standing(ctx context.Context, slug string) (domain.RankedCompany, error) {
	companies, ranked, err := s.snapshot(ctx)
	if err != nil {
		return domain.RankedCompany{}, err
	}
	r, ok := ranking.BySlug(companies, ranked, slug)
	if !ok {
		return domain.RankedCompany{}, domain.ErrNotFound
	}
	return r, nil
}

func (s *Service) Profile(ctx context.Context, slug string) (ports.Profile, error) {
	r, err := s.Standing(ctx, slug)
	if err != nil {
		return ports.Profile{}, err
	}
	updates, err := s.store.RecentUpdates(ctx, r.ChannelID, ProfileUpdates)
	if err != nil {
		s.log.Warn("profile updates unavailable", "slug", slug, "channel_id", r.ChannelID.String(), "error", err)
		updates = nil
	}
	return ports.Profile{Company: r, Slug: slug, Updates: updates}, nil
}
