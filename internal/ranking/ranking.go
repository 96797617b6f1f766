// Package ranking turns subscription records into the company leaderboard
// shared by the directory, profile pages and badges.
package ranking

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"techstartups/internal/domain"
	"techstartups/internal/slug"
)

// Count tallies subscribed=true records per channel.
func Count(subs []domain.Subscription) domain.SubscriberCounts {
	counts := make(domain.SubscriberCounts)
	for _, s := range subs {
		if s.Subscribed {
			counts[s.ChannelID]++
		}
	}
	return counts
}

// Rank orders companies by subscriber count descending, then by name using
// English collation, and assigns rank = position + 1. Companies without a
// count rank with zero subscribers. The input slice is not modified.
func Rank(companies []domain.Company, counts domain.SubscriberCounts) []domain.RankedCompany {
	if len(companies) == 0 {
		return nil
	}
	out := make([]domain.RankedCompany, len(companies))
	for i, c := range companies {
		out[i] = domain.RankedCompany{Company: c, SubscriberCount: counts[c.ChannelID]}
	}

	// Collators keep scratch buffers and are not safe to share.
	col := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SubscriberCount != b.SubscriberCount {
			return a.SubscriberCount > b.SubscriberCount
		}
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ChannelID < b.ChannelID
	})

	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// RankCompanies is Rank over raw subscription records.
func RankCompanies(companies []domain.Company, subs []domain.Subscription) []domain.RankedCompany {
	return Rank(companies, Count(subs))
}

// BySlug resolves a slug against companies in their fetched order, first
// match wins, and returns that company's entry in ranked.
func BySlug(companies []domain.Company, ranked []domain.RankedCompany, s string) (domain.RankedCompany, bool) {
	for _, c := range companies {
		if slug.Make(c.Name) != s {
			continue
		}
		for _, r := range ranked {
			if r.ChannelID == c.ChannelID {
				return r, true
			}
		}
		return domain.RankedCompany{}, false
	}
	return domain.RankedCompany{}, false
}
