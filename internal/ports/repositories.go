package ports

import (
	"context"

	"techstartups/internal/domain"
)

// CompanyRepository reads company records. Order is the store's natural
// order and decides which company wins a slug collision.
type CompanyRepository interface {
	Companies(ctx context.Context) ([]domain.Company, error)
}

// SubscriptionRepository aggregates subscribed=true records per channel.
type SubscriptionRepository interface {
	SubscriberCounts(ctx context.Context) (domain.SubscriberCounts, error)
}

// UpdateRepository provides the newest non-deleted builder updates posted in
// a company channel.
type UpdateRepository interface {
	RecentUpdates(ctx context.Context, channelID domain.ChannelID, limit int) ([]domain.Update, error)
}

// Store is the full read surface an adapter provides.
type Store interface {
	CompanyRepository
	SubscriptionRepository
	UpdateRepository
	Ping(ctx context.Context) error
}
