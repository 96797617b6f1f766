package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"techstartups/internal/domain"
)

// Collections written by the Discord bot.
const (
	companiesCollection     = "company_metadata"
	subscriptionsCollection = "channel_subscriptions"
	updatesCollection       = "company_updates"
)

type companyDoc struct {
	ChannelID   rawID     `bson:"channel_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	WebsiteURL  string    `bson:"website_url"`
	LastUpdated time.Time `bson:"last_updated"`
}

func (d companyDoc) toDomain() domain.Company {
	return domain.Company{
		ChannelID:   d.ChannelID.Normalize(),
		Name:        d.Name,
		Description: d.Description,
		WebsiteURL:  d.WebsiteURL,
		LastUpdated: d.LastUpdated,
	}
}

type countDoc struct {
	ChannelID rawID `bson:"_id"`
	Count     int   `bson:"count"`
}

type updateDoc struct {
	MessageID  rawID     `bson:"original_message_id"`
	ChannelID  rawID     `bson:"original_channel_id"`
	Content    string    `bson:"content"`
	CreatedAt  time.Time `bson:"created_at"`
	MessageURL string    `bson:"message_url"`
	Author     struct {
		DisplayName string  `bson:"display_name"`
		AvatarURL   *string `bson:"avatar_url"`
	} `bson:"author"`
	Attachments []attachmentDoc `bson:"attachments"`
}

type attachmentDoc struct {
	ID          rawID   `bson:"id"`
	Filename    string  `bson:"filename"`
	URL         string  `bson:"url"`
	ContentType *string `bson:"content_type"`
	Size        int64   `bson:"size"`
}

func (d updateDoc) toDomain() domain.Update {
	u := domain.Update{
		MessageID:  uint64(d.MessageID.Normalize()),
		ChannelID:  d.ChannelID.Normalize(),
		Content:    d.Content,
		CreatedAt:  d.CreatedAt,
		MessageURL: d.MessageURL,
		Author:     domain.Author{DisplayName: d.Author.DisplayName, AvatarURL: deref(d.Author.AvatarURL)},
	}
	for _, a := range d.Attachments {
		u.Attachments = append(u.Attachments, domain.Attachment{
			ID:          uint64(a.ID.Normalize()),
			Filename:    a.Filename,
			URL:         a.URL,
			ContentType: deref(a.ContentType),
			Size:        a.Size,
		})
	}
	return u
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Companies returns every company in insertion order.
func (db *DB) Companies(ctx context.Context) ([]domain.Company, error) {
	cur, err := db.db.Collection(companiesCollection).Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find companies: %w", err)
	}
	var docs []companyDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}
	out := make([]domain.Company, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// SubscriberCounts groups subscribed records by stored channel id. Groups
// whose ids differ only in representation are merged after normalizing.
func (db *DB) SubscriberCounts(ctx context.Context) (domain.SubscriberCounts, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "subscribed", Value: true}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$channel_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := db.db.Collection(subscriptionsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate subscriptions: %w", err)
	}
	var docs []countDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode subscription counts: %w", err)
	}
	return mergeCounts(docs), nil
}

func mergeCounts(docs []countDoc) domain.SubscriberCounts {
	counts := make(domain.SubscriberCounts, len(docs))
	for _, d := range docs {
		counts[d.ChannelID.Normalize()] += d.Count
	}
	return counts
}

func (db *DB) RecentUpdates(ctx context.Context, channelID domain.ChannelID, limit int) ([]domain.Update, error) {
	filter := bson.D{
		{Key: "original_channel_id", Value: channelIDFilter(channelID)},
		{Key: "deleted_at", Value: nil},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := db.db.Collection(updatesCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find updates for %s: %w", channelID, err)
	}
	var docs []updateDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	out := make([]domain.Update, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}
