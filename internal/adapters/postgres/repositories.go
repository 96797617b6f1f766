package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"techstartups/internal/domain"
)

// Ids are NUMERIC(20,0) so the full unsigned range fits; they travel as
// text and are normalized like any other stored representation.

// CompanyRepository
func (db *DB) Companies(ctx context.Context) ([]domain.Company, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT channel_id::text, name, description, website_url, last_updated
        FROM company_metadata
        ORDER BY created_at, channel_id
    `)
	if err != nil {
		return nil, fmt.Errorf("query companies: %w", err)
	}
	companies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Company, error) {
		var c domain.Company
		var id string
		err := row.Scan(&id, &c.Name, &c.Description, &c.WebsiteURL, &c.LastUpdated)
		c.ChannelID = domain.TextID(id).Normalize()
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan companies: %w", err)
	}
	return companies, nil
}

// SubscriptionRepository
func (db *DB) SubscriberCounts(ctx context.Context) (domain.SubscriberCounts, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT channel_id::text, count(*)
        FROM channel_subscriptions
        WHERE subscribed
        GROUP BY channel_id
    `)
	if err != nil {
		return nil, fmt.Errorf("query subscriber counts: %w", err)
	}
	defer rows.Close()
	counts := make(domain.SubscriberCounts)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan subscriber count: %w", err)
		}
		counts[domain.TextID(id).Normalize()] += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriber counts: %w", err)
	}
	return counts, nil
}

// UpdateRepository
func (db *DB) RecentUpdates(ctx context.Context, channelID domain.ChannelID, limit int) ([]domain.Update, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT original_message_id::text, content, created_at, message_url,
               author_display_name, COALESCE(author_avatar_url, ''), attachments
        FROM company_updates
        WHERE original_channel_id = $1::numeric AND deleted_at IS NULL
        ORDER BY created_at DESC
        LIMIT $2
    `, channelID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("query updates for %s: %w", channelID, err)
	}
	updates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Update, error) {
		u := domain.Update{ChannelID: channelID}
		var id string
		var attachments []byte
		if err := row.Scan(&id, &u.Content, &u.CreatedAt, &u.MessageURL,
			&u.Author.DisplayName, &u.Author.AvatarURL, &attachments); err != nil {
			return u, err
		}
		u.MessageID = uint64(domain.TextID(id).Normalize())
		var err error
		u.Attachments, err = decodeAttachments(attachments)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan updates: %w", err)
	}
	return updates, nil
}

// attachmentRow mirrors one element of the attachments JSONB array. Ids
// arrive as JSON numbers or as quoted snowflakes depending on the writer.
type attachmentRow struct {
	ID          json.Number `json:"id"`
	Filename    string      `json:"filename"`
	URL         string      `json:"url"`
	ContentType string      `json:"content_type"`
	Size        int64       `json:"size"`
}

func decodeAttachments(raw []byte) ([]domain.Attachment, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []attachmentRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode attachments: %w", err)
	}
	out := make([]domain.Attachment, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Attachment{
			ID:          uint64(domain.TextID(r.ID.String()).Normalize()),
			Filename:    r.Filename,
			URL:         r.URL,
			ContentType: r.ContentType,
			Size:        r.Size,
		})
	}
	return out, nil
}
