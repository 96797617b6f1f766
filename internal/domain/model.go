package domain

import "time"

// Core domain models. Adapters decode their own document/row shapes and
// convert into these at the boundary; nothing past the adapters sees a raw
// channel identifier.

type Company struct {
	ChannelID   ChannelID
	Name        string
	Description string
	WebsiteURL  string // empty: ranked, but hidden from the directory listing
	LastUpdated time.Time
}

// Listed reports whether the company appears in the public directory.
func (c Company) Listed() bool { return c.WebsiteURL != "" }

type Subscription struct {
	ChannelID  ChannelID
	Subscribed bool
}

// SubscriberCounts maps a channel to its number of subscribed=true records.
type SubscriberCounts map[ChannelID]int

type RankedCompany struct {
	Company
	SubscriberCount int
	Rank            int // 1-based, unique
}

// Top3 reports whether the company earns a medal badge.
func (r RankedCompany) Top3() bool { return r.Rank >= 1 && r.Rank <= 3 }

type Update struct {
	MessageID   uint64
	ChannelID   ChannelID
	Content     string
	CreatedAt   time.Time
	MessageURL  string
	Author      Author
	Attachments []Attachment
}

type Author struct {
	DisplayName string
	AvatarURL   string
}

type Attachment struct {
	ID          uint64
	Filename    string
	URL         string
	ContentType string
	Size        int64
}

// IsImage reports whether the attachment can be shown inline.
func (a Attachment) IsImage() bool {
	return len(a.ContentType) >= 6 && a.ContentType[:6] == "image/"
}

var ErrNotFound = errString("not found")

type errString string

func (e errString) Error() string { return string(e) }
