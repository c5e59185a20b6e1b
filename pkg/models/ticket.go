package models

import "time"

// TicketStatus represents the lifecycle state of a ticket
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusClaimed  TicketStatus = "claimed"
	TicketStatusClosed   TicketStatus = "closed"
	TicketStatusResolved TicketStatus = "resolved"
)

// Ticket representa el documento en la colección "tickets".
// El motor de automod no crea tickets; solo los lee el dashboard.
type Ticket struct {
	ID        string       `bson:"_id,omitempty" json:"id"`
	Number    int          `bson:"number" json:"number"`
	GuildID   string       `bson:"guildId" json:"guildId"`
	UserID    string       `bson:"userId" json:"userId"`
	ChannelID string       `bson:"channelId,omitempty" json:"channelId,omitempty"`
	Title     string       `bson:"title" json:"title"`
	Status    TicketStatus `bson:"status" json:"status"`
	Priority  string       `bson:"priority" json:"priority"` // "low", "medium", "high", "urgent"
	ClaimedBy string       `bson:"claimedBy,omitempty" json:"claimedBy,omitempty"`
	CreatedAt time.Time    `bson:"created_at" json:"createdAt"`
	ClosedAt  *time.Time   `bson:"closed_at,omitempty" json:"closedAt,omitempty"`
}
