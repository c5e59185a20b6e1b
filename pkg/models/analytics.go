package models

// AnalyticsEvent representa el documento en la colección "analytics"
type AnalyticsEvent struct {
	ID        string            `bson:"_id,omitempty" json:"id"`
	Type      string            `bson:"type" json:"type"`   // "automod", "moderation", "command"
	Event     string            `bson:"event" json:"event"` // "violation_detected", ...
	GuildID   string            `bson:"guildId" json:"guildId"`
	UserID    string            `bson:"userId" json:"userId"`
	Data      map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Timestamp int64             `bson:"timestamp" json:"timestamp"`
}
