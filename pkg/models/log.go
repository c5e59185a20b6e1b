package models

// LogData contains the automod-specific payload of a log record
type LogData struct {
	Rule           string `bson:"rule" json:"rule"`
	Violation      string `bson:"violation" json:"violation"`
	MessageContent string `bson:"messageContent" json:"messageContent"`
	ChannelID      string `bson:"channelId" json:"channelId"`
}

// LogRecord representa el documento en la colección "logs"
type LogRecord struct {
	ID        string  `bson:"_id,omitempty" json:"id"`
	Type      string  `bson:"type" json:"type"` // "automod", "moderation", ...
	Level     string  `bson:"level" json:"level"`
	Message   string  `bson:"message" json:"message"`
	GuildID   string  `bson:"guildId" json:"guildId"`
	UserID    string  `bson:"userId" json:"userId"`
	Data      LogData `bson:"data" json:"data"`
	Timestamp int64   `bson:"timestamp" json:"timestamp"`
}
