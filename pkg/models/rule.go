package models

// RuleType identifies the detector a rule is evaluated with
type RuleType string

const (
	RuleTypeSpam       RuleType = "spam"
	RuleTypeLinks      RuleType = "links"
	RuleTypeCaps       RuleType = "caps"
	RuleTypeProfanity  RuleType = "profanity"
	RuleTypeMentions   RuleType = "mentions"
	RuleTypeDuplicates RuleType = "duplicates"
)

// RuleConfig holds the type-specific parameters of a rule.
// Zero values mean "use the documented default".
type RuleConfig struct {
	// Spam
	MaxMessages int `bson:"maxMessages,omitempty" json:"maxMessages,omitempty"`
	TimeWindow  int `bson:"timeWindow,omitempty" json:"timeWindow,omitempty"` // seconds

	// Links
	AllowedDomains []string `bson:"allowedDomains,omitempty" json:"allowedDomains,omitempty"`
	BlockedDomains []string `bson:"blockedDomains,omitempty" json:"blockedDomains,omitempty"`

	// Caps
	MaxCapsPercentage float64 `bson:"maxCapsPercentage,omitempty" json:"maxCapsPercentage,omitempty"`
	MinLength         int     `bson:"minLength,omitempty" json:"minLength,omitempty"`

	// Mentions
	MaxMentions int `bson:"maxMentions,omitempty" json:"maxMentions,omitempty"`

	// Profanity
	BlockedWords []string `bson:"blockedWords,omitempty" json:"blockedWords,omitempty"`
}

// RuleActions describes the enforcement cascade configured for a rule
type RuleActions struct {
	DeleteMessage bool `bson:"deleteMessage" json:"deleteMessage"`
	WarnUser      bool `bson:"warnUser" json:"warnUser"`
	MuteUser      bool `bson:"muteUser" json:"muteUser"`
	BanUser       bool `bson:"banUser" json:"banUser"`
	LogAction     bool `bson:"logAction" json:"logAction"`
	MuteDuration  int  `bson:"muteDuration,omitempty" json:"muteDuration,omitempty"` // minutes
}

// AutoModRule representa el documento completo en la colección "automod_rules"
type AutoModRule struct {
	ID      string      `bson:"_id,omitempty" json:"id"`
	GuildID string      `bson:"guildId" json:"guildId"`
	Name    string      `bson:"name" json:"name"`
	Type    RuleType    `bson:"type" json:"type"`
	Enabled bool        `bson:"enabled" json:"enabled"`
	Order   int         `bson:"order" json:"order"`
	Config  RuleConfig  `bson:"config" json:"config"`
	Actions RuleActions `bson:"actions" json:"actions"`
}
