// Package automod implements the automated moderation engine: per-guild rule
// evaluation over inbound messages and the enforcement cascade for violations.
// It is a library invoked from the gateway event layer; it owns no wire protocol.
package automod

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

var (
	engine *Engine
	once   sync.Once
)

// Init initializes the global engine instance
func Init(cfg Config) *Engine {
	once.Do(func() {
		engine = New(cfg)
	})
	return engine
}

// Get returns the global engine instance
func Get() *Engine {
	return engine
}

// Message is the engine's view of an inbound chat message
type Message struct {
	ID           string
	GuildID      string
	ChannelID    string
	AuthorID     string
	AuthorTag    string
	AuthorIsBot  bool
	Content      string
	MentionUsers []string
	MentionRoles []string
}

// FromDiscordMessage converts a gateway message into the engine representation
func FromDiscordMessage(m *discordgo.MessageCreate) *Message {
	msg := &Message{
		ID:           m.ID,
		GuildID:      m.GuildID,
		ChannelID:    m.ChannelID,
		Content:      m.Content,
		MentionRoles: m.MentionRoles,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorTag = m.Author.Username
		msg.AuthorIsBot = m.Author.Bot
	}
	for _, user := range m.Mentions {
		msg.MentionUsers = append(msg.MentionUsers, user.ID)
	}
	return msg
}

// Violation is produced by a detector and consumed immediately by the enforcer.
// Only the resulting log record persists.
type Violation struct {
	RuleID      string
	Description string
}

// Detector evaluates one message against one rule's configuration
type Detector interface {
	Type() models.RuleType
	Check(msg *Message, rule *models.AutoModRule) *Violation
}
