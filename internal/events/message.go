// Package events provides event handlers for message events
package events

import (
	"fmt"

	"github.com/PancyStudios/PancyAdminGo/pkg/automod"
	"github.com/PancyStudios/PancyAdminGo/pkg/discord"
	"github.com/PancyStudios/PancyAdminGo/pkg/errors"
	"github.com/PancyStudios/PancyAdminGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMessageEvents registers all message-related event handlers
func RegisterMessageEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onMessageCreate)
	client.Session.AddHandler(onMessageUpdate)
	client.Session.AddHandler(onMessageDelete)
}

// onMessageCreate runs every incoming message through the moderation engine
func onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer errors.RecoverMiddleware()()

	if m.Author == nil || m.Author.Bot {
		return
	}

	engine := automod.Get()
	if engine == nil {
		return
	}

	engine.OnMessage(automod.FromDiscordMessage(m))
}

// onMessageUpdate re-checks edited messages, so editing a clean message
// into a violation does not dodge the filters
func onMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	defer errors.RecoverMiddleware()()

	if m.Author == nil || m.Author.Bot || m.Message == nil {
		return
	}

	engine := automod.Get()
	if engine == nil {
		return
	}

	engine.OnMessage(automod.FromDiscordMessage(&discordgo.MessageCreate{Message: m.Message}))
}

// onMessageDelete is called when a message is deleted
func onMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	logger.Debug(fmt.Sprintf("🗑️ Mensaje eliminado: ID %s en canal %s",
		m.ID, m.ChannelID), "Message")
}
