package automod

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/PancyStudios/PancyAdminGo/pkg/logger"
)

// PlatformActions are the chat-platform side effects of the enforcement
// cascade. Every call may fail independently; the engine treats all of them as
// best effort.
type PlatformActions interface {
	DeleteMessage(channelID, messageID string) error
	DirectMessage(userID, content string) error
	PostAndAutoDelete(channelID, content string, delay time.Duration) error
	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error
	BanUser(guildID, userID, reason string, purgeDays int) error
}

// DiscordActions implements PlatformActions over a discordgo session
type DiscordActions struct {
	session *discordgo.Session
}

// NewDiscordActions creates the discordgo-backed actions adapter
func NewDiscordActions(session *discordgo.Session) *DiscordActions {
	return &DiscordActions{session: session}
}

// DeleteMessage removes a message from a channel
func (a *DiscordActions) DeleteMessage(channelID, messageID string) error {
	return a.session.ChannelMessageDelete(channelID, messageID)
}

// DirectMessage sends a private message to a user
func (a *DiscordActions) DirectMessage(userID, content string) error {
	channel, err := a.session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = a.session.ChannelMessageSend(channel.ID, content)
	return err
}

// PostAndAutoDelete posts a transient notice in a channel and removes it after
// the delay. The removal is best effort.
func (a *DiscordActions) PostAndAutoDelete(channelID, content string, delay time.Duration) error {
	msg, err := a.session.ChannelMessageSend(channelID, content)
	if err != nil {
		return err
	}

	time.AfterFunc(delay, func() {
		if err := a.session.ChannelMessageDelete(channelID, msg.ID); err != nil {
			logger.Debug(fmt.Sprintf("No se pudo borrar el aviso temporal: %v", err), "Automod")
		}
	})
	return nil
}

// AddRole assigns a role to a guild member
func (a *DiscordActions) AddRole(guildID, userID, roleID string) error {
	return a.session.GuildMemberRoleAdd(guildID, userID, roleID)
}

// RemoveRole removes a role from a guild member
func (a *DiscordActions) RemoveRole(guildID, userID, roleID string) error {
	return a.session.GuildMemberRoleRemove(guildID, userID, roleID)
}

// BanUser removes a member from the guild and purges their recent messages
func (a *DiscordActions) BanUser(guildID, userID, reason string, purgeDays int) error {
	return a.session.GuildBanCreateWithReason(guildID, userID, reason, purgeDays)
}
