// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (utils, mod)
package commands

import (
	"github.com/PancyStudios/PancyAdminGo/internal/commands/mod"
	"github.com/PancyStudios/PancyAdminGo/internal/commands/utils"
	"github.com/PancyStudios/PancyAdminGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands (/utils ping, /utils status, /utils stats, /utils help)
	utils.RegisterUtilsCommands(client)

	// Moderation commands (/mod ban, /mod kick, /mod warn, /mod mute, /mod automod ...)
	mod.RegisterModCommands(client)
}
