// Package mod - /mod automod subcommand group
package mod

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyAdminGo/pkg/automod"
	"github.com/PancyStudios/PancyAdminGo/pkg/discord"
	"github.com/PancyStudios/PancyAdminGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createAutomodReloadCommand creates the /mod automod reload subcommand
func createAutomodReloadCommand() *discord.Command {
	return discord.NewCommand(
		"reload",
		"Recarga las reglas de automod desde la base de datos",
		"mod",
		automodReloadHandler,
	).WithUserPermissions(discordgo.PermissionManageServer).
		RequiresDatabase()
}

func automodReloadHandler(ctx *discord.CommandContext) error {
	engine := automod.Get()
	if engine == nil {
		return ctx.ReplyEphemeral("❌ El motor de automod no está inicializado.")
	}

	if err := engine.Reload(); err != nil {
		logger.Error(fmt.Sprintf("Error recargando reglas automod: %v", err), "CMD-Automod")
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error al recargar las reglas: %v", err))
	}

	stats := engine.Stats()
	return ctx.Reply(fmt.Sprintf("🔄 Reglas recargadas: **%d** reglas en **%d** servidores.",
		stats.TotalRules, stats.GuildsWithRules))
}

// createAutomodStatsCommand creates the /mod automod stats subcommand
func createAutomodStatsCommand() *discord.Command {
	return discord.NewCommand(
		"stats",
		"Muestra estadísticas del motor de automod",
		"mod",
		automodStatsHandler,
	).WithUserPermissions(discordgo.PermissionManageServer)
}

func automodStatsHandler(ctx *discord.CommandContext) error {
	engine := automod.Get()
	if engine == nil {
		return ctx.ReplyEphemeral("❌ El motor de automod no está inicializado.")
	}

	stats := engine.Stats()

	aiStatus := "🔴 Desactivada"
	if stats.AIEnabled {
		aiStatus = "🟢 Activada"
	}

	embed := &discordgo.MessageEmbed{
		Title: "🛡️ Estadísticas de Automod",
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📏 Reglas totales", Value: fmt.Sprintf("%d", stats.TotalRules), Inline: true},
			{Name: "🌐 Servidores con reglas", Value: fmt.Sprintf("%d", stats.GuildsWithRules), Inline: true},
			{Name: "👥 Usuarios monitoreados", Value: fmt.Sprintf("%d", stats.TrackedUsers), Inline: true},
			{Name: "🤖 Moderación con IA", Value: aiStatus, Inline: true},
			{Name: "📍 Reglas en este servidor", Value: fmt.Sprintf("%d", stats.RulesByGuild[ctx.Interaction.GuildID]), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 - Developed by PancyStudios",
		},
	}

	return ctx.ReplyEmbed(embed)
}

// createAutomodRulesCommand creates the /mod automod rules subcommand
func createAutomodRulesCommand() *discord.Command {
	return discord.NewCommand(
		"rules",
		"Lista las reglas de automod activas en este servidor",
		"mod",
		automodRulesHandler,
	).WithUserPermissions(discordgo.PermissionManageServer)
}

func automodRulesHandler(ctx *discord.CommandContext) error {
	engine := automod.Get()
	if engine == nil {
		return ctx.ReplyEphemeral("❌ El motor de automod no está inicializado.")
	}

	rules := engine.Rules().RulesFor(ctx.Interaction.GuildID)
	if len(rules) == 0 {
		return ctx.ReplyEphemeral("ℹ️ Este servidor no tiene reglas de automod activas.")
	}

	var sb strings.Builder
	for _, rule := range rules {
		var actions []string
		if rule.Actions.DeleteMessage {
			actions = append(actions, "borrar")
		}
		if rule.Actions.WarnUser {
			actions = append(actions, "advertir")
		}
		if rule.Actions.MuteUser {
			actions = append(actions, fmt.Sprintf("silenciar %dm", rule.Actions.MuteDuration))
		}
		if rule.Actions.BanUser {
			actions = append(actions, "banear")
		}
		actions = append(actions, "registrar")

		sb.WriteString(fmt.Sprintf("> **%d.** `%s` (%s)\n> Acciones: %s\n\n",
			rule.Order, rule.Name, rule.Type, strings.Join(actions, ", ")))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🛡️ Reglas de automod (%d)", len(rules)),
		Description: sb.String(),
		Color:       0x3498db,
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "💫 - Developed by PancyStudios",
			IconURL: ctx.Guild().IconURL(""),
		},
	}

	return ctx.ReplyEmbed(embed)
}
