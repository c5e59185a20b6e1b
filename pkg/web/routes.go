// Package web provides API routes for the web server.
package web

import (
	"net/http"
	"strconv"

	"github.com/PancyStudios/PancyAdminGo/pkg/automod"
	"github.com/PancyStudios/PancyAdminGo/pkg/database"
	"github.com/PancyStudios/PancyAdminGo/pkg/discord"
	"github.com/PancyStudios/PancyAdminGo/pkg/models"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)

		api.GET("/automod/stats", automodStatsHandler)
		api.GET("/automod/rules/:guildId", automodRulesHandler)
		api.POST("/automod/reload", automodReloadHandler)

		api.GET("/logs/:guildId", logsHandler)
		api.GET("/analytics/counters", countersHandler)

		api.GET("/tickets/:guildId", ticketsHandler)

		api.GET("/ws/violations", violationsFeedHandler)
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	automodOnline := automod.Get() != nil

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
		"automod": gin.H{
			"isOnline": automodOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyAdmin Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// automodStatsHandler returns moderation engine statistics
func automodStatsHandler(c *gin.Context) {
	engine := automod.Get()
	if engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Automod Offline",
			"message": "El motor de automod no está inicializado.",
		})
		return
	}

	stats := engine.Stats()
	c.JSON(http.StatusOK, gin.H{
		"totalRules":      stats.TotalRules,
		"guildsWithRules": stats.GuildsWithRules,
		"aiEnabled":       stats.AIEnabled,
		"trackedUsers":    stats.TrackedUsers,
		"rulesByGuild":    stats.RulesByGuild,
	})
}

// automodRulesHandler returns the active rules of a guild
func automodRulesHandler(c *gin.Context) {
	engine := automod.Get()
	if engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Automod Offline",
		})
		return
	}

	guildID := c.Param("guildId")
	rules := engine.Rules().RulesFor(guildID)
	if rules == nil {
		rules = []*models.AutoModRule{}
	}

	c.JSON(http.StatusOK, gin.H{
		"guildId": guildID,
		"count":   len(rules),
		"rules":   rules,
	})
}

// automodReloadHandler reloads the rule snapshot from the database
func automodReloadHandler(c *gin.Context) {
	engine := automod.Get()
	if engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Automod Offline",
		})
		return
	}

	if err := engine.Reload(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Reload Failed",
			"message": err.Error(),
		})
		return
	}

	stats := engine.Stats()
	c.JSON(http.StatusOK, gin.H{
		"reloaded":        true,
		"totalRules":      stats.TotalRules,
		"guildsWithRules": stats.GuildsWithRules,
	})
}

// logsHandler returns the newest log records for a guild.
// Optional query params: type (automod, moderation, warn) and limit.
func logsHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	logType := c.Query("type")

	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	records, err := database.GetRecentLogs(guildID, logType, limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Database Unavailable",
			"message": err.Error(),
		})
		return
	}
	if records == nil {
		records = []*models.LogRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"guildId": guildID,
		"count":   len(records),
		"logs":    records,
	})
}

// countersHandler returns the in-memory analytics counters
func countersHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"counters": database.CounterSnapshot(),
	})
}

// ticketsHandler returns the tickets of a guild.
// Optional query param: status (open, closed).
func ticketsHandler(c *gin.Context) {
	guildID := c.Param("guildId")
	status := models.TicketStatus(c.Query("status"))

	tickets, err := database.GetTickets(guildID, status, 100)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Database Unavailable",
			"message": err.Error(),
		})
		return
	}
	if tickets == nil {
		tickets = []*models.Ticket{}
	}

	c.JSON(http.StatusOK, gin.H{
		"guildId": guildID,
		"count":   len(tickets),
		"tickets": tickets,
	})
}
