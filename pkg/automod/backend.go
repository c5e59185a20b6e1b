package automod

import (
	"github.com/PancyStudios/PancyAdminGo/pkg/database"
	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

// DatabaseBackend implements RuleSource, SettingsSource, LogSink and
// CounterSink over the shared database services. It is the production wiring;
// tests inject their own fakes.
type DatabaseBackend struct{}

// NewDatabaseBackend returns the database-backed engine collaborators
func NewDatabaseBackend() *DatabaseBackend {
	return &DatabaseBackend{}
}

// EnabledRules reads every enabled rule grouped by guild
func (b *DatabaseBackend) EnabledRules() (map[string][]*models.AutoModRule, error) {
	return database.GetAllEnabledRules()
}

// GuildSettings reads the cached settings of a guild
func (b *DatabaseBackend) GuildSettings(guildID string) (*models.GuildSettings, error) {
	return database.GetGuildSettings(guildID)
}

// Append writes a log record
func (b *DatabaseBackend) Append(record *models.LogRecord) error {
	return database.AppendLog(record)
}

// TrackAutoMod increments the rule/guild counter and queues the event
func (b *DatabaseBackend) TrackAutoMod(ruleName, userID, guildID, event string) {
	database.TrackAutoMod(ruleName, userID, guildID, event)
}
