package database

import (
	"errors"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrSettingsManagerNotInitialized = errors.New("settings data manager not initialized")

func getSettingsManager() (*DataManager[models.GuildSettings], error) {
	if GlobalSettingsDM == nil {
		return nil, ErrSettingsManagerNotInitialized
	}
	return GlobalSettingsDM, nil
}

// GetGuildSettings returns the settings for a guild, or nil if none are stored.
// Reads go through the shared DataManager cache.
func GetGuildSettings(guildID string) (*models.GuildSettings, error) {
	dm, err := getSettingsManager()
	if err != nil {
		return nil, err
	}
	return dm.Get(bson.M{"guildId": guildID})
}

// SetGuildSettings upserts the settings document for a guild
func SetGuildSettings(settings *models.GuildSettings) error {
	dm, err := getSettingsManager()
	if err != nil {
		return err
	}
	_, err = dm.Set(bson.M{"guildId": settings.GuildID}, settings)
	return err
}
