// Package database provides the rule service for automod rule reads.
package database

import (
	"context"
	"errors"
	"time"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrRuleManagerNotInitialized = errors.New("rule data manager not initialized")
	ErrStoreUnavailable          = errors.New("rule store unavailable: database not connected")
)

func getRuleManager() (*DataManager[models.AutoModRule], error) {
	if GlobalRuleDM == nil {
		return nil, ErrRuleManagerNotInitialized
	}
	return GlobalRuleDM, nil
}

// GetEnabledRules returns the enabled rules of a guild ordered by their stored order
func GetEnabledRules(guildID string) ([]*models.AutoModRule, error) {
	rules, err := findRules(bson.M{"guildId": guildID, "enabled": true})
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// GetAllEnabledRules returns every enabled rule grouped by guild, ordered within
// each guild by the stored order
func GetAllEnabledRules() (map[string][]*models.AutoModRule, error) {
	rules, err := findRules(bson.M{"enabled": true})
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*models.AutoModRule)
	for _, rule := range rules {
		grouped[rule.GuildID] = append(grouped[rule.GuildID], rule)
	}
	return grouped, nil
}

// GetRules returns all rules of a guild, including disabled ones (dashboard view)
func GetRules(guildID string) ([]*models.AutoModRule, error) {
	return findRules(bson.M{"guildId": guildID})
}

// SetRule upserts a rule document keyed by id
func SetRule(rule *models.AutoModRule) error {
	dm, err := getRuleManager()
	if err != nil {
		return err
	}
	_, err = dm.Set(bson.M{"_id": rule.ID}, rule)
	return err
}

// findRules reads rule documents sorted by the per-guild evaluation order
func findRules(query bson.M) ([]*models.AutoModRule, error) {
	dm, err := getRuleManager()
	if err != nil {
		return nil, err
	}

	if !dm.dbInstance.Connected() || dm.collection == nil {
		return nil, ErrStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := dm.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var rules []*models.AutoModRule
	for cursor.Next(ctx) {
		var rule models.AutoModRule
		if err := cursor.Decode(&rule); err != nil {
			continue
		}
		rules = append(rules, &rule)
	}

	return rules, cursor.Err()
}
