package mqtt

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyAdminGo/pkg/logger"
)

// ViolationEvent is the payload published on pancy/automod/violations
// every time the moderation engine flags a message
type ViolationEvent struct {
	GuildID     string `json:"guildId"`
	ChannelID   string `json:"channelId"`
	UserID      string `json:"userId"`
	RuleName    string `json:"ruleName"`
	RuleType    string `json:"ruleType"`
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"`
}

// PublishViolation publishes a violation event to the broker. Safe to call
// when the communicator is not initialized or offline.
func PublishViolation(event ViolationEvent) {
	mc := Get()
	if mc == nil || !mc.IsConnected() {
		return
	}

	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}

	if err := mc.Publish("pancy/automod/violations", event); err != nil {
		logger.Error(fmt.Sprintf("Error publicando violación automod: %v", err), "MQTT")
	}
}

// StatsProvider supplies automod statistics for remote queries
type StatsProvider func() (interface{}, error)

// RegisterAutomodTopics registers the request/response topics the panel uses
// to query and control the moderation engine
func RegisterAutomodTopics(stats StatsProvider, reload func() error) {
	mc := Get()
	if mc == nil {
		return
	}

	mc.On("automod/stats", func(payload map[string]interface{}) (interface{}, error) {
		return stats()
	})

	mc.On("automod/reload", func(payload map[string]interface{}) (interface{}, error) {
		if err := reload(); err != nil {
			return nil, err
		}
		return map[string]interface{}{"reloaded": true}, nil
	})

	logger.System("Topics de automod registrados en MQTT", "MQTT")
}
