package automod

import (
	"fmt"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

// DefaultMaxMentions is the mention limit when the rule does not set one
const DefaultMaxMentions = 5

// MentionsDetector flags messages that mention too many distinct users or roles
type MentionsDetector struct{}

// Type returns the rule type this detector handles
func (d *MentionsDetector) Type() models.RuleType {
	return models.RuleTypeMentions
}

// Check counts distinct user plus distinct role mentions; a count exactly at
// the limit does not violate
func (d *MentionsDetector) Check(msg *Message, rule *models.AutoModRule) *Violation {
	maxMentions := rule.Config.MaxMentions
	if maxMentions <= 0 {
		maxMentions = DefaultMaxMentions
	}

	total := countDistinct(msg.MentionUsers) + countDistinct(msg.MentionRoles)
	if total <= maxMentions {
		return nil
	}

	return &Violation{
		RuleID:      rule.ID,
		Description: fmt.Sprintf("Excessive mentions: %d (limit: %d)", total, maxMentions),
	}
}

func countDistinct(ids []string) int {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
