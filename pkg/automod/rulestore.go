package automod

import (
	"sync/atomic"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

// RuleSource is the read contract the store needs from persistence
type RuleSource interface {
	EnabledRules() (map[string][]*models.AutoModRule, error)
}

// RuleStore holds the active rule set per guild. Load and Reload publish a new
// immutable snapshot; readers never observe a partially-updated set and
// RulesFor never blocks on I/O. Evaluation in flight keeps using whichever
// snapshot was current when it began.
type RuleStore struct {
	source   RuleSource
	snapshot atomic.Value // map[string][]*models.AutoModRule
}

// NewRuleStore creates a RuleStore with an empty snapshot
func NewRuleStore(source RuleSource) *RuleStore {
	s := &RuleStore{source: source}
	s.snapshot.Store(make(map[string][]*models.AutoModRule))
	return s
}

// Load fetches the enabled rules and atomically replaces the active mapping.
// On error the previous snapshot stays in effect.
func (s *RuleStore) Load() error {
	rules, err := s.source.EnabledRules()
	if err != nil {
		return err
	}

	for _, guildRules := range rules {
		for _, rule := range guildRules {
			normalizeRule(rule)
		}
	}

	s.snapshot.Store(rules)
	return nil
}

// Reload re-executes Load; safe to call concurrently with ongoing evaluation
func (s *RuleStore) Reload() error {
	return s.Load()
}

// RulesFor returns the ordered enabled rules of a guild, possibly empty
func (s *RuleStore) RulesFor(guildID string) []*models.AutoModRule {
	snapshot := s.snapshot.Load().(map[string][]*models.AutoModRule)
	return snapshot[guildID]
}

// GuildCount returns the number of guilds with at least one enabled rule
func (s *RuleStore) GuildCount() int {
	snapshot := s.snapshot.Load().(map[string][]*models.AutoModRule)
	return len(snapshot)
}

// RuleCount returns the total number of enabled rules across guilds
func (s *RuleStore) RuleCount() int {
	snapshot := s.snapshot.Load().(map[string][]*models.AutoModRule)
	total := 0
	for _, rules := range snapshot {
		total += len(rules)
	}
	return total
}

// RulesByGuild returns the enabled rule count per guild
func (s *RuleStore) RulesByGuild() map[string]int {
	snapshot := s.snapshot.Load().(map[string][]*models.AutoModRule)
	counts := make(map[string]int, len(snapshot))
	for guildID, rules := range snapshot {
		counts[guildID] = len(rules)
	}
	return counts
}

// normalizeRule applies load-time invariants: a violation is always logged,
// and the mute duration falls back to the default when unset
func normalizeRule(rule *models.AutoModRule) {
	rule.Actions.LogAction = true
	if rule.Actions.MuteDuration <= 0 {
		rule.Actions.MuteDuration = DefaultMuteDurationMinutes
	}
}
