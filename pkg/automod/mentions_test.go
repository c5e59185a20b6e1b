package automod

import (
	"testing"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

func mentionMessage(users, roles []string) *Message {
	msg := testMessage("hola a todos")
	msg.MentionUsers = users
	msg.MentionRoles = roles
	return msg
}

func TestMentionsAtLimitPasses(t *testing.T) {
	detector := &MentionsDetector{}
	rule := testRule(models.RuleTypeMentions)
	rule.Config.MaxMentions = 3

	msg := mentionMessage([]string{"u1", "u2"}, []string{"r1"})
	if v := detector.Check(msg, rule); v != nil {
		t.Fatalf("exactly maxMentions should not violate, got %q", v.Description)
	}
}

func TestMentionsAboveLimitViolates(t *testing.T) {
	detector := &MentionsDetector{}
	rule := testRule(models.RuleTypeMentions)
	rule.Config.MaxMentions = 3

	msg := mentionMessage([]string{"u1", "u2", "u3"}, []string{"r1"})
	if v := detector.Check(msg, rule); v == nil {
		t.Fatal("maxMentions + 1 should violate")
	}
}

func TestMentionsCountsDistinct(t *testing.T) {
	detector := &MentionsDetector{}
	rule := testRule(models.RuleTypeMentions)
	rule.Config.MaxMentions = 2

	// Repeated mentions of the same user count once
	msg := mentionMessage([]string{"u1", "u1", "u1"}, nil)
	if v := detector.Check(msg, rule); v != nil {
		t.Fatal("duplicate mentions of one user should count once")
	}
}

func TestMentionsDefaultLimit(t *testing.T) {
	detector := &MentionsDetector{}
	rule := testRule(models.RuleTypeMentions) // default limit 5

	msg := mentionMessage([]string{"u1", "u2", "u3", "u4", "u5"}, nil)
	if v := detector.Check(msg, rule); v != nil {
		t.Fatal("5 mentions should pass with the default limit")
	}

	msg = mentionMessage([]string{"u1", "u2", "u3", "u4", "u5"}, []string{"r1"})
	if v := detector.Check(msg, rule); v == nil {
		t.Fatal("6 mentions should violate with the default limit")
	}
}
