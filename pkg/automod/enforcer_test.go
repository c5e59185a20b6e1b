package automod

import (
	"errors"
	"testing"
	"time"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

func newTestEnforcer(actions *fakeActions, settings *fakeSettings, scheduler *FakeScheduler) (*Enforcer, *fakeLogs, *fakeCounters) {
	logs := &fakeLogs{}
	counters := newFakeCounters()
	if settings == nil {
		settings = &fakeSettings{}
	}
	if scheduler == nil {
		scheduler = &FakeScheduler{}
	}
	return NewEnforcer(actions, scheduler, settings, logs, counters), logs, counters
}

func TestEnforcerDeleteAction(t *testing.T) {
	actions := &fakeActions{}
	enforcer, logs, _ := newTestEnforcer(actions, nil, nil)

	rule := testRule(models.RuleTypeCaps)
	rule.Actions.DeleteMessage = true

	enforcer.Apply(testMessage("AAAA"), rule, &Violation{RuleID: rule.ID, Description: "caps"})

	if len(actions.deleted) != 1 {
		t.Errorf("deleted = %d messages, want 1", len(actions.deleted))
	}
	if len(logs.records) != 1 {
		t.Errorf("log records = %d, want 1", len(logs.records))
	}
}

func TestEnforcerActionsRunIndependently(t *testing.T) {
	// Delete fails (message already removed); warn, mute and log still run
	actions := &fakeActions{failDelete: true}
	settings := &fakeSettings{muteRole: "muted-role"}
	enforcer, logs, counters := newTestEnforcer(actions, settings, nil)

	rule := testRule(models.RuleTypeSpam)
	rule.Actions.DeleteMessage = true
	rule.Actions.WarnUser = true
	rule.Actions.MuteUser = true
	rule.Actions.MuteDuration = 10

	enforcer.Apply(testMessage("spam"), rule, &Violation{RuleID: rule.ID, Description: "spam"})

	if len(actions.dms) != 1 {
		t.Error("warn should run despite the failed delete")
	}
	if len(actions.rolesAdded) != 1 {
		t.Error("mute should run despite the failed delete")
	}
	if len(logs.records) != 1 {
		t.Error("log should be written despite the failed delete")
	}
	if counters.counts["spam filter/guild-1"] != 1 {
		t.Error("counter should be incremented despite the failed delete")
	}
}

func TestEnforcerWarnFallsBackToChannel(t *testing.T) {
	actions := &fakeActions{failDM: true}
	enforcer, _, _ := newTestEnforcer(actions, nil, nil)

	rule := testRule(models.RuleTypeCaps)
	rule.Actions.WarnUser = true

	enforcer.Apply(testMessage("AAAA"), rule, &Violation{RuleID: rule.ID, Description: "caps"})

	if len(actions.dms) != 0 {
		t.Error("DM should have failed")
	}
	if len(actions.notices) != 1 {
		t.Error("failed DM should fall back to a transient channel notice")
	}
}

func TestEnforcerMuteSchedulesRemoval(t *testing.T) {
	actions := &fakeActions{}
	settings := &fakeSettings{muteRole: "muted-role"}
	scheduler := &FakeScheduler{}
	enforcer, _, _ := newTestEnforcer(actions, settings, scheduler)

	rule := testRule(models.RuleTypeSpam)
	rule.Actions.MuteUser = true
	rule.Actions.MuteDuration = 15

	enforcer.Apply(testMessage("spam"), rule, &Violation{RuleID: rule.ID, Description: "spam"})

	if len(actions.rolesAdded) != 1 {
		t.Fatal("mute role should be applied")
	}
	if scheduler.PendingCount() != 1 {
		t.Fatal("unmute callback should be scheduled")
	}

	// Before the duration the role stays
	scheduler.Advance(14 * time.Minute)
	if len(actions.rolesRemove) != 0 {
		t.Error("role removed too early")
	}

	scheduler.Advance(time.Minute)
	if len(actions.rolesRemove) != 1 {
		t.Error("role should be removed after the configured duration")
	}
}

func TestEnforcerMuteSkippedWithoutMuteRole(t *testing.T) {
	actions := &fakeActions{}
	scheduler := &FakeScheduler{}
	enforcer, logs, _ := newTestEnforcer(actions, &fakeSettings{}, scheduler)

	rule := testRule(models.RuleTypeSpam)
	rule.Actions.MuteUser = true

	enforcer.Apply(testMessage("spam"), rule, &Violation{RuleID: rule.ID, Description: "spam"})

	if len(actions.rolesAdded) != 0 {
		t.Error("mute should be skipped when the guild has no mute role")
	}
	if scheduler.PendingCount() != 0 {
		t.Error("no unmute should be scheduled when mute was skipped")
	}
	if len(logs.records) != 1 {
		t.Error("log should still be written when mute is skipped")
	}
}

func TestEnforcerMuteFailureDoesNotSchedule(t *testing.T) {
	actions := &fakeActions{failRole: true}
	settings := &fakeSettings{muteRole: "muted-role"}
	scheduler := &FakeScheduler{}
	enforcer, _, _ := newTestEnforcer(actions, settings, scheduler)

	rule := testRule(models.RuleTypeSpam)
	rule.Actions.MuteUser = true

	enforcer.Apply(testMessage("spam"), rule, &Violation{RuleID: rule.ID, Description: "spam"})

	if scheduler.PendingCount() != 0 {
		t.Error("unmute must only be scheduled after a successful role add")
	}
}

func TestEnforcerBanReasonIncludesRuleAndViolation(t *testing.T) {
	actions := &fakeActions{}
	enforcer, _, _ := newTestEnforcer(actions, nil, nil)

	rule := testRule(models.RuleTypeProfanity)
	rule.Actions.BanUser = true

	enforcer.Apply(testMessage("malo"), rule, &Violation{RuleID: rule.ID, Description: "Blocked word detected: malo"})

	if len(actions.bans) != 1 {
		t.Fatal("ban should be issued")
	}
	reason := actions.banReasons[0]
	if reason != "Auto-mod: profanity filter - Blocked word detected: malo" {
		t.Errorf("ban reason = %q", reason)
	}
}

func TestEnforcerAlwaysLogsAndCounts(t *testing.T) {
	actions := &fakeActions{}
	enforcer, logs, counters := newTestEnforcer(actions, nil, nil)

	// No actions configured at all; log and counter still run
	rule := testRule(models.RuleTypeCaps)
	rule.Actions = models.RuleActions{}

	enforcer.Apply(testMessage("AAAA"), rule, &Violation{RuleID: rule.ID, Description: "caps"})

	if len(logs.records) != 1 {
		t.Error("violation must always produce a log record")
	}
	if counters.counts["caps filter/guild-1"] != 1 {
		t.Error("violation must always increment the rule/guild counter")
	}

	record := logs.records[0]
	if record.Type != "automod" {
		t.Errorf("record type = %q, want automod", record.Type)
	}
	if record.Data.Rule != "caps filter" || record.Data.Violation != "caps" {
		t.Errorf("record data = %+v", record.Data)
	}
	if record.Data.MessageContent != "AAAA" || record.Data.ChannelID != "chan-1" {
		t.Errorf("record data = %+v", record.Data)
	}
}

func TestEnforcerLogFailureDoesNotPanic(t *testing.T) {
	actions := &fakeActions{}
	logs := &fakeLogs{err: errors.New("sink down")}
	counters := newFakeCounters()
	enforcer := NewEnforcer(actions, &FakeScheduler{}, &fakeSettings{}, logs, counters)

	rule := testRule(models.RuleTypeCaps)
	enforcer.Apply(testMessage("AAAA"), rule, &Violation{RuleID: rule.ID, Description: "caps"})

	if counters.counts["caps filter/guild-1"] != 1 {
		t.Error("counter should still be incremented when the log sink fails")
	}
}

func TestEnforcerRepeatedApplicationIsSafe(t *testing.T) {
	// Re-applying the same violation must not error on an absent role or
	// double-count a removal
	actions := &fakeActions{}
	settings := &fakeSettings{muteRole: "muted-role"}
	scheduler := &FakeScheduler{}
	enforcer, logs, _ := newTestEnforcer(actions, settings, scheduler)

	rule := testRule(models.RuleTypeSpam)
	rule.Actions.DeleteMessage = true
	rule.Actions.MuteUser = true

	violation := &Violation{RuleID: rule.ID, Description: "spam"}
	enforcer.Apply(testMessage("spam"), rule, violation)
	enforcer.Apply(testMessage("spam"), rule, violation)

	scheduler.Advance(time.Hour)
	if len(actions.rolesRemove) != 2 {
		t.Errorf("role removals = %d, want 2 (idempotent, harmless)", len(actions.rolesRemove))
	}
	if len(logs.records) != 2 {
		t.Errorf("log records = %d, want one per application", len(logs.records))
	}
}
