package automod

import (
	"errors"
	"sync"
	"time"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

// Shared fakes for the engine tests. Everything records its calls so tests can
// assert exactly which side effects ran.

type fakeActions struct {
	mu sync.Mutex

	deleted     []string
	dms         []string
	notices     []string
	rolesAdded  []string
	rolesRemove []string
	bans        []string
	banReasons  []string

	failDM     bool
	failDelete bool
	failRole   bool
}

func (f *fakeActions) DeleteMessage(channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("message already deleted")
	}
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeActions) DirectMessage(userID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDM {
		return errors.New("cannot DM user")
	}
	f.dms = append(f.dms, userID)
	return nil
}

func (f *fakeActions) PostAndAutoDelete(channelID, content string, delay time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, channelID)
	return nil
}

func (f *fakeActions) AddRole(guildID, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRole {
		return errors.New("missing permissions")
	}
	f.rolesAdded = append(f.rolesAdded, userID+"/"+roleID)
	return nil
}

func (f *fakeActions) RemoveRole(guildID, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rolesRemove = append(f.rolesRemove, userID+"/"+roleID)
	return nil
}

func (f *fakeActions) BanUser(guildID, userID, reason string, purgeDays int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bans = append(f.bans, userID)
	f.banReasons = append(f.banReasons, reason)
	return nil
}

type fakeSettings struct {
	muteRole string
	err      error
}

func (f *fakeSettings) GuildSettings(guildID string) (*models.GuildSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.muteRole == "" {
		return nil, nil
	}
	return &models.GuildSettings{GuildID: guildID, MuteRole: f.muteRole}, nil
}

type fakeLogs struct {
	mu      sync.Mutex
	records []*models.LogRecord
	err     error
}

func (f *fakeLogs) Append(record *models.LogRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

type fakeCounters struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeCounters() *fakeCounters {
	return &fakeCounters{counts: make(map[string]int)}
}

func (f *fakeCounters) TrackAutoMod(ruleName, userID, guildID, event string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[ruleName+"/"+guildID]++
}

type fakeRuleSource struct {
	rules map[string][]*models.AutoModRule
	err   error
}

func (f *fakeRuleSource) EnabledRules() (map[string][]*models.AutoModRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	// Copy so the store snapshot is independent of the fixture
	out := make(map[string][]*models.AutoModRule, len(f.rules))
	for guildID, rules := range f.rules {
		out[guildID] = append([]*models.AutoModRule(nil), rules...)
	}
	return out, nil
}

// FakeScheduler collects callbacks and fires them when the test advances time
type FakeScheduler struct {
	mu      sync.Mutex
	pending []fakeTimer
	elapsed time.Duration
}

type fakeTimer struct {
	at time.Duration
	fn func()
}

func (s *FakeScheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, fakeTimer{at: s.elapsed + d, fn: fn})
}

// Advance moves the fake clock forward and runs every callback that came due
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.elapsed += d
	var due []func()
	var remaining []fakeTimer
	for _, timer := range s.pending {
		if timer.at <= s.elapsed {
			due = append(due, timer.fn)
		} else {
			remaining = append(remaining, timer)
		}
	}
	s.pending = remaining
	s.mu.Unlock()

	for _, fn := range due {
		fn()
	}
}

func (s *FakeScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

type fakeClassifier struct {
	verdict Verdict
	err     error
	calls   int
}

func (f *fakeClassifier) Classify(text string) (Verdict, error) {
	f.calls++
	if f.err != nil {
		return VerdictClean, f.err
	}
	return f.verdict, nil
}

// Test helpers

func testMessage(content string) *Message {
	return &Message{
		ID:        "msg-1",
		GuildID:   "guild-1",
		ChannelID: "chan-1",
		AuthorID:  "user-1",
		AuthorTag: "tester",
		Content:   content,
	}
}

func testRule(ruleType models.RuleType) *models.AutoModRule {
	return &models.AutoModRule{
		ID:      "rule-" + string(ruleType),
		GuildID: "guild-1",
		Name:    string(ruleType) + " filter",
		Type:    ruleType,
		Enabled: true,
		Actions: models.RuleActions{LogAction: true},
	}
}

// setRateClock pins the RateState clock for deterministic window tests
func setRateClock(rs *RateState, now *time.Time) {
	rs.now = func() time.Time { return *now }
}
