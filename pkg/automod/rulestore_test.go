package automod

import (
	"errors"
	"sync"
	"testing"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

func TestRuleStoreLoadAndRead(t *testing.T) {
	source := &fakeRuleSource{rules: map[string][]*models.AutoModRule{
		"guild-1": {testRule(models.RuleTypeCaps), testRule(models.RuleTypeSpam)},
		"guild-2": {testRule(models.RuleTypeLinks)},
	}}

	store := NewRuleStore(source)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := len(store.RulesFor("guild-1")); got != 2 {
		t.Errorf("RulesFor(guild-1) = %d rules, want 2", got)
	}
	if got := len(store.RulesFor("guild-3")); got != 0 {
		t.Errorf("RulesFor(guild-3) = %d rules, want 0", got)
	}
	if store.GuildCount() != 2 || store.RuleCount() != 3 {
		t.Errorf("counts = (%d guilds, %d rules), want (2, 3)", store.GuildCount(), store.RuleCount())
	}
}

func TestRuleStoreEmptyBeforeLoad(t *testing.T) {
	store := NewRuleStore(&fakeRuleSource{})
	if got := store.RulesFor("guild-1"); got != nil {
		t.Errorf("RulesFor before Load = %v, want nil", got)
	}
}

func TestRuleStoreFailedReloadKeepsSnapshot(t *testing.T) {
	source := &fakeRuleSource{rules: map[string][]*models.AutoModRule{
		"guild-1": {testRule(models.RuleTypeCaps)},
	}}

	store := NewRuleStore(source)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	source.err = errors.New("store unreachable")
	if err := store.Reload(); err == nil {
		t.Fatal("Reload() should propagate the source error")
	}

	// The previous snapshot stays in effect
	if got := len(store.RulesFor("guild-1")); got != 1 {
		t.Errorf("RulesFor after failed reload = %d rules, want 1", got)
	}
}

func TestRuleStoreNormalizesRules(t *testing.T) {
	rule := testRule(models.RuleTypeCaps)
	rule.Actions.LogAction = false
	rule.Actions.MuteDuration = 0

	source := &fakeRuleSource{rules: map[string][]*models.AutoModRule{"guild-1": {rule}}}
	store := NewRuleStore(source)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	loaded := store.RulesFor("guild-1")[0]
	if !loaded.Actions.LogAction {
		t.Error("LogAction should be forced on at load time")
	}
	if loaded.Actions.MuteDuration != DefaultMuteDurationMinutes {
		t.Errorf("MuteDuration = %d, want default %d", loaded.Actions.MuteDuration, DefaultMuteDurationMinutes)
	}
}

func TestRuleStoreConcurrentReload(t *testing.T) {
	source := &fakeRuleSource{rules: map[string][]*models.AutoModRule{
		"guild-1": {testRule(models.RuleTypeCaps)},
	}}

	store := NewRuleStore(source)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Readers never observe a torn rule list while reloads publish snapshots
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Reload()
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rules := store.RulesFor("guild-1")
				if len(rules) != 1 {
					t.Errorf("observed torn snapshot: %d rules", len(rules))
					return
				}
			}
		}()
	}
	wg.Wait()
}
