package automod

import (
	"fmt"
	"sync"

	"github.com/PancyStudios/PancyAdminGo/pkg/logger"
	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

// ViolationHook is notified after a violation has been enforced. Hooks feed
// the live dashboard surfaces (websocket feed, MQTT events).
type ViolationHook func(msg *Message, rule *models.AutoModRule, violation *Violation)

// Config holds the collaborators of the engine. Rules, Actions, Logs and
// Counters are required; Classifier may be nil (word-list-only profanity) and
// Scheduler defaults to real timers.
type Config struct {
	Rules      RuleSource
	Settings   SettingsSource
	Logs       LogSink
	Counters   CounterSink
	Actions    PlatformActions
	Scheduler  Scheduler
	Classifier Classifier
}

// Engine is the dispatcher: it receives each inbound message, filters it,
// evaluates the guild's rules in stored order and hands the first violation to
// the enforcement cascade. Invocations run concurrently; each message is a
// self-contained unit of work.
type Engine struct {
	rules     *RuleStore
	rate      *RateState
	detectors map[models.RuleType]Detector
	enforcer  *Enforcer
	aiEnabled bool

	hookMu sync.RWMutex
	hooks  []ViolationHook
}

// New wires the engine from its collaborators
func New(cfg Config) *Engine {
	if cfg.Scheduler == nil {
		cfg.Scheduler = TimerScheduler{}
	}

	rate := NewRateState()
	detectors := make(map[models.RuleType]Detector)
	for _, d := range []Detector{
		NewSpamDetector(rate),
		&LinksDetector{},
		&CapsDetector{},
		NewProfanityDetector(cfg.Classifier),
		&MentionsDetector{},
		&DuplicatesDetector{},
	} {
		detectors[d.Type()] = d
	}

	return &Engine{
		rules:     NewRuleStore(cfg.Rules),
		rate:      rate,
		detectors: detectors,
		enforcer:  NewEnforcer(cfg.Actions, cfg.Scheduler, cfg.Settings, cfg.Logs, cfg.Counters),
		aiEnabled: cfg.Classifier != nil,
	}
}

// Load reads the rule set for the first time. An error here is fatal for
// moderation of the affected guilds but must not crash the caller.
func (e *Engine) Load() error {
	if err := e.rules.Load(); err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Cargadas %d reglas de automod para %d guilds",
		e.rules.RuleCount(), e.rules.GuildCount()), "Automod")
	return nil
}

// Reload refreshes the rule snapshot; a failure leaves the previous snapshot
// in effect
func (e *Engine) Reload() error {
	if err := e.rules.Reload(); err != nil {
		return err
	}
	logger.Info("Reglas de automod recargadas", "Automod")
	return nil
}

// Rules exposes the store for the dashboard API
func (e *Engine) Rules() *RuleStore {
	return e.rules
}

// AddViolationHook registers a hook called after each enforced violation
func (e *Engine) AddViolationHook(hook ViolationHook) {
	e.hookMu.Lock()
	e.hooks = append(e.hooks, hook)
	e.hookMu.Unlock()
}

// OnMessage evaluates one inbound message. Clean messages add negligible
// overhead: no log or counter writes happen unless a rule fires.
func (e *Engine) OnMessage(msg *Message) {
	// Ignore bots and direct messages
	if msg.AuthorIsBot || msg.GuildID == "" {
		return
	}

	rules := e.rules.RulesFor(msg.GuildID)
	if len(rules) == 0 {
		return
	}

	for _, rule := range rules {
		detector, ok := e.detectors[rule.Type]
		if !ok {
			logger.Debug(fmt.Sprintf("Tipo de regla desconocido: %s", rule.Type), "Automod")
			continue
		}

		violation := detector.Check(msg, rule)
		if violation == nil {
			continue
		}

		// First match wins: at most one rule fires per message
		e.enforcer.Apply(msg, rule, violation)
		e.notifyHooks(msg, rule, violation)
		return
	}
}

func (e *Engine) notifyHooks(msg *Message, rule *models.AutoModRule, violation *Violation) {
	e.hookMu.RLock()
	hooks := e.hooks
	e.hookMu.RUnlock()

	for _, hook := range hooks {
		hook(msg, rule, violation)
	}
}

// Stats summarizes the active rule set for the dashboard
type Stats struct {
	TotalRules      int            `json:"totalRules"`
	GuildsWithRules int            `json:"guildsWithRules"`
	AIEnabled       bool           `json:"aiEnabled"`
	TrackedUsers    int            `json:"trackedUsers"`
	RulesByGuild    map[string]int `json:"rulesByGuild"`
}

// Stats returns a snapshot of the engine state
func (e *Engine) Stats() Stats {
	return Stats{
		TotalRules:      e.rules.RuleCount(),
		GuildsWithRules: e.rules.GuildCount(),
		AIEnabled:       e.aiEnabled,
		TrackedUsers:    e.rate.Size(),
		RulesByGuild:    e.rules.RulesByGuild(),
	}
}
