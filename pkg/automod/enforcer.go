package automod

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyAdminGo/pkg/logger"
	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

// Defaults for the enforcement cascade
const (
	DefaultMuteDurationMinutes = 10
	warnNoticeDelay            = 10 * time.Second
	banPurgeDays               = 1
)

// SettingsSource provides per-guild configuration (mute role)
type SettingsSource interface {
	GuildSettings(guildID string) (*models.GuildSettings, error)
}

// LogSink receives the persistent log record of a violation
type LogSink interface {
	Append(record *models.LogRecord) error
}

// CounterSink receives the per-rule/per-guild counter increment
type CounterSink interface {
	TrackAutoMod(ruleName, userID, guildID, event string)
}

// Enforcer applies the configured action cascade for a detected violation.
// Each action runs independently and best effort: failure of one never
// prevents the others. Actions are attempted exactly once per violation.
type Enforcer struct {
	actions   PlatformActions
	scheduler Scheduler
	settings  SettingsSource
	logs      LogSink
	counters  CounterSink
}

// NewEnforcer wires the enforcement cascade
func NewEnforcer(actions PlatformActions, scheduler Scheduler, settings SettingsSource, logs LogSink, counters CounterSink) *Enforcer {
	return &Enforcer{
		actions:   actions,
		scheduler: scheduler,
		settings:  settings,
		logs:      logs,
		counters:  counters,
	}
}

// Apply runs the cascade: delete, warn, mute, ban as configured, then always
// log and count
func (e *Enforcer) Apply(msg *Message, rule *models.AutoModRule, violation *Violation) {
	if rule.Actions.DeleteMessage {
		if err := e.actions.DeleteMessage(msg.ChannelID, msg.ID); err != nil {
			// Already-removed messages land here; nothing to do
			logger.Debug(fmt.Sprintf("No se pudo borrar el mensaje %s: %v", msg.ID, err), "Automod")
		}
	}

	if rule.Actions.WarnUser {
		e.warnUser(msg, rule, violation)
	}

	if rule.Actions.MuteUser {
		e.muteUser(msg, rule)
	}

	if rule.Actions.BanUser {
		e.banUser(msg, rule, violation)
	}

	// Always logged and counted, independent of the configured actions
	e.logViolation(msg, rule, violation)

	logger.Warn(fmt.Sprintf("Violación de automod: %s - %s por %s en guild %s",
		rule.Name, violation.Description, msg.AuthorTag, msg.GuildID), "Automod")
}

// warnUser tries a private notice and falls back to a transient public notice
// in the same channel
func (e *Enforcer) warnUser(msg *Message, rule *models.AutoModRule, violation *Violation) {
	notice := fmt.Sprintf("⚠️ Tu mensaje violó la regla **%s**.\nMotivo: %s\nPor favor respeta las reglas del servidor.",
		rule.Name, violation.Description)

	if err := e.actions.DirectMessage(msg.AuthorID, notice); err == nil {
		return
	}

	fallback := fmt.Sprintf("<@%s>, tu mensaje violó las reglas del servidor. (%s)", msg.AuthorID, rule.Name)
	if err := e.actions.PostAndAutoDelete(msg.ChannelID, fallback, warnNoticeDelay); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo avisar a %s: %v", msg.AuthorID, err), "Automod")
	}
}

// muteUser applies the guild's mute role and schedules its removal. Skipped
// when the guild has no mute role configured.
func (e *Enforcer) muteUser(msg *Message, rule *models.AutoModRule) {
	settings, err := e.settings.GuildSettings(msg.GuildID)
	if err != nil || settings == nil || settings.MuteRole == "" {
		logger.Debug(fmt.Sprintf("Guild %s no tiene rol de mute configurado, acción omitida", msg.GuildID), "Automod")
		return
	}

	if err := e.actions.AddRole(msg.GuildID, msg.AuthorID, settings.MuteRole); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo aplicar el mute a %s: %v", msg.AuthorID, err), "Automod")
		return
	}

	duration := rule.Actions.MuteDuration
	if duration <= 0 {
		duration = DefaultMuteDurationMinutes
	}

	guildID, userID, roleID := msg.GuildID, msg.AuthorID, settings.MuteRole
	e.scheduler.After(time.Duration(duration)*time.Minute, func() {
		// The member may have left or the role may already be gone;
		// removal is idempotent and errors are ignored
		if err := e.actions.RemoveRole(guildID, userID, roleID); err != nil {
			logger.Debug(fmt.Sprintf("No se pudo quitar el rol de mute a %s: %v", userID, err), "Automod")
		}
	})

	logger.Info(fmt.Sprintf("Usuario %s muteado por %d minutos", msg.AuthorTag, duration), "Automod")
}

// banUser removes the author from the guild with a reason that carries the
// rule name and the violation
func (e *Enforcer) banUser(msg *Message, rule *models.AutoModRule, violation *Violation) {
	reason := fmt.Sprintf("Auto-mod: %s - %s", rule.Name, violation.Description)
	if err := e.actions.BanUser(msg.GuildID, msg.AuthorID, reason, banPurgeDays); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo banear a %s: %v", msg.AuthorID, err), "Automod")
		return
	}
	logger.Warn(fmt.Sprintf("Usuario %s baneado por automod: %s", msg.AuthorTag, violation.Description), "Automod")
}

// logViolation writes the LogRecord and increments the rule/guild counter;
// both are fire-and-forget from the cascade's perspective
func (e *Enforcer) logViolation(msg *Message, rule *models.AutoModRule, violation *Violation) {
	record := &models.LogRecord{
		Type:    "automod",
		Level:   "info",
		Message: fmt.Sprintf("Rule violation: %s", rule.Name),
		GuildID: msg.GuildID,
		UserID:  msg.AuthorID,
		Data: models.LogData{
			Rule:           rule.Name,
			Violation:      violation.Description,
			MessageContent: msg.Content,
			ChannelID:      msg.ChannelID,
		},
		Timestamp: time.Now().UnixMilli(),
	}

	if err := e.logs.Append(record); err != nil {
		logger.Error(fmt.Sprintf("Error registrando violación: %v", err), "Automod")
	}

	e.counters.TrackAutoMod(rule.Name, msg.AuthorID, msg.GuildID, "violation_detected")
}
