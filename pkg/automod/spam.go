package automod

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

// Defaults for the spam detector
const (
	DefaultSpamTimeWindow  = 10 // seconds
	DefaultSpamMaxMessages = 5
)

// SpamDetector flags users that exceed a message-frequency limit.
// It is the only stateful detector; state lives in the shared RateState.
type SpamDetector struct {
	state *RateState
}

// NewSpamDetector creates a SpamDetector over the given rate state
func NewSpamDetector(state *RateState) *SpamDetector {
	return &SpamDetector{state: state}
}

// Type returns the rule type this detector handles
func (d *SpamDetector) Type() models.RuleType {
	return models.RuleTypeSpam
}

// Check counts the message against the user's active window
func (d *SpamDetector) Check(msg *Message, rule *models.AutoModRule) *Violation {
	windowSeconds := rule.Config.TimeWindow
	if windowSeconds <= 0 {
		windowSeconds = DefaultSpamTimeWindow
	}
	maxMessages := rule.Config.MaxMessages
	if maxMessages <= 0 {
		maxMessages = DefaultSpamMaxMessages
	}

	count, violated := d.state.Bump(msg.AuthorID, time.Duration(windowSeconds)*time.Second, maxMessages)
	if !violated {
		return nil
	}

	return &Violation{
		RuleID:      rule.ID,
		Description: fmt.Sprintf("Spam detected: %d messages in %d seconds", count, windowSeconds),
	}
}
