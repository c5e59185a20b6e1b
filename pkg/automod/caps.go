package automod

import (
	"fmt"
	"unicode"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

// Defaults for the caps detector
const (
	DefaultCapsMinLength     = 10
	DefaultMaxCapsPercentage = 70.0
)

// CapsDetector flags messages written mostly in uppercase
type CapsDetector struct{}

// Type returns the rule type this detector handles
func (d *CapsDetector) Type() models.RuleType {
	return models.RuleTypeCaps
}

// Check computes the uppercase ratio over letters only. Messages shorter than
// minLength never violate, and the threshold comparison is strict.
func (d *CapsDetector) Check(msg *Message, rule *models.AutoModRule) *Violation {
	minLength := rule.Config.MinLength
	if minLength <= 0 {
		minLength = DefaultCapsMinLength
	}
	maxPercentage := rule.Config.MaxCapsPercentage
	if maxPercentage <= 0 {
		maxPercentage = DefaultMaxCapsPercentage
	}

	runes := []rune(msg.Content)
	if len(runes) < minLength {
		return nil
	}

	letters, uppercase := 0, 0
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			uppercase++
		}
	}

	if letters == 0 {
		return nil
	}

	percentage := float64(uppercase) / float64(letters) * 100
	if percentage > maxPercentage {
		return &Violation{
			RuleID:      rule.ID,
			Description: fmt.Sprintf("Excessive caps: %.1f%% (limit: %.0f%%)", percentage, maxPercentage),
		}
	}

	return nil
}
