package automod

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyAdminGo/pkg/logger"
	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

// ProfanityDetector flags blocked words and, when a classifier is configured,
// asks it for a secondary judgment. The classifier path fails open: any error,
// timeout or missing configuration yields no violation, so profanity control
// never blocks chat availability.
type ProfanityDetector struct {
	classifier Classifier
}

// NewProfanityDetector creates a ProfanityDetector. classifier may be nil,
// in which case only the word list is checked.
func NewProfanityDetector(classifier Classifier) *ProfanityDetector {
	return &ProfanityDetector{classifier: classifier}
}

// Type returns the rule type this detector handles
func (d *ProfanityDetector) Type() models.RuleType {
	return models.RuleTypeProfanity
}

// Check matches the word list first; the classifier is consulted only when the
// list misses
func (d *ProfanityDetector) Check(msg *Message, rule *models.AutoModRule) *Violation {
	content := strings.ToLower(msg.Content)

	for _, word := range rule.Config.BlockedWords {
		if word == "" {
			continue
		}
		if strings.Contains(content, strings.ToLower(word)) {
			return &Violation{
				RuleID:      rule.ID,
				Description: fmt.Sprintf("Blocked word detected: %s", word),
			}
		}
	}

	if d.classifier == nil {
		return nil
	}

	verdict, err := d.classifier.Classify(msg.Content)
	if err != nil {
		logger.Debug(fmt.Sprintf("Clasificador no disponible, mensaje permitido: %v", err), "Automod")
		return nil
	}

	if verdict == VerdictViolation {
		return &Violation{
			RuleID:      rule.ID,
			Description: "AI detected inappropriate content",
		}
	}

	return nil
}
