package automod

import "github.com/PancyStudios/PancyAdminGo/pkg/models"

// DuplicatesDetector is a reserved rule type. Comparing recent message content
// per user/channel needs a retention window and a comparison algorithm that
// have not been settled, so the detector never fires. Rules of this type can
// be stored and enabled; they evaluate to no violation.
type DuplicatesDetector struct{}

// Type returns the rule type this detector handles
func (d *DuplicatesDetector) Type() models.RuleType {
	return models.RuleTypeDuplicates
}

// Check always reports no violation
func (d *DuplicatesDetector) Check(msg *Message, rule *models.AutoModRule) *Violation {
	return nil
}
