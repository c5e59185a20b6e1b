package automod

import (
	"testing"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

func TestCapsAllUppercaseViolates(t *testing.T) {
	detector := &CapsDetector{}
	rule := testRule(models.RuleTypeCaps) // defaults: minLength 10, threshold 70

	// 10 letters, 100% caps
	v := detector.Check(testMessage("AAAAAAAAAA"), rule)
	if v == nil {
		t.Fatal("fully uppercase message should violate")
	}
}

func TestCapsMostlyLowercasePasses(t *testing.T) {
	detector := &CapsDetector{}
	rule := testRule(models.RuleTypeCaps)

	// 10% caps
	if v := detector.Check(testMessage("Aaaaaaaaaa"), rule); v != nil {
		t.Fatalf("10%% caps should not violate, got %q", v.Description)
	}
}

func TestCapsShortMessageNeverViolates(t *testing.T) {
	detector := &CapsDetector{}
	rule := testRule(models.RuleTypeCaps)

	// Shorter than minLength, regardless of case ratio
	if v := detector.Check(testMessage("AAAA"), rule); v != nil {
		t.Fatal("message shorter than minLength should never violate")
	}
}

func TestCapsBoundaryDoesNotTrigger(t *testing.T) {
	detector := &CapsDetector{}
	rule := testRule(models.RuleTypeCaps)
	rule.Config.MinLength = 10
	rule.Config.MaxCapsPercentage = 70

	// Exactly 70%: 7 of 10 letters uppercase. Strict inequality.
	if v := detector.Check(testMessage("AAAAAAAbcd"), rule); v != nil {
		t.Fatalf("exactly 70%% caps should not violate, got %q", v.Description)
	}

	// 80% crosses the threshold
	if v := detector.Check(testMessage("AAAAAAAAbc"), rule); v == nil {
		t.Fatal("80% caps should violate")
	}
}

func TestCapsNoLettersPasses(t *testing.T) {
	detector := &CapsDetector{}
	rule := testRule(models.RuleTypeCaps)

	if v := detector.Check(testMessage("1234567890!!"), rule); v != nil {
		t.Fatal("message without letters should not violate")
	}
}

func TestCapsIgnoresNonLetters(t *testing.T) {
	detector := &CapsDetector{}
	rule := testRule(models.RuleTypeCaps)

	// 12 runes, 3 letters all uppercase: 100% of letters
	if v := detector.Check(testMessage("ABC 123 !!! "), rule); v == nil {
		t.Fatal("caps percentage should be computed over letters only")
	}
}
