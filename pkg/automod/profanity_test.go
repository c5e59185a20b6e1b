package automod

import (
	"errors"
	"testing"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

func profanityRule(words ...string) *models.AutoModRule {
	rule := testRule(models.RuleTypeProfanity)
	rule.Config.BlockedWords = words
	return rule
}

func TestProfanityWordListHit(t *testing.T) {
	classifier := &fakeClassifier{verdict: VerdictClean}
	detector := NewProfanityDetector(classifier)
	rule := profanityRule("maldicion")

	v := detector.Check(testMessage("esto es una MALDICION total"), rule)
	if v == nil {
		t.Fatal("word list hit should violate")
	}
	if classifier.calls != 0 {
		t.Error("classifier should not be consulted when the word list hits")
	}
}

func TestProfanityWordListHitWithBrokenClassifier(t *testing.T) {
	classifier := &fakeClassifier{err: ErrClassifierUnavailable}
	detector := NewProfanityDetector(classifier)
	rule := profanityRule("maldicion")

	// Word-list hit always violates regardless of classifier availability
	if v := detector.Check(testMessage("maldicion"), rule); v == nil {
		t.Fatal("word list hit should violate even with a broken classifier")
	}
}

func TestProfanityClassifierConsultedOnMiss(t *testing.T) {
	classifier := &fakeClassifier{verdict: VerdictViolation}
	detector := NewProfanityDetector(classifier)
	rule := profanityRule("maldicion")

	v := detector.Check(testMessage("texto sutilmente ofensivo"), rule)
	if v == nil {
		t.Fatal("classifier violation verdict should produce a violation")
	}
	if classifier.calls != 1 {
		t.Errorf("classifier calls = %d, want 1", classifier.calls)
	}
}

func TestProfanityClassifierFailOpen(t *testing.T) {
	for _, err := range []error{ErrClassifierUnavailable, ErrClassifierTimeout, errors.New("boom")} {
		classifier := &fakeClassifier{err: err}
		detector := NewProfanityDetector(classifier)
		rule := profanityRule()

		if v := detector.Check(testMessage("cualquier cosa"), rule); v != nil {
			t.Errorf("classifier error %v must fail open, got violation %q", err, v.Description)
		}
	}
}

func TestProfanityNoClassifierConfigured(t *testing.T) {
	detector := NewProfanityDetector(nil)
	rule := profanityRule("maldicion")

	if v := detector.Check(testMessage("texto limpio"), rule); v != nil {
		t.Fatal("no word hit and no classifier should pass")
	}
}

func TestProfanityCleanVerdictPasses(t *testing.T) {
	classifier := &fakeClassifier{verdict: VerdictClean}
	detector := NewProfanityDetector(classifier)
	rule := profanityRule()

	if v := detector.Check(testMessage("buenos dias"), rule); v != nil {
		t.Fatal("clean verdict should not violate")
	}
}
