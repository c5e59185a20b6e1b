package automod

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PancyStudios/PancyAdminGo/pkg/models"
)

var urlPattern = regexp.MustCompile(`(?i)https?://[^\s]+`)

// LinksDetector flags messages containing blocked or unauthorized links
type LinksDetector struct{}

// Type returns the rule type this detector handles
func (d *LinksDetector) Type() models.RuleType {
	return models.RuleTypeLinks
}

// Check extracts every URL-looking substring and validates its host against the
// rule's domain lists. The first offending link short-circuits.
func (d *LinksDetector) Check(msg *Message, rule *models.AutoModRule) *Violation {
	links := urlPattern.FindAllString(msg.Content, -1)
	if len(links) == 0 {
		return nil
	}

	for _, link := range links {
		parsed, err := url.Parse(link)
		if err != nil || parsed.Hostname() == "" {
			// Matched the URL pattern but does not parse: suspicious on its own
			return &Violation{
				RuleID:      rule.ID,
				Description: fmt.Sprintf("Invalid URL detected: %s", link),
			}
		}

		domain := strings.ToLower(parsed.Hostname())

		if blocked, hit := matchDomain(domain, rule.Config.BlockedDomains); blocked {
			return &Violation{
				RuleID:      rule.ID,
				Description: fmt.Sprintf("Blocked domain detected: %s (%s)", domain, hit),
			}
		}

		if len(rule.Config.AllowedDomains) > 0 {
			if allowed, _ := matchDomain(domain, rule.Config.AllowedDomains); !allowed {
				return &Violation{
					RuleID:      rule.ID,
					Description: fmt.Sprintf("Unauthorized domain: %s", domain),
				}
			}
		}
	}

	return nil
}

// matchDomain reports whether the host contains any list entry,
// case-insensitive, and returns the matching entry
func matchDomain(domain string, list []string) (bool, string) {
	for _, entry := range list {
		if entry == "" {
			continue
		}
		if strings.Contains(domain, strings.ToLower(entry)) {
			return true, entry
		}
	}
	return false, ""
}
