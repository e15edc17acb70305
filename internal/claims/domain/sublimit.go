package domain

import (
	"fmt"
	"strings"

	poldomain "claimdesk_backend/internal/policies/domain"
)

// matchSubLimit finds the first sub-limit whose category matches the item's
// category. The match is a bidirectional case-insensitive substring test,
// deliberately permissive to tolerate category-naming drift between the
// inventory and the policy text.
func matchSubLimit(category string, subLimits []poldomain.CoverageLimit) *poldomain.CoverageLimit {
	lower := strings.ToLower(category)
	for _, sl := range subLimits {
		slLower := strings.ToLower(sl.Category)
		if slLower == "" {
			continue
		}
		if strings.Contains(lower, slLower) || strings.Contains(slLower, lower) {
			matched := sl
			return &matched
		}
	}
	return nil
}

// applySubLimit evaluates an included item against the policy's sub-limits.
// A matching cap attaches an informational note; a claimed value above the
// cap escalates the item to flagged.
func applySubLimit(item *ClaimItem, subLimits []poldomain.CoverageLimit) {
	sl := matchSubLimit(item.Category, subLimits)
	if sl == nil {
		return
	}

	item.PolicyNotes = fmt.Sprintf("Policy Sub-Limit: %s is capped at $%.2f.", sl.Category, sl.Limit)
	if item.ClaimedValue > sl.Limit {
		item.Status = ItemFlagged
		item.PolicyNotes += fmt.Sprintf(" Item value ($%.2f) exceeds category cap.", item.ClaimedValue)
	}
}
