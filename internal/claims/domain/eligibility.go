package domain

import (
	"fmt"
	"strings"
	"time"

	invdomain "claimdesk_backend/internal/inventory/domain"
)

// temporallyEligible checks that the item existed on the date of loss.
// Items with an unknown purchase date are eligible: unknown is not disqualifying.
func temporallyEligible(item invdomain.Item, dateOfLoss time.Time) bool {
	if item.PurchaseDate == nil {
		return true
	}
	return !item.PurchaseDate.After(dateOfLoss)
}

// physicallyPlausible drops items that cannot plausibly be part of a loss.
// Archived and rejected items produce no claim item at all.
func physicallyPlausible(item invdomain.Item) bool {
	return item.Status != invdomain.StatusArchived && item.Status != invdomain.StatusRejected
}

// incidentExcluded reports whether the incident type itself matches any
// policy exclusion term (case-insensitive substring). When it does, every
// surviving item in the claim is excluded with the same reason.
func incidentExcluded(incidentType string, exclusions []string) bool {
	lower := strings.ToLower(incidentType)
	for _, term := range exclusions {
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// categoryExcluded reports whether the item's category matches any policy
// exclusion term (case-insensitive substring).
func categoryExcluded(category string, exclusions []string) bool {
	lower := strings.ToLower(category)
	for _, term := range exclusions {
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func incidentExclusionReason(incidentType string) string {
	return fmt.Sprintf("Incident type '%s' matches policy exclusion.", incidentType)
}

func categoryExclusionReason(category string) string {
	return fmt.Sprintf("Category '%s' is listed in policy exclusions.", category)
}
