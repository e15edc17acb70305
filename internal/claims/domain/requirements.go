package domain

import "strings"

// Requirements lists the evidence documents and preparatory tasks an
// incident type calls for.
type Requirements struct {
	RequiredDocuments []string
	RecommendedTasks  []string
}

type requirementsBucket struct {
	keywords     []string
	requirements Requirements
}

// requirementsCatalog maps incident-type keywords to requirement buckets,
// in priority order. The first matching bucket wins; exactly one bucket is
// returned per incident type, never a merge.
var requirementsCatalog = []requirementsBucket{
	{
		keywords: []string{"theft", "burglary"},
		requirements: Requirements{
			RequiredDocuments: []string{
				"Police report",
				"Photos of entry damage",
				"Receipts for stolen items",
			},
			RecommendedTasks: []string{
				"File a police report",
				"Photograph points of forced entry",
				"Collect witness statements",
				"Secure the premises",
			},
		},
	},
	{
		keywords: []string{"fire", "smoke"},
		requirements: Requirements{
			RequiredDocuments: []string{
				"Fire marshal report",
				"Damage photos",
				"Repair estimates",
			},
			RecommendedTasks: []string{
				"Obtain the fire report number",
				"Do not clean or discard before inspection",
				"Track temporary housing receipts",
				"Inventory food loss",
			},
		},
	},
	{
		keywords: []string{"water", "leak", "flood"},
		requirements: Requirements{
			RequiredDocuments: []string{
				"Plumber invoice",
				"Moisture report",
				"Photos of the water source",
			},
			RecommendedTasks: []string{
				"Stop the water source",
				"Retain the failed part as evidence",
				"Hire a mitigation company",
				"Document damage before discarding anything",
			},
		},
	},
}

// defaultRequirements is the fallback bucket for incident types the catalog
// does not recognize.
var defaultRequirements = Requirements{
	RequiredDocuments: []string{
		"Proof-of-loss form",
		"Damage photos",
	},
	RecommendedTasks: []string{
		"Write a timeline of the incident",
		"Locate purchase receipts",
		"Review the policy's duties-after-loss section",
	},
}

// RequirementsFor returns the single requirements bucket matching the
// incident type by case-insensitive keyword substring, falling back to the
// generic bucket.
func RequirementsFor(incidentType string) Requirements {
	lower := strings.ToLower(incidentType)
	for _, bucket := range requirementsCatalog {
		for _, kw := range bucket.keywords {
			if strings.Contains(lower, kw) {
				return bucket.requirements
			}
		}
	}
	return defaultRequirements
}
