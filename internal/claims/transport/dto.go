// Package transport defines request/response DTOs for the claims module.
package transport

import "time"

// AssembleClaimRequest creates a new claim from the master inventory, the
// active policy, and the described incident.
type AssembleClaimRequest struct {
	Name                  string     `json:"name" validate:"max=200"`
	IncidentType          string     `json:"incidentType" validate:"required,max=100"`
	DateOfLoss            time.Time  `json:"dateOfLoss" validate:"required"`
	Location              string     `json:"location" validate:"max=300"`
	PoliceReport          string     `json:"policeReport" validate:"max=100"`
	Description           string     `json:"description" validate:"max=5000"`
	DisplacementStart     *time.Time `json:"displacementStart"`
	DisplacementEnd       *time.Time `json:"displacementEnd"`
	FairRentalValuePerDay float64    `json:"fairRentalValuePerDay" validate:"gte=0"`
}

// UpdateIncidentRequest applies a partial update to a claim's incident details.
type UpdateIncidentRequest struct {
	Name                  *string    `json:"name" validate:"omitempty,max=200"`
	IncidentType          *string    `json:"incidentType" validate:"omitempty,max=100"`
	Location              *string    `json:"location" validate:"omitempty,max=300"`
	PoliceReport          *string    `json:"policeReport" validate:"omitempty,max=100"`
	Description           *string    `json:"description" validate:"omitempty,max=5000"`
	DisplacementStart     *time.Time `json:"displacementStart"`
	DisplacementEnd       *time.Time `json:"displacementEnd"`
	FairRentalValuePerDay *float64   `json:"fairRentalValuePerDay" validate:"omitempty,gte=0"`
}

// UpdateClaimItemRequest edits a single claim item. The claim total is
// recomputed in the same transaction as the edit.
type UpdateClaimItemRequest struct {
	Status          *string  `json:"status" validate:"omitempty,oneof=included excluded flagged"`
	ClaimedValue    *float64 `json:"claimedValue" validate:"omitempty,gte=0"`
	Description     *string  `json:"description" validate:"omitempty,max=500"`
	NarrativeTag    *string  `json:"narrativeTag" validate:"omitempty,max=100"`
	ExclusionReason *string  `json:"exclusionReason" validate:"omitempty,max=300"`
}

// AdvanceStageRequest moves a claim forward to a later stage.
type AdvanceStageRequest struct {
	Stage string `json:"stage" validate:"required"`
}

// ClaimItemResponse is the API shape of a claim item snapshot.
type ClaimItemResponse struct {
	ID              string  `json:"id"`
	MasterItemID    string  `json:"masterItemId"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	ClaimedValue    float64 `json:"claimedValue"`
	ValuationMethod string  `json:"valuationMethod"`
	NarrativeTag    string  `json:"narrativeTag"`
	Status          string  `json:"status"`
	ExclusionReason string  `json:"exclusionReason,omitempty"`
	PolicyNotes     string  `json:"policyNotes,omitempty"`
}

// IncidentResponse is the API shape of a claim's incident details.
type IncidentResponse struct {
	Name                  string  `json:"name,omitempty"`
	IncidentType          string  `json:"incidentType"`
	DateOfLoss            string  `json:"dateOfLoss"`
	Location              string  `json:"location,omitempty"`
	PoliceReport          string  `json:"policeReport,omitempty"`
	Description           string  `json:"description,omitempty"`
	DisplacementStart     *string `json:"displacementStart,omitempty"`
	DisplacementEnd       *string `json:"displacementEnd,omitempty"`
	FairRentalValuePerDay float64 `json:"fairRentalValuePerDay,omitempty"`
}

// ClaimResponse is the API shape of a full claim.
type ClaimResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Status          string              `json:"status"`
	PolicyID        string              `json:"policyId"`
	GeneratedAt     string              `json:"generatedAt"`
	TotalClaimValue float64             `json:"totalClaimValue"`
	Stage           string              `json:"stage"`
	Incident        IncidentResponse    `json:"incident"`
	Items           []ClaimItemResponse `json:"items"`
}

// ClaimSummaryResponse is the list shape of a claim (no items).
type ClaimSummaryResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Status          string  `json:"status"`
	Stage           string  `json:"stage"`
	IncidentType    string  `json:"incidentType"`
	TotalClaimValue float64 `json:"totalClaimValue"`
	ItemCount       int     `json:"itemCount"`
	GeneratedAt     string  `json:"generatedAt"`
}

// ClaimListResponse wraps a claim listing.
type ClaimListResponse struct {
	Claims []ClaimSummaryResponse `json:"claims"`
	Total  int                    `json:"total"`
}

// ActionItemResponse is a single outstanding issue on a claim.
type ActionItemResponse struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	ItemID   string `json:"itemId,omitempty"`
}

// MetricsResponse is the derived financial projection of a claim.
type MetricsResponse struct {
	GrossPropertyLoss float64              `json:"grossPropertyLoss"`
	Deductible        float64              `json:"deductible"`
	ALETotal          float64              `json:"aleTotal"`
	NetPayout         float64              `json:"netPayout"`
	ProofCompleteness float64              `json:"proofCompleteness"`
	CoverageHealth    float64              `json:"coverageHealth"`
	StrategyScore     int                  `json:"strategyScore"`
	ActionItems       []ActionItemResponse `json:"actionItems"`
}

// ActionPlanResponse is the single next recommended step for a claim.
type ActionPlanResponse struct {
	Action string `json:"action"`
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

// RequirementsResponse lists documents and tasks for an incident type.
type RequirementsResponse struct {
	IncidentType      string   `json:"incidentType"`
	RequiredDocuments []string `json:"requiredDocuments"`
	RecommendedTasks  []string `json:"recommendedTasks"`
}
