package models

// ============================================================================
// STORE CONSTANTS
// ============================================================================

// SortFieldIndex is the field deals are ordered by inside a stage
const SortFieldIndex = "index"

// DefaultPerPage is the page size used when fetching a whole stage
const DefaultPerPage = 100

// ============================================================================
// DEFAULT STAGES
// ============================================================================

// DefaultStages is the pipeline used when the configuration names none
var DefaultStages = []Stage{
	{Value: "opportunity", Label: "Opportunity"},
	{Value: "proposal-sent", Label: "Proposal Sent"},
	{Value: "in-negociation", Label: "In Negotiation"},
	{Value: "won", Label: "Won"},
	{Value: "lost", Label: "Lost"},
	{Value: "delayed", Label: "Delayed"},
}
