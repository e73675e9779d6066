package canned

import (
	"time"

	"github.com/dmarchuk/claimsight/internal/core/domain"
)

func intPtr(v int) *int                               { return &v }
func floatPtr(v float64) *float64                     { return &v }
func stringPtr(v string) *string                      { return &v }
func boxPtr(b domain.BoundingBox) *domain.BoundingBox { return &b }

// DecisionTemplate is the canonical decision every run is cloned from.
// Its citations reference seed clauses, so quote substrings and clause
// id prefixes hold against the seeded store.
func DecisionTemplate() domain.DecisionResult {
	now := time.Now().UTC()
	return domain.DecisionResult{
		Query: "46M, knee surgery, Pune, 3-month policy",
		ParsedQuery: domain.ParsedQuery{
			Age:             intPtr(46),
			Gender:          stringPtr("M"),
			Procedure:       stringPtr("knee surgery"),
			Location:        stringPtr("Pune"),
			PolicyAgeMonths: intPtr(3),
			RawText:         "46M, knee surgery, Pune, 3-month policy",
		},
		Decision:   domain.DecisionApproved,
		Amount:     floatPtr(45000),
		Currency:   stringPtr("INR"),
		Confidence: 0.87,
		Justification: []domain.JustificationEntry{
			{
				ClauseID: "DOC123::clause_45",
				Document: "HealthPolicy_2024_v1.pdf",
				Page:     14,
				Quote:    "Knee surgery is a covered surgical procedure provided the policy has been active for at least 90 days.",
				Reason:   "Clause states knee surgery covered after 90-day waiting period; policy age is 3 months (≈90 days).",
			},
			{
				ClauseID: "DOC123::clause_47",
				Document: "HealthPolicy_2024_v1.pdf",
				Page:     15,
				Quote:    "Maximum covered hospital payout for minor orthopedic surgery: up to 50,000 INR subject to co-pay 10%.",
				Reason:   "This clause defines payout cap; applying 10% co-pay gives estimated payout 45,000 INR.",
			},
		},
		ClausesConsidered: []domain.ConsideredClause{
			{ClauseID: "DOC123::clause_45", SimilarityScore: 0.92},
			{ClauseID: "DOC123::clause_47", SimilarityScore: 0.89},
		},
		Pipeline: domain.PipelineInfo{
			ParserPromptID:    "prompt_01",
			RetrievalK:        20,
			RetrievedCount:    12,
			EvaluatorPromptID: "prompt_02",
			Timestamps: domain.PipelineTimestamps{
				StartedAt:   now.Add(-4 * time.Second),
				CompletedAt: now,
			},
		},
		AuditID:        "AUDIT-20250808-0001",
		ManualOverride: nil,
	}
}
