package canned

import (
	"time"

	"github.com/dmarchuk/claimsight/internal/core/domain"
)

// SeedDocuments are the documents present before any upload.
func SeedDocuments() []domain.DocumentItem {
	now := time.Now().UTC()
	return []domain.DocumentItem{
		{
			DocID:      "DOC123",
			Filename:   "HealthPolicy_2024_v1.pdf",
			Type:       domain.TypePDF,
			UploadDate: now,
			Source:     domain.SourceManual,
			Pages:      24,
			SizeKB:     812,
			Status:     domain.StatusIndexed,
		},
		{
			DocID:      "EML42",
			Filename:   "CustomerEmail_2025-08-07.eml",
			Type:       domain.TypeEML,
			UploadDate: now,
			Source:     domain.SourceEmail,
			Pages:      1,
			SizeKB:     28,
			Status:     domain.StatusIndexed,
		},
	}
}

// SeedClauses back the citations of the decision template.
func SeedClauses() []domain.ClauseItem {
	return []domain.ClauseItem{
		{
			ClauseID:   "DOC123::clause_45",
			DocID:      "DOC123",
			Page:       14,
			Text:       "Knee surgery is a covered surgical procedure provided the policy has been active for at least 90 days.",
			Confidence: 0.95,
			Tags:       []string{"waiting period", "coverage", "orthopedic"},
			Bbox:       boxPtr(domain.BoundingBox{X: 0.1, Y: 0.35, W: 0.8, H: 0.12}),
		},
		{
			ClauseID:   "DOC123::clause_47",
			DocID:      "DOC123",
			Page:       15,
			Text:       "Maximum covered hospital payout for minor orthopedic surgery: up to 50,000 INR subject to co-pay 10%.",
			Confidence: 0.92,
			Tags:       []string{"payout", "copay", "limits"},
			Bbox:       boxPtr(domain.BoundingBox{X: 0.12, Y: 0.48, W: 0.76, H: 0.1}),
		},
		{
			ClauseID:   "DOC123::clause_12",
			DocID:      "DOC123",
			Page:       5,
			Text:       "Pre-existing conditions are subject to a 24-month waiting period unless specifically waived.",
			Confidence: 0.85,
			Tags:       []string{"pre-existing", "waiting period"},
			Bbox:       boxPtr(domain.BoundingBox{X: 0.14, Y: 0.62, W: 0.7, H: 0.1}),
		},
		{
			ClauseID:   "EML42::clause_1",
			DocID:      "EML42",
			Page:       1,
			Text:       "Agent note: Member confirms no prior knee surgeries and policy effective since May.",
			Confidence: 0.6,
			Tags:       []string{"agent note", "context"},
			Bbox:       boxPtr(domain.BoundingBox{X: 0.1, Y: 0.2, W: 0.8, H: 0.2}),
		},
	}
}

// SeedAudit is the audit entry for the template decision.
func SeedAudit() domain.AuditEntry {
	return domain.AuditEntry{
		AuditID:         "AUDIT-20250808-0001",
		User:            "agent.alex",
		Timestamp:       time.Now().UTC(),
		DecisionSummary: "Approved — Knee surgery covered; payout 45,000 INR.",
		Result:          DecisionTemplate(),
		Prompts:         Prompts(),
	}
}
