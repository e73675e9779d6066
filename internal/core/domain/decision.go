package domain

import "time"

// ParsedQuery is the structured form of a free-text claim query. Fields
// the parse stage could not determine stay nil; RawText is always set.
type ParsedQuery struct {
	Age             *int    `json:"age"`
	Gender          *string `json:"gender"`
	Procedure       *string `json:"procedure"`
	Location        *string `json:"location"`
	PolicyAgeMonths *int    `json:"policy_age_months"`
	RawText         string  `json:"raw_text"`
}

// Decision outcomes. Decision is an open string on purpose: downstream
// rules may introduce new outcomes without a schema change.
const (
	DecisionApproved          = "approved"
	DecisionRejected          = "rejected"
	DecisionNeedsManualReview = "needs_manual_review"
	DecisionPending           = "pending"
)

// JustificationEntry cites a clause supporting the decision. Quote must
// be a verbatim substring of the cited clause's text, never fabricated.
type JustificationEntry struct {
	ClauseID string `json:"clause_id"`
	Document string `json:"document"`
	Page     int    `json:"page"`
	Quote    string `json:"quote"`
	Reason   string `json:"reason"`
}

type ConsideredClause struct {
	ClauseID        string  `json:"clause_id"`
	SimilarityScore float64 `json:"similarity_score"`
}

type PipelineTimestamps struct {
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

type PipelineInfo struct {
	ParserPromptID    string             `json:"parser_prompt_id"`
	RetrievalK        int                `json:"retrieval_k"`
	RetrievedCount    int                `json:"retrieved_count"`
	EvaluatorPromptID string             `json:"evaluator_prompt_id"`
	Timestamps        PipelineTimestamps `json:"timestamps"`
}

// ManualOverride is a view-level overlay on a displayed decision. It
// never mutates the stored audit snapshot.
type ManualOverride struct {
	By     string    `json:"by"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

type DecisionResult struct {
	Query             string               `json:"query"`
	ParsedQuery       ParsedQuery          `json:"parsed_query"`
	Decision          string               `json:"decision"`
	Amount            *float64             `json:"amount"`
	Currency          *string              `json:"currency"`
	Confidence        float64              `json:"confidence"`
	Justification     []JustificationEntry `json:"justification"`
	ClausesConsidered []ConsideredClause   `json:"clauses_considered"`
	Pipeline          PipelineInfo         `json:"pipeline"`
	AuditID           string               `json:"audit_id"`
	ManualOverride    *ManualOverride      `json:"manual_override"`
}

// Clone returns a deep copy. Audit snapshots rely on this so that a
// later override of the displayed result cannot touch stored history.
func (r DecisionResult) Clone() DecisionResult {
	out := r
	out.ParsedQuery = r.ParsedQuery.clone()
	if r.Amount != nil {
		v := *r.Amount
		out.Amount = &v
	}
	if r.Currency != nil {
		v := *r.Currency
		out.Currency = &v
	}
	if r.Justification != nil {
		out.Justification = make([]JustificationEntry, len(r.Justification))
		copy(out.Justification, r.Justification)
	}
	if r.ClausesConsidered != nil {
		out.ClausesConsidered = make([]ConsideredClause, len(r.ClausesConsidered))
		copy(out.ClausesConsidered, r.ClausesConsidered)
	}
	if r.ManualOverride != nil {
		v := *r.ManualOverride
		out.ManualOverride = &v
	}
	return out
}

func (q ParsedQuery) clone() ParsedQuery {
	out := q
	if q.Age != nil {
		v := *q.Age
		out.Age = &v
	}
	if q.Gender != nil {
		v := *q.Gender
		out.Gender = &v
	}
	if q.Procedure != nil {
		v := *q.Procedure
		out.Procedure = &v
	}
	if q.Location != nil {
		v := *q.Location
		out.Location = &v
	}
	if q.PolicyAgeMonths != nil {
		v := *q.PolicyAgeMonths
		out.PolicyAgeMonths = &v
	}
	return out
}

// QueryRequest is a run-query submission.
type QueryRequest struct {
	QueryText string `json:"query_text"`
	UserID    string `json:"user_id"`
	TopK      int    `json:"top_k"`
}

type QueryResponse struct {
	AuditID string         `json:"audit_id"`
	Status  string         `json:"status"`
	Result  DecisionResult `json:"result_json"`
}
