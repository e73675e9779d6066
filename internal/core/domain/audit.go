package domain

import "time"

// PromptSet holds the exact instruction text sent to each simulated
// pipeline stage, kept verbatim for reproducibility.
type PromptSet struct {
	Parser    string `json:"parser"`
	Retriever string `json:"retriever"`
	Evaluator string `json:"evaluator"`
}

// AuditEntry is an immutable record of one query run. Result is a deep
// copy of the decision at the moment it was produced; it never changes,
// even if the displayed decision is later overridden.
type AuditEntry struct {
	AuditID         string         `json:"audit_id"`
	User            string         `json:"user"`
	Timestamp       time.Time      `json:"timestamp"`
	DecisionSummary string         `json:"decision_summary"`
	Result          DecisionResult `json:"result_json"`
	Prompts         PromptSet      `json:"prompts"`
}

// Clone returns a deep copy, detaching the snapshot from any caller-held
// result.
func (a AuditEntry) Clone() AuditEntry {
	out := a
	out.Result = a.Result.Clone()
	return out
}
