// Package canned holds the fixed prompt texts, the canonical decision
// template, and the seed collections the service starts with. The
// prompt texts are part of the audit contract: they are stored verbatim
// on every audit entry so a run can be reproduced.
package canned

import "github.com/dmarchuk/claimsight/internal/core/domain"

const ParserPrompt = `You are an extractor that receives free-form user queries about insurance claims. Return strict JSON with fields: age, gender, procedure, location, policy_age_months (integer), raw_text.

Example: "46M, knee surgery, Pune, 3-month policy"
-> { "age":46, "gender":"M", "procedure":"knee surgery", "location":"Pune", "policy_age_months":3 }

If any field is missing, set value to null. Always output valid JSON only.`

const RetrievalPrompt = `Construct a semantic retrieval query from the parsed JSON. Prioritize retrieving clauses that mention: procedure synonyms (knee, arthroplasty), waiting period, geographic limits, policy effective date, exclusions, payout caps, co-pay percentages. Return a ranked list of top-20 clause ids to the evaluator, including a one-line reason for why each clause might be relevant.`

const EvaluatorPrompt = `You are a claim rules engine assistant. Input:
1) Parsed query JSON.
2) Array of retrieved clauses, each with {clause_id, text, doc_id, page, metadata}.

Task:
- Apply rules in the clauses to decide: approved | rejected | needs_manual_review.
- If monetary amount is determinable, calculate amount and provide currency.
- Produce "justification" list mapping used clauses to the exact phrases (quoted) that determined the decision.
- Always include clause metadata: doc name, page, clause_id, exact quoted text (≤25 words).
- ALWAYS produce the final answer as the exact JSON schema provided (no extra fields).
- If conflicting clauses exist, explain conflict and choose "needs_manual_review" unless a higher-authority clause (explicit "override") exists.
- NEVER hallucinate clause text: you must only quote from the clauses supplied.
- Output VALID JSON only.`

// Prompts returns the instruction set recorded on every audit entry.
func Prompts() domain.PromptSet {
	return domain.PromptSet{
		Parser:    ParserPrompt,
		Retriever: RetrievalPrompt,
		Evaluator: EvaluatorPrompt,
	}
}
