package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmarchuk/claimsight/internal/core/domain"
	"github.com/dmarchuk/claimsight/internal/core/ports"
	"github.com/dmarchuk/claimsight/internal/infrastructure/canned"
)

const defaultRetrievalK = 20

// StatusCompleted is the only status the simulated pipeline reports at
// the service boundary; failure and pending paths are not modeled.
const StatusCompleted = "completed"

// DecideUseCase runs a claim query through the simulated pipeline:
// clone the canonical decision, substitute the submitted query, and
// mint an immutable audit entry recording the exact prompts used.
type DecideUseCase struct {
	audits  ports.AuditStore
	latency ports.LatencySimulator
	now     nowFunc
}

func NewDecideUseCase(audits ports.AuditStore, latency ports.LatencySimulator) *DecideUseCase {
	return &DecideUseCase{
		audits:  audits,
		latency: latency,
		now:     utcNow,
	}
}

func (uc *DecideUseCase) RunQuery(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	if strings.TrimSpace(req.QueryText) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "run query", errors.New("query text is required"))
	}
	topK := req.TopK
	if topK <= 0 {
		topK = defaultRetrievalK
	}

	started := uc.now()
	if err := uc.latency.Delay(ctx, ports.OpQuery); err != nil {
		return nil, err
	}
	completed := uc.now()

	seq, err := uc.audits.NextAuditSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("next audit sequence: %w", err)
	}
	auditID := fmt.Sprintf("AUDIT-%s-%04d", completed.Format("20060102"), seq)

	result := canned.DecisionTemplate()
	result.Query = req.QueryText
	result.ParsedQuery.RawText = req.QueryText
	result.AuditID = auditID
	result.Pipeline.RetrievalK = topK
	if result.Pipeline.RetrievedCount > topK {
		result.Pipeline.RetrievedCount = topK
	}
	result.Pipeline.Timestamps = domain.PipelineTimestamps{
		StartedAt:   started,
		CompletedAt: completed,
	}

	entry := domain.AuditEntry{
		AuditID:         auditID,
		User:            req.UserID,
		Timestamp:       completed,
		DecisionSummary: summarize(result),
		Result:          result,
		Prompts:         canned.Prompts(),
	}
	if err := uc.audits.AppendAudit(ctx, entry); err != nil {
		return nil, fmt.Errorf("append audit: %w", err)
	}

	return &domain.QueryResponse{
		AuditID: auditID,
		Status:  StatusCompleted,
		Result:  result,
	}, nil
}

func summarize(result domain.DecisionResult) string {
	decision := result.Decision
	if decision != "" {
		decision = strings.ToUpper(decision[:1]) + decision[1:]
	}
	payout := "No payout"
	if result.Amount != nil {
		currency := ""
		if result.Currency != nil {
			currency = " " + *result.Currency
		}
		payout = fmt.Sprintf("Payout %.0f%s", *result.Amount, currency)
	}
	return decision + " — " + payout
}
