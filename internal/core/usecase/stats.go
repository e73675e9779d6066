package usecase

import (
	"context"
	"fmt"

	"github.com/dmarchuk/claimsight/internal/core/domain"
	"github.com/dmarchuk/claimsight/internal/core/ports"
)

// StatsUseCase derives dashboard counters from the current collections.
type StatsUseCase struct {
	docs    ports.DocumentStore
	clauses ports.ClauseStore
	audits  ports.AuditStore
	latency ports.LatencySimulator

	// avgLatencyMS is a fixed figure the prototype reports; nothing
	// measures real latency here.
	avgLatencyMS int
}

func NewStatsUseCase(
	docs ports.DocumentStore,
	clauses ports.ClauseStore,
	audits ports.AuditStore,
	latency ports.LatencySimulator,
	avgLatencyMS int,
) *StatsUseCase {
	return &StatsUseCase{
		docs:         docs,
		clauses:      clauses,
		audits:       audits,
		latency:      latency,
		avgLatencyMS: avgLatencyMS,
	}
}

func (uc *StatsUseCase) IndexStats(ctx context.Context) (*domain.IndexStats, error) {
	if err := uc.latency.Delay(ctx, ports.OpStats); err != nil {
		return nil, err
	}

	docs, err := uc.docs.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	clauseCount, err := uc.clauses.CountClauses(ctx)
	if err != nil {
		return nil, fmt.Errorf("count clauses: %w", err)
	}
	auditCount, err := uc.audits.CountAudits(ctx)
	if err != nil {
		return nil, fmt.Errorf("count audits: %w", err)
	}

	return &domain.IndexStats{
		Docs: len(docs),
		// Total audit count, not a daily rollup. Kept as the UI
		// contract ships it.
		QueriesToday: auditCount,
		IndexSize:    clauseCount,
		AvgLatencyMS: uc.avgLatencyMS,
	}, nil
}
