package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarchuk/claimsight/internal/core/domain"
)

// RunQuery walks the pipeline tracker around a query run. Stages are a
// progress indicator only: each of parse, retrieve, render pauses for
// the fixed stage delay, and the single service call is issued at
// evaluate and awaited before render. Once started a run always
// returns to idle (short of context cancellation); onStage, if set, is
// invoked on every transition including the final idle.
func (p *Provider) RunQuery(
	ctx context.Context,
	queryText, userID string,
	topK int,
	onStage func(domain.Stage),
) (*domain.QueryResponse, error) {
	started := time.Now()
	notify := func(stage domain.Stage) {
		if onStage != nil {
			onStage(stage)
		}
		if p.serviceMetrics != nil {
			p.serviceMetrics.RecordStage(p.cfg.Service, string(stage))
		}
	}

	var resp *domain.QueryResponse
	for _, stage := range domain.RunStages() {
		notify(stage)

		switch stage {
		case domain.StageEvaluate:
			err := p.exec.Execute(ctx, "run_query", func(ctx context.Context) error {
				var runErr error
				resp, runErr = p.runner.RunQuery(ctx, domain.QueryRequest{
					QueryText: queryText,
					UserID:    userID,
					TopK:      topK,
				})
				return runErr
			}, classifyServiceError)
			if err != nil {
				p.recordRun("error", started)
				return nil, fmt.Errorf("run query: %w", err)
			}
		default:
			if err := p.stagePause(ctx); err != nil {
				p.recordRun("canceled", started)
				return nil, err
			}
		}
	}
	notify(domain.StageIdle)

	if err := p.ReloadAudits(ctx); err != nil {
		return nil, err
	}
	if err := p.RefreshStats(ctx); err != nil {
		return nil, err
	}

	p.recordRun(resp.Status, started)
	return resp, nil
}

func (p *Provider) stagePause(ctx context.Context) error {
	if p.cfg.StageDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.cfg.StageDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Provider) recordRun(status string, started time.Time) {
	if p.serviceMetrics != nil {
		p.serviceMetrics.RecordDecisionRun(p.cfg.Service, status, time.Since(started))
	}
}
