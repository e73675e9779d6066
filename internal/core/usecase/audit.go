package usecase

import (
	"context"
	"fmt"

	"github.com/dmarchuk/claimsight/internal/core/domain"
	"github.com/dmarchuk/claimsight/internal/core/ports"
)

type AuditTrailUseCase struct {
	audits  ports.AuditStore
	latency ports.LatencySimulator
}

func NewAuditTrailUseCase(audits ports.AuditStore, latency ports.LatencySimulator) *AuditTrailUseCase {
	return &AuditTrailUseCase{audits: audits, latency: latency}
}

func (uc *AuditTrailUseCase) GetAudit(ctx context.Context, auditID string) (*domain.AuditEntry, error) {
	if err := uc.latency.Delay(ctx, ports.OpAudit); err != nil {
		return nil, err
	}
	entry, err := uc.audits.GetAudit(ctx, auditID)
	if err != nil {
		return nil, fmt.Errorf("get audit %q: %w", auditID, err)
	}
	return entry, nil
}

func (uc *AuditTrailUseCase) ListAudits(ctx context.Context) ([]domain.AuditEntry, error) {
	if err := uc.latency.Delay(ctx, ports.OpAudit); err != nil {
		return nil, err
	}
	return uc.audits.ListAudits(ctx)
}
