package ports

import (
	"context"

	"github.com/dmarchuk/claimsight/internal/core/domain"
)

// DocumentIntake is the inbound contract for document ingestion and
// housekeeping.
type DocumentIntake interface {
	UploadDocument(ctx context.Context, filename string, sizeBytes int64, source domain.DocumentSource) (*domain.DocumentItem, error)
	Extract(ctx context.Context, docID string, opts domain.UploadOptions) (*domain.ExtractionReport, error)
	ListDocuments(ctx context.Context) ([]domain.DocumentItem, error)
	ListClauses(ctx context.Context, docID string) ([]domain.ClauseItem, error)
	Reindex(ctx context.Context, docID string) error
	DeleteDocuments(ctx context.Context, docIDs []string) (int, error)
}

// DecisionRunner is the inbound contract for running a claim query
// through the simulated decision pipeline.
type DecisionRunner interface {
	RunQuery(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error)
}

// AuditReader reads the audit trail.
type AuditReader interface {
	GetAudit(ctx context.Context, auditID string) (*domain.AuditEntry, error)
	ListAudits(ctx context.Context) ([]domain.AuditEntry, error)
}

// StatsReader reports index-level counters for the dashboard.
type StatsReader interface {
	IndexStats(ctx context.Context) (*domain.IndexStats, error)
}
