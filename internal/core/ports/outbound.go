package ports

import (
	"context"
	"time"

	"github.com/dmarchuk/claimsight/internal/core/domain"
)

// DocumentStore owns the document collection. Implementations serialize
// all mutations; reads return detached copies, never the live slice.
type DocumentStore interface {
	InsertDocument(ctx context.Context, doc domain.DocumentItem) error
	GetDocument(ctx context.Context, docID string) (*domain.DocumentItem, error)
	ListDocuments(ctx context.Context) ([]domain.DocumentItem, error)
	SetDocumentStatus(ctx context.Context, docID string, status domain.DocumentStatus) error
	// DeleteDocuments removes matching documents and returns how many
	// ids actually matched. Absent ids are not an error.
	DeleteDocuments(ctx context.Context, docIDs []string) (int, error)
}

// ClauseStore owns the clause collection.
type ClauseStore interface {
	InsertClauses(ctx context.Context, clauses []domain.ClauseItem) error
	ListClausesByDocument(ctx context.Context, docID string) ([]domain.ClauseItem, error)
	DeleteClausesByDocuments(ctx context.Context, docIDs []string) (int, error)
	CountClauses(ctx context.Context) (int, error)
}

// AuditStore owns the append-only audit log. Entries are never updated
// or deleted.
type AuditStore interface {
	AppendAudit(ctx context.Context, entry domain.AuditEntry) error
	GetAudit(ctx context.Context, auditID string) (*domain.AuditEntry, error)
	ListAudits(ctx context.Context) ([]domain.AuditEntry, error)
	CountAudits(ctx context.Context) (int, error)
	// NextAuditSequence returns a process-lifetime monotonic sequence
	// number; the same value is never handed out twice.
	NextAuditSequence(ctx context.Context) (int, error)
}

// Operation names the I/O-like boundary a latency simulator stands in
// for.
type Operation string

const (
	OpUpload  Operation = "upload"
	OpExtract Operation = "extract"
	OpList    Operation = "list"
	OpReindex Operation = "reindex"
	OpDelete  Operation = "delete"
	OpQuery   Operation = "query"
	OpAudit   Operation = "audit"
	OpStats   Operation = "stats"
)

// LatencySimulator suspends the caller for the configured duration of
// an operation, honoring context cancellation.
type LatencySimulator interface {
	Delay(ctx context.Context, op Operation) error
	// StageDelay is the fixed per-stage pause of the pipeline tracker.
	StageDelay() time.Duration
}
