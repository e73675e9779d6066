// Package provider is the application data façade the screens talk to.
// It holds cached snapshots of documents, audits, and stats, composes
// the multi-step upload-then-extract and query-then-refresh flows, and
// drives the pipeline stage tracker around a query run.
package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dmarchuk/claimsight/internal/core/domain"
	"github.com/dmarchuk/claimsight/internal/core/ports"
	"github.com/dmarchuk/claimsight/internal/infrastructure/resilience"
	"github.com/dmarchuk/claimsight/internal/observability/metrics"
)

type Config struct {
	Service         string
	StageDelay      time.Duration
	ClauseCacheSize int
	ClauseCacheTTL  time.Duration
}

// FileUpload is one file handed to UploadFiles. Only name and size
// matter to the simulated backend.
type FileUpload struct {
	Filename  string
	SizeBytes int64
	Source    domain.DocumentSource
}

type Provider struct {
	cfg    Config
	intake ports.DocumentIntake
	runner ports.DecisionRunner
	trail  ports.AuditReader
	stats  ports.StatsReader

	exec           *resilience.Executor
	serviceMetrics *metrics.ServiceMetrics
	clauseCache    *expirable.LRU[string, []domain.ClauseItem]

	mu        sync.RWMutex
	documents []domain.DocumentItem
	audits    []domain.AuditEntry
	snapshot  *domain.IndexStats
}

func New(
	cfg Config,
	intake ports.DocumentIntake,
	runner ports.DecisionRunner,
	trail ports.AuditReader,
	stats ports.StatsReader,
	exec *resilience.Executor,
	serviceMetrics *metrics.ServiceMetrics,
) *Provider {
	if cfg.ClauseCacheSize <= 0 {
		cfg.ClauseCacheSize = 256
	}
	if cfg.ClauseCacheTTL <= 0 {
		cfg.ClauseCacheTTL = 5 * time.Minute
	}
	if exec == nil {
		exec = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return &Provider{
		cfg:            cfg,
		intake:         intake,
		runner:         runner,
		trail:          trail,
		stats:          stats,
		exec:           exec,
		serviceMetrics: serviceMetrics,
		clauseCache:    expirable.NewLRU[string, []domain.ClauseItem](cfg.ClauseCacheSize, nil, cfg.ClauseCacheTTL),
	}
}

// Warm loads all three caches. Called once at startup.
func (p *Provider) Warm(ctx context.Context) error {
	if err := p.ReloadDocuments(ctx); err != nil {
		return err
	}
	if err := p.ReloadAudits(ctx); err != nil {
		return err
	}
	return p.RefreshStats(ctx)
}

func (p *Provider) Documents() []domain.DocumentItem {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.DocumentItem, len(p.documents))
	copy(out, p.documents)
	return out
}

func (p *Provider) ReloadDocuments(ctx context.Context) error {
	docs, err := p.intake.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("reload documents: %w", err)
	}
	p.mu.Lock()
	p.documents = docs
	p.mu.Unlock()
	return nil
}

func (p *Provider) Audits() []domain.AuditEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.AuditEntry, len(p.audits))
	copy(out, p.audits)
	return out
}

func (p *Provider) ReloadAudits(ctx context.Context) error {
	audits, err := p.trail.ListAudits(ctx)
	if err != nil {
		return fmt.Errorf("reload audits: %w", err)
	}
	p.mu.Lock()
	p.audits = audits
	p.mu.Unlock()
	return nil
}

func (p *Provider) Stats() *domain.IndexStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.snapshot == nil {
		return nil
	}
	copyStats := *p.snapshot
	return &copyStats
}

func (p *Provider) RefreshStats(ctx context.Context) error {
	snapshot, err := p.stats.IndexStats(ctx)
	if err != nil {
		return fmt.Errorf("refresh stats: %w", err)
	}
	p.mu.Lock()
	p.snapshot = snapshot
	p.mu.Unlock()
	return nil
}

// Clauses is a read-through cache over the service's clause listing.
// Extraction and deletion invalidate the owning document's entry.
func (p *Provider) Clauses(ctx context.Context, docID string) ([]domain.ClauseItem, error) {
	if cached, ok := p.clauseCache.Get(docID); ok {
		p.recordCache(true)
		out := make([]domain.ClauseItem, len(cached))
		copy(out, cached)
		return out, nil
	}
	p.recordCache(false)

	clauses, err := p.intake.ListClauses(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("list clauses %q: %w", docID, err)
	}
	p.clauseCache.Add(docID, clauses)
	out := make([]domain.ClauseItem, len(clauses))
	copy(out, clauses)
	return out, nil
}

// UploadFiles uploads each file and extracts it with the given options.
// The doc id returned by upload is threaded straight into the extract
// call, so same-named files can never target each other's extraction.
func (p *Provider) UploadFiles(ctx context.Context, files []FileUpload, opts domain.UploadOptions) ([]domain.DocumentItem, error) {
	created := make([]domain.DocumentItem, 0, len(files))
	for _, f := range files {
		doc, err := p.intake.UploadDocument(ctx, f.Filename, f.SizeBytes, f.Source)
		if err != nil {
			return nil, fmt.Errorf("upload %q: %w", f.Filename, err)
		}
		created = append(created, *doc)
	}

	if err := p.ReloadDocuments(ctx); err != nil {
		return nil, err
	}

	for _, doc := range created {
		docID := doc.DocID
		err := p.exec.Execute(ctx, "extract", func(ctx context.Context) error {
			_, extractErr := p.intake.Extract(ctx, docID, opts)
			return extractErr
		}, classifyServiceError)
		if err != nil {
			return nil, fmt.Errorf("extract %q: %w", docID, err)
		}
		p.clauseCache.Remove(docID)
	}

	if err := p.ReloadDocuments(ctx); err != nil {
		return nil, err
	}
	if err := p.RefreshStats(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteDocuments removes documents through the service, drops their
// cached clauses, and refreshes the affected snapshots.
func (p *Provider) DeleteDocuments(ctx context.Context, docIDs []string) (int, error) {
	deleted, err := p.intake.DeleteDocuments(ctx, docIDs)
	if err != nil {
		return 0, err
	}
	for _, id := range docIDs {
		p.clauseCache.Remove(id)
	}
	if err := p.ReloadDocuments(ctx); err != nil {
		return deleted, err
	}
	if err := p.RefreshStats(ctx); err != nil {
		return deleted, err
	}
	return deleted, nil
}

func classifyServiceError(err error) resilience.Outcome {
	switch {
	case domain.IsKind(err, domain.ErrDocumentNotFound),
		domain.IsKind(err, domain.ErrAuditNotFound),
		domain.IsKind(err, domain.ErrInvalidInput):
		return resilience.Outcome{Retryable: false, RecordFailure: false}
	case domain.IsKind(err, domain.ErrTemporary):
		return resilience.Outcome{Retryable: true, RecordFailure: true}
	default:
		return resilience.Outcome{Retryable: false, RecordFailure: true}
	}
}

func (p *Provider) recordCache(hit bool) {
	if p.serviceMetrics != nil {
		p.serviceMetrics.RecordClauseCache(p.cfg.Service, hit)
	}
}
